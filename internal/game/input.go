package game

import (
	"hero-blaster/assets"
	"hero-blaster/internal/world"

	"github.com/gdamore/tcell/v2"
)

// keyName maps a tcell key event onto the key names used by input
// bindings. Events with no binding meaning return "".
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return "ArrowUp"
	case tcell.KeyDown:
		return "ArrowDown"
	case tcell.KeyLeft:
		return "ArrowLeft"
	case tcell.KeyRight:
		return "ArrowRight"
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyRune:
		return string(ev.Rune())
	}
	return ""
}

// isQuit reports whether ev asks to leave the game.
func isQuit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC
}

// hotkeyNames maps tcell menu keys to the shared hotkey names.
var hotkeyNames = map[tcell.Key]string{
	tcell.KeyF1: "F1", tcell.KeyF2: "F2", tcell.KeyF3: "F3", tcell.KeyF4: "F4",
	tcell.KeyF5: "F5", tcell.KeyF6: "F6", tcell.KeyF7: "F7", tcell.KeyF8: "F8",
	tcell.KeyF9: "F9", tcell.KeyF10: "F10", tcell.KeyF11: "F11", tcell.KeyF12: "F12",
	tcell.KeyCtrlY: "Ctrl+Y", tcell.KeyCtrlV: "Ctrl+V",
}

// hotkey maps a tcell menu key to a session command.
func hotkey(ev *tcell.EventKey, skin string) (Command, bool) {
	name, ok := hotkeyNames[ev.Key()]
	if !ok {
		return Command{}, false
	}
	return Hotkey(name, skin)
}

// Hotkey maps a menu key name ("F1".."F12", "Ctrl+Y", "Ctrl+V") to a
// session command. skin is the current skin, so F6 can cycle to the next.
func Hotkey(name, skin string) (Command, bool) {
	switch name {
	case "F1":
		return Command{Kind: CmdMode, Mode: world.ModeSingle}, true
	case "F2":
		return Command{Kind: CmdMode, Mode: world.ModeMulti}, true
	case "F3":
		return Command{Kind: CmdDifficulty, Difficulty: world.Easy}, true
	case "F4":
		return Command{Kind: CmdDifficulty, Difficulty: world.Medium}, true
	case "F5":
		return Command{Kind: CmdDifficulty, Difficulty: world.Hard}, true
	case "F6":
		return Command{Kind: CmdSkin, Skin: assets.NextSkin(skin)}, true
	case "F7":
		return Command{Kind: CmdHost}, true
	case "F8":
		return Command{Kind: CmdJoin}, true
	case "F9":
		return Command{Kind: CmdMakeOffer}, true
	case "F10":
		return Command{Kind: CmdMakeAnswer}, true
	case "F11":
		return Command{Kind: CmdApplyAnswer}, true
	case "F12":
		return Command{Kind: CmdResetNet}, true
	case "Ctrl+Y":
		return Command{Kind: CmdCopyLocal}, true
	case "Ctrl+V":
		return Command{Kind: CmdPasteRemote}, true
	}
	return Command{}, false
}

// isNetCommand reports whether c drives the peer handshake.
func isNetCommand(c Command) bool {
	switch c.Kind {
	case CmdHost, CmdJoin, CmdMakeOffer, CmdMakeAnswer, CmdApplyAnswer, CmdResetNet, CmdCopyLocal, CmdPasteRemote:
		return true
	}
	return false
}

// MenuHelp and NetHelp are the hotkey hints shown under the playfield.
const MenuHelp = "F1/F2 mode  F3-F5 difficulty  F6 skin  Esc quit"

const NetHelp = "F7 host  F8 join  F9 offer  F10 answer  F11 apply  F12 reset  ^Y copy  ^V paste"
