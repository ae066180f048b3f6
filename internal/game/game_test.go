package game

import (
	"hero-blaster/internal/peer"
	"hero-blaster/internal/world"
	"math/rand"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

// newSimScreen creates an initialized 80×24 simulation screen.
func newSimScreen() tcell.SimulationScreen {
	ss := tcell.NewSimulationScreen("UTF-8")
	_ = ss.Init()
	ss.SetSize(80, 24)
	return ss
}

// screenText returns the screen contents one line per row.
func screenText(ss tcell.SimulationScreen) string {
	w, h := ss.Size()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := ss.GetContent(x, y)
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func runeKey(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func namedKey(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func newTestGame(t *testing.T) (*Game, tcell.SimulationScreen) {
	t.Helper()
	ss := newSimScreen()
	g := NewWithScreen(ss, Options{
		Net:  peer.Config{Listen: "127.0.0.1:0"},
		Rand: rand.New(rand.NewSource(5)),
	})
	t.Cleanup(g.session.Close)
	return g, ss
}

func TestKeyName(t *testing.T) {
	cases := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{"up arrow", namedKey(tcell.KeyUp), "ArrowUp"},
		{"left arrow", namedKey(tcell.KeyLeft), "ArrowLeft"},
		{"enter", namedKey(tcell.KeyEnter), "Enter"},
		{"letter", runeKey('W'), "W"},
		{"space", runeKey(' '), " "},
		{"tab", namedKey(tcell.KeyTab), ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := keyName(tc.ev); got != tc.want {
				t.Errorf("keyName = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestHotkeys(t *testing.T) {
	cases := []struct {
		key  tcell.Key
		want Command
	}{
		{tcell.KeyF1, Command{Kind: CmdMode, Mode: world.ModeSingle}},
		{tcell.KeyF2, Command{Kind: CmdMode, Mode: world.ModeMulti}},
		{tcell.KeyF5, Command{Kind: CmdDifficulty, Difficulty: world.Hard}},
		{tcell.KeyF6, Command{Kind: CmdSkin, Skin: "dc"}},
		{tcell.KeyF9, Command{Kind: CmdMakeOffer}},
		{tcell.KeyF12, Command{Kind: CmdResetNet}},
		{tcell.KeyCtrlV, Command{Kind: CmdPasteRemote}},
	}
	for _, tc := range cases {
		got, ok := hotkey(namedKey(tc.key), "avengers")
		if !ok || got != tc.want {
			t.Errorf("hotkey(%v) = %+v, %v; want %+v", tc.key, got, ok, tc.want)
		}
	}
	if _, ok := hotkey(runeKey('a'), "avengers"); ok {
		t.Error("letter keys are not hotkeys")
	}
	if c, ok := Hotkey("Ctrl+Y", "dc"); !ok || c.Kind != CmdCopyLocal {
		t.Errorf("Hotkey(Ctrl+Y) = %+v, %v", c, ok)
	}
	if c, _ := Hotkey("F6", "random"); c.Skin != "avengers" {
		t.Errorf("F6 after random = %q; want avengers", c.Skin)
	}
	if _, ok := Hotkey("Y", "dc"); ok {
		t.Error("plain Y is not a hotkey")
	}
}

func TestGameQuitKeys(t *testing.T) {
	g, _ := newTestGame(t)
	if !g.handle(runeKey('q')) {
		t.Error("q should not quit; only Esc and Ctrl-C do")
	}
	if g.handle(namedKey(tcell.KeyEscape)) {
		t.Error("Esc did not quit")
	}
	if g.handle(namedKey(tcell.KeyCtrlC)) {
		t.Error("Ctrl-C did not quit")
	}
}

func TestGameDrawsStartOverlay(t *testing.T) {
	g, ss := newTestGame(t)
	g.draw()
	text := screenText(ss)
	for _, want := range []string{"HERO BLASTER LEGENDS", "Choose SINGLE or MULTI first", "SCORE 0"} {
		if !strings.Contains(text, want) {
			t.Errorf("screen missing %q:\n%s", want, text)
		}
	}
}

func TestGameStartsFromKeys(t *testing.T) {
	g, ss := newTestGame(t)
	g.handle(namedKey(tcell.KeyF1))
	g.handle(namedKey(tcell.KeyEnter))
	g.session.Tick()
	if !g.session.World().Running {
		t.Fatal("F1 then Enter did not start a single-player run")
	}

	g.handle(runeKey('p'))
	g.session.Tick()
	g.draw()
	if !strings.Contains(screenText(ss), "PAUSED") {
		t.Error("pause overlay not drawn")
	}
}

func TestGameFooterShowsLocalCode(t *testing.T) {
	g, _ := newTestGame(t)
	g.handle(namedKey(tcell.KeyF7))
	g.handle(namedKey(tcell.KeyF9))
	g.session.Tick()

	footer := g.footer()
	last := footer[len(footer)-1]
	if !strings.HasPrefix(last, "LOCAL {") {
		t.Errorf("last footer line = %q; want the offer", last)
	}
}

func TestGameResize(t *testing.T) {
	g, ss := newTestGame(t)
	ss.SetSize(120, 40)
	g.handle(tcell.NewEventResize(120, 40))
	if c := g.surface.Camera(); c.ViewWidth != 120 || c.ViewHeight != 40 {
		t.Errorf("camera = %dx%d; want 120x40", c.ViewWidth, c.ViewHeight)
	}
}
