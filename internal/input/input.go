// Package input merges keyboard, touch and remote peer input into the
// per-team intent consumed by the simulation step.
package input

import (
	"hero-blaster/internal/world"
	"strings"
	"unicode/utf8"
)

// Intent is one ship's directional and fire request for a single step.
type Intent struct {
	Left  bool `json:"left"`
	Right bool `json:"right"`
	Up    bool `json:"up"`
	Down  bool `json:"down"`
	Shoot bool `json:"shoot"`
}

// Or merges two intents; a direction is held if either side holds it.
func (i Intent) Or(o Intent) Intent {
	return Intent{
		Left:  i.Left || o.Left,
		Right: i.Right || o.Right,
		Up:    i.Up || o.Up,
		Down:  i.Down || o.Down,
		Shoot: i.Shoot || o.Shoot,
	}
}

// Bindings names the keys controlling one ship. An empty key is unbound.
type Bindings struct {
	Left, Right, Up, Down, Shoot string
}

var multiBindings = [2]Bindings{
	world.Red:  {Left: "a", Right: "d", Up: "w", Down: "s", Shoot: "f"},
	world.Blue: {Left: "ArrowLeft", Right: "ArrowRight", Up: "ArrowUp", Down: "ArrowDown", Shoot: "l"},
}

var singleBindings = [2]Bindings{
	world.Red: {Left: "ArrowLeft", Right: "ArrowRight", Up: "ArrowUp", Down: "ArrowDown", Shoot: " "},
}

// BindingsFor returns the key scheme of team t under mode. Single mode has
// its own layout for RED and leaves BLUE unbound; every other mode uses the
// two-player layout.
func BindingsFor(mode world.Mode, t world.Team) Bindings {
	if mode == world.ModeSingle {
		return singleBindings[t]
	}
	return multiBindings[t]
}

// NormalizeKey lowercases single-character keys and keeps named keys such as
// "ArrowLeft" or "Enter" verbatim.
func NormalizeKey(key string) string {
	if utf8.RuneCountInString(key) == 1 {
		return strings.ToLower(key)
	}
	return key
}

// Help returns the one-line controls hint for mode.
func Help(mode world.Mode) string {
	switch mode {
	case world.ModeSingle:
		return "Single: Arrow keys + Space. Start: Enter. Pause: P."
	case world.ModeMulti:
		return "Multi: Red WASD+F, Blue Arrows+L. Start: Enter. Pause: P."
	}
	return "Pick SINGLE or MULTI first. Start: Enter. Pause: P."
}

// fromKeys reads bindings b against the held key set.
func fromKeys(b Bindings, keys *KeySet) Intent {
	return Intent{
		Left:  keys.Down(b.Left),
		Right: keys.Down(b.Right),
		Up:    keys.Down(b.Up),
		Down:  keys.Down(b.Down),
		Shoot: keys.Down(b.Shoot),
	}
}

// Resolve produces both teams' intents from the held keys, the touch pad and
// an optional remote intent. remote is non-nil only on a connected host and
// only ever drives BLUE. Teams that are not enabled under mode get no intent.
func Resolve(mode world.Mode, keys *KeySet, touch *Touch, remote *Intent) [2]Intent {
	var out [2]Intent
	for _, t := range world.Teams {
		if !mode.Enables(t) {
			continue
		}
		in := fromKeys(BindingsFor(mode, t), keys).Or(touch.Intent(t))
		if remote != nil && t == world.Blue {
			in = in.Or(*remote)
		}
		out[t] = in
	}
	return out
}

// GuestIntent is what a connected guest reports to its host: player one's
// bindings and player one's touch buttons.
func GuestIntent(mode world.Mode, keys *KeySet, touch *Touch) Intent {
	return fromKeys(BindingsFor(mode, world.Red), keys).Or(touch.Intent(world.Red))
}
