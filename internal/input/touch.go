package input

import (
	"fmt"
	"hero-blaster/internal/world"
)

// Button is one of the ten on-screen touch controls, five per player.
type Button uint8

const (
	P1Up Button = iota
	P1Left
	P1Right
	P1Down
	P1Shoot
	P2Up
	P2Left
	P2Right
	P2Down
	P2Shoot

	NumButtons
)

var buttonNames = [NumButtons]string{
	"p1Up", "p1Left", "p1Right", "p1Down", "p1Shoot",
	"p2Up", "p2Left", "p2Right", "p2Down", "p2Shoot",
}

func (b Button) String() string {
	if b < NumButtons {
		return buttonNames[b]
	}
	return fmt.Sprintf("Button(%d)", uint8(b))
}

// Team returns the ship a button steers.
func (b Button) Team() world.Team {
	if b >= P2Up {
		return world.Blue
	}
	return world.Red
}

// ParseButton maps a name such as "p2Shoot" back to its Button.
func ParseButton(name string) (Button, error) {
	for i, n := range buttonNames {
		if n == name {
			return Button(i), nil
		}
	}
	return 0, fmt.Errorf("unknown touch button %q", name)
}

// Touch holds the press-and-hold state of every touch button.
type Touch struct {
	held [NumButtons]bool
}

// Set records whether b is currently pressed.
func (t *Touch) Set(b Button, pressed bool) {
	if b < NumButtons {
		t.held[b] = pressed
	}
}

// Held reports whether b is currently pressed.
func (t *Touch) Held(b Button) bool {
	return b < NumButtons && t.held[b]
}

// Reset releases every button.
func (t *Touch) Reset() {
	t.held = [NumButtons]bool{}
}

// Intent returns the touch intent for team tm.
func (t *Touch) Intent(tm world.Team) Intent {
	base := P1Up
	if tm == world.Blue {
		base = P2Up
	}
	return Intent{
		Up:    t.held[base],
		Left:  t.held[base+1],
		Right: t.held[base+2],
		Down:  t.held[base+3],
		Shoot: t.held[base+4],
	}
}
