package world

import "fmt"

// Rect is an axis-aligned box in playfield coordinates (origin top-left, y down).
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Overlaps reports whether r and o intersect. Touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Team identifies one of the two player ships.
type Team uint8

const (
	Red Team = iota
	Blue
)

// Teams lists both teams in update order.
var Teams = [2]Team{Red, Blue}

func (t Team) String() string {
	switch t {
	case Red:
		return "RED"
	case Blue:
		return "BLUE"
	}
	return fmt.Sprintf("Team(%d)", uint8(t))
}

// MarshalText encodes the team as "RED" or "BLUE".
func (t Team) MarshalText() ([]byte, error) {
	if t > Blue {
		return nil, fmt.Errorf("invalid team %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText accepts only "RED" and "BLUE".
func (t *Team) UnmarshalText(b []byte) error {
	switch string(b) {
	case "RED":
		*t = Red
	case "BLUE":
		*t = Blue
	default:
		return fmt.Errorf("invalid team %q", b)
	}
	return nil
}

// Player is one of the two ships. Players are never created or destroyed,
// only repositioned on reset.
type Player struct {
	Rect
	Team         Team
	Speed        float64
	FireCooldown int // frames until the next shot is allowed
	Firing       bool
}

// Bullet is a player shot travelling upward.
type Bullet struct {
	Rect
	Speed float64 `json:"speed"`
	Team  Team    `json:"team"`
}

// Enemy is a regular descending enemy.
type Enemy struct {
	Rect
	Speed float64 `json:"speed"`
}

// Boss is the single large enemy spawned at level milestones.
type Boss struct {
	Rect
	HP    int     `json:"hp"`
	MaxHP int     `json:"maxHp"`
	Speed float64 `json:"speed"`
	Dir   float64 `json:"dir"`
}

// BossBullet is a boss shot travelling downward.
type BossBullet struct {
	Rect
	Speed float64 `json:"speed"`
}

// Star is background decoration with no gameplay effect.
type Star struct {
	X, Y  float64
	Size  float64
	Speed float64
}
