package world

import "fmt"

// Difficulty selects one of the fixed difficulty profiles.
type Difficulty uint8

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// Profile is the constant bundle controlling lives, spawn pacing, enemy speed
// and leveling pace.
type Profile struct {
	Lives          int
	SpawnFrames    int
	MinSpawnFrames int
	EnemySpeed     float64 // multiplier applied to every enemy's speed
	LevelRamp      float64 // spawn frames removed per level
	LevelEvery     int     // kills per level-up
}

var profiles = [...]Profile{
	Easy:   {Lives: 5, SpawnFrames: 76, MinSpawnFrames: 34, EnemySpeed: 0.88, LevelRamp: 1.45, LevelEvery: 16},
	Medium: {Lives: 3, SpawnFrames: 60, MinSpawnFrames: 26, EnemySpeed: 1.00, LevelRamp: 2.10, LevelEvery: 12},
	Hard:   {Lives: 2, SpawnFrames: 46, MinSpawnFrames: 20, EnemySpeed: 1.18, LevelRamp: 2.60, LevelEvery: 10},
}

// Profile returns the constants for d.
func (d Difficulty) Profile() Profile {
	if int(d) >= len(profiles) {
		return profiles[Easy]
	}
	return profiles[d]
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("Difficulty(%d)", uint8(d))
}

// ParseDifficulty maps "easy", "medium" or "hard" to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Easy, fmt.Errorf("unknown difficulty %q", s)
}

// Mode is the gameplay mode, fixed for a run.
type Mode uint8

const (
	ModeNone Mode = iota // not chosen yet; no player is enabled
	ModeSingle
	ModeMulti
)

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeMulti:
		return "multi"
	}
	return ""
}

// Enables reports whether team t plays under m. Only RED plays in single
// mode and nobody plays before a mode is chosen.
func (m Mode) Enables(t Team) bool {
	switch m {
	case ModeSingle:
		return t == Red
	case ModeMulti:
		return true
	}
	return false
}

// ParseMode maps "", "single" or "multi" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "":
		return ModeNone, nil
	case "single":
		return ModeSingle, nil
	case "multi":
		return ModeMulti, nil
	}
	return ModeNone, fmt.Errorf("unknown gameplay mode %q", s)
}
