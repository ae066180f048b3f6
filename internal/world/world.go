package world

import "math/rand"

// Playfield logical resolution.
const (
	Width  = 960
	Height = 640
)

// Entity constants.
const (
	PlayerSize   = 42
	PlayerSpeed  = 5
	FireCooldown = 5 // frames between shots

	BulletW     = 8
	BulletH     = 16
	BulletSpeed = 12

	BossW        = 188
	BossH        = 74
	BossY        = 28
	BossMargin   = 10
	BossShotGap  = 40 // boss fires when its shot timer exceeds this
	BossBulletW  = 10
	BossBulletH  = 18
	BossHPBase   = 22
	BossHPPerLvl = 1.55

	FirstBossLevel = 10
	BossLevelStep  = 10

	KillScore     = 1
	BossKillScore = 10

	HitCooldown = 35 // steps of post-hit invulnerability
	HitDamage   = 1

	StarCount = 90
)

// World holds every mutable entity and counter of one session.
type World struct {
	Running bool
	Paused  bool
	Score   int
	Lives   int
	Level   int

	Difficulty Difficulty
	Mode       Mode
	Skin       string

	Players     [2]Player // indexed by Team
	Stars       []Star
	Bullets     []Bullet
	Enemies     []Enemy
	BossBullets []BossBullet
	Boss        *Boss

	NextBossLevel int
	SpawnTimer    int
	BossShotTimer int
	HitCooldown   int // post-hit invulnerability steps remaining
}

// New returns an idle world with easy difficulty, no gameplay mode and a
// freshly scattered star field.
func New(rng *rand.Rand) *World {
	w := &World{
		Difficulty:    Easy,
		Lives:         Easy.Profile().Lives,
		Level:         1,
		Skin:          "avengers",
		NextBossLevel: FirstBossLevel,
	}
	for _, t := range Teams {
		w.Players[t] = Player{
			Rect:  Rect{W: PlayerSize, H: PlayerSize},
			Team:  t,
			Speed: PlayerSpeed,
		}
	}
	w.placePlayers()
	w.Stars = make([]Star, StarCount)
	for i := range w.Stars {
		w.Stars[i] = Star{
			X:     rng.Float64() * Width,
			Y:     rng.Float64() * Height,
			Size:  rng.Float64()*2 + 1,
			Speed: rng.Float64()*0.85 + 0.35,
		}
	}
	return w
}

// Player returns the ship of team t.
func (w *World) Player(t Team) *Player {
	return &w.Players[t]
}

// PlayerEnabled reports whether team t takes part in movement, collision and
// rendering under the current gameplay mode.
func (w *World) PlayerEnabled(t Team) bool {
	return w.Mode.Enables(t)
}

func (w *World) placePlayers() {
	w.Players[Red].X = Width * 0.35
	w.Players[Blue].X = Width * 0.65
	for i := range w.Players {
		p := &w.Players[i]
		p.Y = Height - 70
		p.FireCooldown = 0
		p.Firing = false
	}
}

// Reset starts a fresh run. It does nothing until a gameplay mode is chosen
// and reports whether a run was started.
func (w *World) Reset() bool {
	if w.Mode == ModeNone {
		return false
	}
	w.Score = 0
	w.Lives = w.Difficulty.Profile().Lives
	w.Level = 1
	w.Bullets = nil
	w.Enemies = nil
	w.BossBullets = nil
	w.Boss = nil
	w.NextBossLevel = FirstBossLevel
	w.SpawnTimer = 0
	w.BossShotTimer = 0
	w.HitCooldown = 0
	w.Paused = false
	w.placePlayers()
	w.Running = true
	return true
}

// TogglePause flips the paused flag of a running game.
func (w *World) TogglePause() {
	if !w.Running {
		return
	}
	w.Paused = !w.Paused
}

// SetDifficulty changes the profile between runs and resets lives to match.
func (w *World) SetDifficulty(d Difficulty) bool {
	if w.Running {
		return false
	}
	w.Difficulty = d
	w.Lives = d.Profile().Lives
	return true
}

// SetMode changes the gameplay mode between runs.
func (w *World) SetMode(m Mode) bool {
	if w.Running {
		return false
	}
	w.Mode = m
	return true
}

// SetSkin records the palette name between runs.
func (w *World) SetSkin(name string) bool {
	if w.Running {
		return false
	}
	w.Skin = name
	return true
}

// GameOver reports whether the last run ended by losing all lives.
func (w *World) GameOver() bool {
	return !w.Running && w.Lives <= 0
}
