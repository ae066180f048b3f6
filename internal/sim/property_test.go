package sim

import (
	"hero-blaster/internal/input"
	"hero-blaster/internal/world"
	"math/rand"
	"testing"

	"pgregory.net/rapid"
)

func drawIntent(t *rapid.T, label string) input.Intent {
	return input.Intent{
		Left:  rapid.Bool().Draw(t, label+".left"),
		Right: rapid.Bool().Draw(t, label+".right"),
		Up:    rapid.Bool().Draw(t, label+".up"),
		Down:  rapid.Bool().Draw(t, label+".down"),
		Shoot: rapid.Bool().Draw(t, label+".shoot"),
	}
}

// TestStepInvariants drives random runs and checks the scoring, leveling,
// damage and boss rules after every step.
func TestStepInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rng := rand.New(rand.NewSource(rapid.Int64().Draw(t, "seed")))
		w := world.New(rng)
		w.SetDifficulty(rapid.SampledFrom([]world.Difficulty{world.Easy, world.Medium, world.Hard}).Draw(t, "difficulty"))
		w.SetMode(rapid.SampledFrom([]world.Mode{world.ModeSingle, world.ModeMulti}).Draw(t, "mode"))
		w.Reset()
		w.Level = rapid.IntRange(1, 12).Draw(t, "level")
		w.Lives = rapid.IntRange(1, 40).Draw(t, "lives")

		steps := rapid.IntRange(1, 400).Draw(t, "steps")
		held := [2]input.Intent{drawIntent(t, "red"), drawIntent(t, "blue")}
		for i := 0; i < steps && w.Running; i++ {
			if i%25 == 0 {
				held = [2]input.Intent{drawIntent(t, "red"), drawIntent(t, "blue")}
			}
			score, level, lives, cooldown := w.Score, w.Level, w.Lives, w.HitCooldown

			r := Step(w, held, rng)

			bossScore := 0
			bossLevel := 0
			if r.BossKilled {
				bossScore, bossLevel = world.BossKillScore, 1
			}
			if got, want := w.Score-score, r.Kills*world.KillScore+bossScore; got != want {
				t.Fatalf("step %d: score moved by %d; want %d", i, got, want)
			}
			if got, want := w.Level-level, r.LevelUps+bossLevel; got != want || got < 0 {
				t.Fatalf("step %d: level moved by %d; want %d", i, got, want)
			}

			if w.Lives < lives {
				if lives-w.Lives != world.HitDamage {
					t.Fatalf("step %d: lost %d lives in one step", i, lives-w.Lives)
				}
				// The step decrements the timer before any damage lands.
				if cooldown > 1 {
					t.Fatalf("step %d: damage applied with cooldown %d", i, cooldown)
				}
				if w.HitCooldown != world.HitCooldown {
					t.Fatalf("step %d: cooldown after hit = %d", i, w.HitCooldown)
				}
			}
			if w.Lives > lives {
				t.Fatalf("step %d: lives grew from %d to %d", i, lives, w.Lives)
			}

			if w.Boss != nil && len(w.Enemies) != 0 {
				t.Fatalf("step %d: %d enemies alive alongside the boss", i, len(w.Enemies))
			}
			if w.Lives <= 0 && (w.Running || w.Paused) {
				t.Fatalf("step %d: run live with %d lives", i, w.Lives)
			}
			for _, tm := range world.Teams {
				p := w.Player(tm)
				if !w.PlayerEnabled(tm) {
					continue
				}
				if p.X < 8 || p.X > world.Width-p.W-8 || p.Y < 70 || p.Y > world.Height-p.H-8 {
					t.Fatalf("step %d: %v out of bounds at (%v,%v)", i, tm, p.X, p.Y)
				}
				if p.FireCooldown < 0 || p.FireCooldown > world.FireCooldown {
					t.Fatalf("step %d: %v fire cooldown %d", i, tm, p.FireCooldown)
				}
			}
		}
	})
}
