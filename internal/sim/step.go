package sim

import (
	"hero-blaster/internal/input"
	"hero-blaster/internal/world"
	"math"
	"math/rand"
)

// Report summarizes what happened during one Step.
type Report struct {
	ShotsFired  int
	Kills       int
	LevelUps    int
	DamageTaken int // damage events that actually cost lives
	BossSpawned bool
	BossHits    int
	BossKilled  bool
	RunEnded    bool
}

// Step advances w by one frame using the per-team intents. It does nothing
// unless a run is live. rng drives enemy spawns and star wrap-around.
//
// The order of the phases is fixed; collision ties are broken by it.
func Step(w *world.World, intents [2]input.Intent, rng *rand.Rand) Report {
	var r Report
	if !w.Running || w.Paused {
		return r
	}

	movePlayers(w, intents, &r)
	if w.HitCooldown > 0 {
		w.HitCooldown--
	}
	spawnEnemies(w, rng)
	moveStars(w, rng)
	moveBullets(w)
	moveEnemies(w, &r)
	resolveEnemyHits(w, &r)
	updateBoss(w, &r)
	moveBossBullets(w)
	resolveBossHits(w, &r)

	if w.Lives <= 0 {
		w.Running = false
		w.Paused = false
		r.RunEnded = true
	}
	return r
}

// damage applies one shared damage event unless the team is invulnerable.
func damage(w *world.World, r *Report) {
	if w.HitCooldown > 0 {
		return
	}
	w.Lives -= world.HitDamage
	w.HitCooldown = world.HitCooldown
	r.DamageTaken++
}

// addKill awards one kill and levels up when the new score is a multiple of
// the profile's level-every constant. The check runs once per kill.
func addKill(w *world.World, r *Report) {
	w.Score += world.KillScore
	r.Kills++
	if w.Score%w.Difficulty.Profile().LevelEvery == 0 {
		w.Level++
		r.LevelUps++
	}
}

func movePlayers(w *world.World, intents [2]input.Intent, r *Report) {
	for _, t := range world.Teams {
		if !w.PlayerEnabled(t) {
			continue
		}
		p := w.Player(t)
		in := intents[t]
		if in.Left {
			p.X -= p.Speed
		}
		if in.Right {
			p.X += p.Speed
		}
		if in.Up {
			p.Y -= p.Speed
		}
		if in.Down {
			p.Y += p.Speed
		}
		p.X = math.Max(8, math.Min(world.Width-p.W-8, p.X))
		p.Y = math.Max(70, math.Min(world.Height-p.H-8, p.Y))

		if p.FireCooldown > 0 {
			p.FireCooldown--
		}
		p.Firing = in.Shoot
		if p.Firing && p.FireCooldown == 0 {
			w.Bullets = append(w.Bullets, world.Bullet{
				Rect: world.Rect{
					X: p.X + p.W/2 - world.BulletW/2,
					Y: p.Y - 8,
					W: world.BulletW,
					H: world.BulletH,
				},
				Speed: world.BulletSpeed,
				Team:  t,
			})
			p.FireCooldown = world.FireCooldown
			r.ShotsFired++
		}
	}
}

func moveStars(w *world.World, rng *rand.Rand) {
	for i := range w.Stars {
		s := &w.Stars[i]
		s.Y += s.Speed
		if s.Y > world.Height {
			s.Y = -4
			s.X = rng.Float64() * world.Width
		}
	}
}

func moveBullets(w *world.World) {
	kept := w.Bullets[:0]
	for _, b := range w.Bullets {
		b.Y -= b.Speed
		if b.Y+b.H > 0 {
			kept = append(kept, b)
		}
	}
	w.Bullets = kept
}

func moveBossBullets(w *world.World) {
	kept := w.BossBullets[:0]
	for _, b := range w.BossBullets {
		b.Y += b.Speed
		if b.Y < world.Height+30 {
			kept = append(kept, b)
		}
	}
	w.BossBullets = kept
}
