package sim

import (
	"hero-blaster/internal/world"
	"math"
	"slices"
)

// BossHP is the hit-point pool of a boss spawned at level.
func BossHP(level int) int {
	return world.BossHPBase + int(math.Floor(float64(level)*world.BossHPPerLvl))
}

func spawnBoss(w *world.World) {
	hp := BossHP(w.Level)
	w.Boss = &world.Boss{
		Rect: world.Rect{
			X: world.Width/2 - world.BossW/2,
			Y: world.BossY,
			W: world.BossW,
			H: world.BossH,
		},
		HP:    hp,
		MaxHP: hp,
		Speed: 1.65 + float64(w.Level)*0.02,
		Dir:   1,
	}
	w.Enemies = nil
	w.BossBullets = nil
	w.BossShotTimer = 0
}

func updateBoss(w *world.World, r *Report) {
	if w.Boss == nil && w.Level >= w.NextBossLevel {
		spawnBoss(w)
		r.BossSpawned = true
	}
	b := w.Boss
	if b == nil {
		return
	}

	b.X += b.Speed * b.Dir
	if b.X <= world.BossMargin || b.X+b.W >= world.Width-world.BossMargin {
		b.Dir = -b.Dir
	}

	w.BossShotTimer++
	if w.BossShotTimer > world.BossShotGap {
		w.BossBullets = append(w.BossBullets, world.BossBullet{
			Rect: world.Rect{
				X: b.X + b.W/2 - world.BossBulletW/2,
				Y: b.Y + b.H - 2,
				W: world.BossBulletW,
				H: world.BossBulletH,
			},
			Speed: 5 + float64(w.Level)*0.05,
		})
		w.BossShotTimer = 0
	}
}

func resolveBossHits(w *world.World, r *Report) {
	b := w.Boss
	if b == nil {
		return
	}

	for j := len(w.Bullets) - 1; j >= 0; j-- {
		if b.Overlaps(w.Bullets[j].Rect) {
			w.Bullets = slices.Delete(w.Bullets, j, j+1)
			b.HP--
			r.BossHits++
		}
	}

	for j := len(w.BossBullets) - 1; j >= 0; j-- {
		for _, t := range world.Teams {
			if !w.PlayerEnabled(t) {
				continue
			}
			if w.Player(t).Overlaps(w.BossBullets[j].Rect) {
				w.BossBullets = slices.Delete(w.BossBullets, j, j+1)
				damage(w, r)
				break
			}
		}
	}

	for _, t := range world.Teams {
		if w.PlayerEnabled(t) && w.Player(t).Overlaps(b.Rect) {
			damage(w, r)
		}
	}

	if b.HP <= 0 {
		w.Score += world.BossKillScore
		w.Level++
		w.Boss = nil
		w.BossBullets = nil
		w.NextBossLevel += world.BossLevelStep
		r.BossKilled = true
	}
}
