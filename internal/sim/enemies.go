package sim

import (
	"hero-blaster/internal/world"
	"math"
	"math/rand"
	"slices"
)

// SpawnThreshold is the number of frames between enemy spawns at the world's
// current difficulty and level.
func SpawnThreshold(w *world.World) float64 {
	p := w.Difficulty.Profile()
	return math.Max(float64(p.MinSpawnFrames), float64(p.SpawnFrames)-float64(w.Level)*p.LevelRamp)
}

func spawnEnemies(w *world.World, rng *rand.Rand) {
	w.SpawnTimer++
	if w.Boss != nil || float64(w.SpawnTimer) <= SpawnThreshold(w) {
		return
	}
	size := rng.Float64()*22 + 24
	w.Enemies = append(w.Enemies, world.Enemy{
		Rect: world.Rect{
			X: rng.Float64() * (world.Width - size),
			Y: -size,
			W: size,
			H: size,
		},
		Speed: (rng.Float64()*1.05 + 1.15 + float64(w.Level)*0.16) * w.Difficulty.Profile().EnemySpeed,
	})
	w.SpawnTimer = 0
}

// moveEnemies advances every enemy and removes those that slipped past the
// bottom, each costing one damage event.
func moveEnemies(w *world.World, r *Report) {
	for i := range w.Enemies {
		w.Enemies[i].Y += w.Enemies[i].Speed
	}
	for i := len(w.Enemies) - 1; i >= 0; i-- {
		if w.Enemies[i].Y > world.Height+20 {
			w.Enemies = slices.Delete(w.Enemies, i, i+1)
			damage(w, r)
		}
	}
}

// resolveEnemyHits walks enemies from the back. An enemy is removed as soon
// as one outcome applies: a bullet hit first, otherwise a ship collision.
func resolveEnemyHits(w *world.World, r *Report) {
	for i := len(w.Enemies) - 1; i >= 0; i-- {
		enemy := w.Enemies[i]

		hit := false
		for j := len(w.Bullets) - 1; j >= 0; j-- {
			if enemy.Overlaps(w.Bullets[j].Rect) {
				w.Enemies = slices.Delete(w.Enemies, i, i+1)
				w.Bullets = slices.Delete(w.Bullets, j, j+1)
				addKill(w, r)
				hit = true
				break
			}
		}
		if hit {
			continue
		}

		for _, t := range world.Teams {
			if !w.PlayerEnabled(t) {
				continue
			}
			if enemy.Overlaps(w.Player(t).Rect) {
				w.Enemies = slices.Delete(w.Enemies, i, i+1)
				damage(w, r)
				break
			}
		}
	}
}
