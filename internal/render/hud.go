package render

import (
	"fmt"
	"hero-blaster/assets"
	"hero-blaster/internal/world"
	"strings"
)

// StatusLine formats score, lives, level, difficulty, gameplay mode, the boss
// indicator and the peer status as one line.
func StatusLine(w *world.World, netStatus string) string {
	game := "GAME MODE ?"
	if w.Mode != world.ModeNone {
		game = "GAME " + strings.ToUpper(w.Mode.String())
	}
	boss := fmt.Sprintf("BOSS L%d", w.NextBossLevel)
	if w.Boss != nil {
		boss = fmt.Sprintf("BOSS HP %d", max(0, w.Boss.HP))
	}
	line := fmt.Sprintf("SCORE %d  LIVES %d  LEVEL %d  MODE %s  %s  %s",
		w.Score, w.Lives, w.Level, strings.ToUpper(w.Difficulty.String()), game, boss)
	if netStatus != "" {
		line += "  NET " + netStatus
	}
	return line
}

// DrawHUD renders the status line along the top edge of the playfield.
func (r *Renderer) DrawHUD(w *world.World, netStatus string) {
	r.surface.Text(8, 4, StatusLine(w, netStatus), assets.BodyText)
}

const footerLineHeight = 28

// DrawFooter renders hint lines stacked up from the bottom edge, last line
// lowest.
func (r *Renderer) DrawFooter(lines ...string) {
	for i, line := range lines {
		y := float64(world.Height - footerLineHeight*(len(lines)-i))
		r.surface.Text(8, y, line, assets.BodyText)
	}
}
