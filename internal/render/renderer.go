// Package render paints World State onto a Surface that only knows how to
// fill rectangles and draw text.
package render

import (
	"hero-blaster/assets"
	"hero-blaster/internal/world"

	"github.com/lucasb-eyer/go-colorful"
)

// Surface is a 2D drawing target in playfield coordinates.
type Surface interface {
	// FillRect paints a solid rectangle. alpha is in [0,1]; 1 is opaque.
	FillRect(x, y, w, h float64, c colorful.Color, alpha float64)
	// Text draws a left-aligned line with its top at y.
	Text(x, y float64, text string, c colorful.Color)
	// CenterText draws a line horizontally centred on cx.
	CenterText(cx, y float64, text string, c colorful.Color)
}

// Renderer draws the game world onto a Surface.
type Renderer struct {
	surface Surface
	palette assets.Palette
}

// NewRenderer creates a Renderer for the given surface and palette.
func NewRenderer(s Surface, p assets.Palette) *Renderer {
	return &Renderer{surface: s, palette: p}
}

// SetPalette switches the skin colors.
func (r *Renderer) SetPalette(p assets.Palette) { r.palette = p }

// Palette returns the active skin colors.
func (r *Renderer) Palette() assets.Palette { return r.palette }

// DrawFrame paints background, stars, bullets, enemies, the boss, enabled
// ships and, when the run is not live, the start or pause overlay.
func (r *Renderer) DrawFrame(w *world.World) {
	s := r.surface
	s.FillRect(0, 0, world.Width, world.Height, assets.Background, 1)

	for _, st := range w.Stars {
		s.FillRect(st.X, st.Y, st.Size, st.Size, assets.StarColor, 0.9)
	}
	for _, b := range w.Bullets {
		s.FillRect(b.X, b.Y, b.W, b.H, r.palette.Bullet, 1)
	}
	for _, e := range w.Enemies {
		s.FillRect(e.X, e.Y, e.W, e.H, r.palette.Enemy, 1)
		s.FillRect(e.X+e.W*0.2, e.Y+e.H*0.25, e.W*0.18, e.H*0.18, assets.EyeColor, 1)
		s.FillRect(e.X+e.W*0.62, e.Y+e.H*0.25, e.W*0.18, e.H*0.18, assets.EyeColor, 1)
	}
	for _, b := range w.BossBullets {
		s.FillRect(b.X, b.Y, b.W, b.H, r.palette.BossBullet, 1)
	}
	if b := w.Boss; b != nil {
		r.drawBoss(b)
	}

	r.drawPlayer(w.Player(world.Red), r.palette.RedTeam)
	if w.PlayerEnabled(world.Blue) {
		r.drawPlayer(w.Player(world.Blue), r.palette.BlueTeam)
	}

	switch {
	case !w.Running:
		r.drawStartOverlay(w)
	case w.Paused:
		r.drawPausedOverlay()
	}
}

func (r *Renderer) drawBoss(b *world.Boss) {
	s := r.surface
	s.FillRect(b.X, b.Y, b.W, b.H, r.palette.Boss, 1)
	s.FillRect(b.X+40, b.Y+22, 24, 16, assets.EyeColor, 1)
	s.FillRect(b.X+116, b.Y+22, 24, 16, assets.EyeColor, 1)

	barW := b.W - 32
	s.FillRect(b.X+16, b.Y-12, barW, 7, colorful.Color{}, 0.3)
	if b.MaxHP > 0 {
		hpW := max(0, barW*float64(b.HP)/float64(b.MaxHP))
		s.FillRect(b.X+16, b.Y-12, hpW, 7, assets.HPBarFill, 1)
	}
}

// drawPlayer paints the ship silhouette: nose, hull, two fins and a cockpit.
func (r *Renderer) drawPlayer(p *world.Player, c colorful.Color) {
	s := r.surface
	s.FillRect(p.X+10, p.Y, 22, 12, c, 1)
	s.FillRect(p.X, p.Y+12, 42, 22, c, 1)
	s.FillRect(p.X+8, p.Y+34, 10, 8, c, 1)
	s.FillRect(p.X+24, p.Y+34, 10, 8, c, 1)
	s.FillRect(p.X+18, p.Y+18, 6, 8, assets.Cockpit, 1)
}

func (r *Renderer) drawPausedOverlay() {
	s := r.surface
	s.FillRect(0, 0, world.Width, world.Height, assets.Overlay, 0.66)
	s.CenterText(world.Width/2, world.Height/2-20, "PAUSED", assets.TitleText)
	s.CenterText(world.Width/2, world.Height/2+18, "Press P or Pause to continue", assets.BodyText)
}

func (r *Renderer) drawStartOverlay(w *world.World) {
	s := r.surface
	s.FillRect(0, 0, world.Width, world.Height, assets.Overlay, 0.74)
	title := "HERO BLASTER LEGENDS"
	if w.Lives <= 0 {
		title = "GAME OVER"
	}
	s.CenterText(world.Width/2, world.Height/2-42, title, assets.TitleText)

	if w.Mode == world.ModeNone {
		s.CenterText(world.Width/2, world.Height/2, "Choose SINGLE or MULTI first", assets.BodyText)
		s.CenterText(world.Width/2, world.Height/2+34, "Then press Enter to start", assets.BodyText)
		return
	}
	sub := "Team Red + Blue Mode"
	if w.Mode == world.ModeSingle {
		sub = "Single Player Mode"
	}
	s.CenterText(world.Width/2, world.Height/2, "Press Enter to Start", assets.BodyText)
	s.CenterText(world.Width/2, world.Height/2+34, sub, assets.BodyText)
}
