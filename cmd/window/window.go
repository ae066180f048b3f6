package main

import (
	"hero-blaster/internal/game"
	"hero-blaster/internal/input"
	"hero-blaster/internal/render"
	"hero-blaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// window is the ebiten front end. ebiten calls Update at 60 TPS, so each
// Update is one simulation frame.
type window struct {
	session  *game.Session
	surface  *imageSurface
	renderer *render.Renderer
	panel    *game.Panel

	keys     []ebiten.Key
	touches  []ebiten.TouchID
	pointers []game.Point
}

func newWindow(s *game.Session) *window {
	surface := newImageSurface()
	return &window{
		session:  s,
		surface:  surface,
		renderer: render.NewRenderer(surface, s.Palette()),
		panel:    game.NewPanel(),
	}
}

// keyName maps an ebiten key onto the names used by input bindings.
func keyName(k ebiten.Key) string {
	switch name := k.String(); name {
	case "Space":
		return " "
	default:
		return name
	}
}

func (w *window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	s := w.session
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)

	w.keys = inpututil.AppendJustPressedKeys(w.keys[:0])
	for _, k := range w.keys {
		name := keyName(k)
		if ctrl {
			name = "Ctrl+" + name
		}
		if c, ok := game.Hotkey(name, s.World().Skin); ok {
			s.Post(c)
			continue
		}
		if !ctrl {
			s.KeyDown(name)
		}
	}
	w.keys = inpututil.AppendJustReleasedKeys(w.keys[:0])
	for _, k := range w.keys {
		s.KeyUp(keyName(k))
	}

	w.pointers = w.pointers[:0]
	w.touches = inpututil.AppendJustPressedTouchIDs(w.touches[:0])
	for _, id := range w.touches {
		x, y := ebiten.TouchPosition(id)
		w.panel.Press(s, game.Point{X: float64(x), Y: float64(y)})
	}
	w.touches = ebiten.AppendTouchIDs(w.touches[:0])
	for _, id := range w.touches {
		x, y := ebiten.TouchPosition(id)
		w.pointers = append(w.pointers, game.Point{X: float64(x), Y: float64(y)})
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		at := game.Point{X: float64(x), Y: float64(y)}
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			w.panel.Press(s, at)
		}
		w.pointers = append(w.pointers, at)
	}
	w.panel.Hold(s.Touch(), w.pointers)

	s.Tick()
	return nil
}

func (w *window) Draw(screen *ebiten.Image) {
	s := w.session
	w.surface.dst = screen
	w.renderer.SetPalette(s.Palette())
	w.renderer.DrawFrame(s.World())
	w.renderer.DrawHUD(s.World(), s.NetStatus())

	footer := []string{input.Help(s.World().Mode)}
	if code := s.LocalCode(); code != "" {
		footer = append(footer, "LOCAL "+code)
	}
	w.renderer.DrawFooter(footer...)
	w.panel.Draw(w.surface, s.Palette(), s.Touch())
}

func (w *window) Layout(_, _ int) (int, int) {
	return world.Width, world.Height + game.PanelHeight
}
