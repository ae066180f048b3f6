package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

// TerminalSurface scales the playfield onto a tcell screen. Each cell is a
// background-colored block; translucent fills are blended in RGB against
// what the cell already shows.
type TerminalSurface struct {
	screen tcell.Screen
	camera *Camera
	cells  []colorful.Color
}

// NewTerminalSurface creates a surface covering the whole screen.
func NewTerminalSurface(screen tcell.Screen) *TerminalSurface {
	t := &TerminalSurface{screen: screen}
	t.Resize()
	return t
}

// Resize re-reads the screen size. Call it after a tcell resize event.
func (t *TerminalSurface) Resize() {
	w, h := t.screen.Size()
	t.camera = NewCamera(w, h)
	t.cells = make([]colorful.Color, t.camera.ViewWidth*t.camera.ViewHeight)
}

// Camera exposes the playfield-to-cell mapping.
func (t *TerminalSurface) Camera() *Camera { return t.camera }

// Show flushes the frame to the terminal.
func (t *TerminalSurface) Show() { t.screen.Show() }

// FillRect implements Surface.
func (t *TerminalSurface) FillRect(x, y, w, h float64, c colorful.Color, alpha float64) {
	c0, r0, c1, r1 := t.camera.CellSpan(x, y, w, h)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			i := row*t.camera.ViewWidth + col
			if alpha >= 1 {
				t.cells[i] = c
			} else {
				t.cells[i] = t.cells[i].BlendRgb(c, alpha).Clamped()
			}
			t.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault.Background(toTcell(t.cells[i])))
		}
	}
}

// Text implements Surface.
func (t *TerminalSurface) Text(x, y float64, text string, c colorful.Color) {
	col, row, _ := t.camera.WorldToScreen(x, y)
	t.drawText(col, row, text, c)
}

// CenterText implements Surface.
func (t *TerminalSurface) CenterText(cx, y float64, text string, c colorful.Color) {
	col, row, _ := t.camera.WorldToScreen(cx, y)
	t.drawText(col-runewidth.StringWidth(text)/2, row, text, c)
}

func (t *TerminalSurface) drawText(col, row int, text string, c colorful.Color) {
	if row < 0 || row >= t.camera.ViewHeight {
		return
	}
	fg := toTcell(c)
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if col >= 0 && col+w <= t.camera.ViewWidth {
			bg := toTcell(t.cells[row*t.camera.ViewWidth+col])
			t.screen.SetContent(col, row, ch, nil, tcell.StyleDefault.Foreground(fg).Background(bg))
		}
		col += w
	}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
