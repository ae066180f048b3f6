package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
)

// Debug font cell size.
const (
	glyphW = 6
	glyphH = 16

	maxCachedLabels = 256
)

// imageSurface draws onto the ebiten screen image for one frame. Text is
// printed in white once per string into a cached image and tinted on draw.
type imageSurface struct {
	dst    *ebiten.Image
	labels map[string]*ebiten.Image
}

func newImageSurface() *imageSurface {
	return &imageSurface{labels: make(map[string]*ebiten.Image)}
}

func toRGBA(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}

func (s *imageSurface) FillRect(x, y, w, h float64, c colorful.Color, alpha float64) {
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), toRGBA(c, alpha), false)
}

func (s *imageSurface) Text(x, y float64, text string, c colorful.Color) {
	if text == "" {
		return
	}
	img := s.label(text)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(toRGBA(c, 1))
	s.dst.DrawImage(img, op)
}

func (s *imageSurface) CenterText(cx, y float64, text string, c colorful.Color) {
	s.Text(cx-float64(len(text)*glyphW)/2, y, text, c)
}

func (s *imageSurface) label(text string) *ebiten.Image {
	if img, ok := s.labels[text]; ok {
		return img
	}
	if len(s.labels) >= maxCachedLabels {
		for k, img := range s.labels {
			img.Deallocate()
			delete(s.labels, k)
		}
	}
	img := ebiten.NewImage(len(text)*glyphW, glyphH)
	ebitenutil.DebugPrintAt(img, text, 0, 0)
	s.labels[text] = img
	return img
}
