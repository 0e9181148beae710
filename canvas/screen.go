package canvas

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"starfield/field"
)

// Screen adapts an ebiten image to field.Surface.
type Screen struct {
	Image     *ebiten.Image
	Antialias bool
}

func NewScreen(img *ebiten.Image) *Screen {
	return &Screen{Image: img, Antialias: true}
}

func (s *Screen) Available() bool {
	if s == nil || s.Image == nil {
		return false
	}
	b := s.Image.Bounds()
	return b.Dx() > 0 && b.Dy() > 0
}

func (s *Screen) FillCircle(cx, cy, r float64, c color.NRGBA, alpha float64) {
	if r <= 0 {
		return
	}
	vector.DrawFilledCircle(s.Image, float32(cx), float32(cy), float32(r), field.WithAlpha(c, alpha), s.Antialias)
}

func (s *Screen) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA, alpha float64) {
	vector.StrokeLine(s.Image, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), field.WithAlpha(c, alpha), s.Antialias)
}

func (s *Screen) FillRect(x, y, w, h float64, c color.NRGBA, alpha float64) {
	vector.DrawFilledRect(s.Image, float32(x), float32(y), float32(w), float32(h), field.WithAlpha(c, alpha), false)
}
