package canvas

import (
	"image/color"
	"math"

	"starfield/field"
)

// Painter is a field.Surface that can also fill rectangles.
type Painter interface {
	field.Surface
	FillRect(x, y, w, h float64, c color.NRGBA, alpha float64)
}

// Backdrop is the themed background behind the field: a vertical gradient
// and faint radar rings around the center of the surface.
type Backdrop struct {
	Top, Bottom color.NRGBA
	Ring        color.NRGBA
	RingAlpha   float64
	RingSpacing float64
	Bands       int
}

// ringSegments is how many straight pieces approximate one ring.
const ringSegments = 72

// Draw paints the backdrop over the whole w x h area.
func (b Backdrop) Draw(p Painter, w, h int) {
	if p == nil || !p.Available() || w <= 0 || h <= 0 {
		return
	}

	bands := b.Bands
	if bands <= 0 {
		bands = 32
	}
	bandH := float64(h) / float64(bands)
	for i := 0; i < bands; i++ {
		t := float64(i) / float64(max(bands-1, 1))
		p.FillRect(0, float64(i)*bandH, float64(w), math.Ceil(bandH), lerpColor(b.Top, b.Bottom, t), 1)
	}

	if b.RingSpacing <= 0 || b.RingAlpha <= 0 {
		return
	}
	cx, cy := float64(w)/2, float64(h)/2
	maxR := math.Hypot(cx, cy)
	for r := b.RingSpacing; r < maxR; r += b.RingSpacing {
		prevX, prevY := cx+r, cy
		for i := 1; i <= ringSegments; i++ {
			a := 2 * math.Pi * float64(i) / ringSegments
			x, y := cx+r*math.Cos(a), cy+r*math.Sin(a)
			p.StrokeLine(prevX, prevY, x, y, 1, b.Ring, b.RingAlpha)
			prevX, prevY = x, y
		}
	}
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
