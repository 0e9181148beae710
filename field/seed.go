package field

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorSeed derives per-particle colors from a base color.
//
// With all HSL spreads at zero each RGB channel is jittered by up to
// Jitter/2 in either direction (0..255 units). With any HSL spread set the
// color is drawn from a window centered on the base hue, saturation and
// lightness instead.
type ColorSeed struct {
	Base        colorful.Color
	Jitter      float64
	HueSpread   float64 // degrees
	SatSpread   float64 // 0..1
	LightSpread float64 // 0..1
}

const DefaultJitter = 30.0

// DefaultSeed is the blue used by the enhanced backdrop.
var DefaultSeed = ColorSeed{
	Base:   colorful.Color{R: 59.0 / 255, G: 130.0 / 255, B: 246.0 / 255},
	Jitter: DefaultJitter,
}

// ParseSeed builds a jitter seed from a "#rrggbb" string.
func ParseSeed(hex string) (ColorSeed, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return ColorSeed{}, fmt.Errorf("parse color seed %q: %w", hex, err)
	}
	return ColorSeed{Base: c, Jitter: DefaultJitter}, nil
}

func (s ColorSeed) usesHSL() bool {
	return s.HueSpread > 0 || s.SatSpread > 0 || s.LightSpread > 0
}

// Pick returns an opaque color for one particle.
func (s ColorSeed) Pick(rng *rand.Rand) color.NRGBA {
	if s.usesHSL() {
		h, sat, l := s.Base.Hsl()
		h = math.Mod(h+(rng.Float64()-0.5)*s.HueSpread+360, 360)
		sat = clamp01(sat + (rng.Float64()-0.5)*s.SatSpread)
		l = clamp01(l + (rng.Float64()-0.5)*s.LightSpread)
		r, g, b := colorful.Hsl(h, sat, l).Clamped().RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}
	}

	r, g, b := s.Base.Clamped().RGB255()
	jitter := func(v uint8) uint8 {
		out := float64(v) + math.Floor((rng.Float64()-0.5)*s.Jitter)
		return uint8(math.Max(0, math.Min(255, out)))
	}
	return color.NRGBA{R: jitter(r), G: jitter(g), B: jitter(b), A: 0xff}
}

// RGB returns the base color as an opaque NRGBA, used for connection lines.
func (s ColorSeed) RGB() color.NRGBA {
	r, g, b := s.Base.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
