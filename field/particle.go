package field

import (
	"image/color"
	"math"
)

// Vec is a 2D point or vector in surface units.
type Vec struct {
	X, Y float64
}

func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Particle is one point of the field.
type Particle struct {
	Pos Vec
	Vel Vec

	BaseSize float64
	Size     float64
	SizeStep float64 // signed; zero when size pulse is off

	Color     color.NRGBA
	Alpha     float64
	AlphaStep float64 // signed; zero when alpha pulse is off

	GlowSize float64
}

// clampSpeed scales v down to max magnitude if it exceeds it.
func clampSpeed(v *Vec, max float64) {
	speed := v.Len()
	if speed > max && speed > 0 {
		v.X = v.X / speed * max
		v.Y = v.Y / speed * max
	}
}

// wrap maps v into [0, size) on a torus.
func wrap(v, size float64) float64 {
	if v >= 0 && v < size {
		return v
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	// -tiny + size can round up to size
	if v >= size {
		v = 0
	}
	return v
}

// pulse advances a bounded oscillation by one step. The value is pinned to
// the bound it reaches and the step turns back toward the other bound.
func pulse(v, step, lo, hi float64) (float64, float64) {
	v += step
	switch {
	case v >= hi:
		return hi, -math.Abs(step)
	case v <= lo:
		return lo, math.Abs(step)
	}
	return v, step
}
