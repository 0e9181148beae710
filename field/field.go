// Package field simulates and draws a decorative particle field: drifting
// points on a torus linked by faint lines, optionally pushed away from the
// pointer.
//
// A Field is not safe for concurrent use. Everything, including pointer
// events, is expected to arrive on the goroutine that drives the frames.
package field

import (
	"image/color"
	"math"
	"math/rand/v2"
	"time"
)

// glowBoost is how much the glow radius grows, in units of size, at the
// center of the interaction radius.
const glowBoost = 2.0

// Stats is a snapshot of the field for HUDs and tests.
type Stats struct {
	Particles int
	Links     int
	Frames    uint64
}

type Field struct {
	rng *rand.Rand

	width, height float64
	count         int
	seed          ColorSeed
	opts          Options
	particles     []Particle

	lastPointer   Vec
	pointerActive bool

	sched       FrameScheduler
	cancelFrame func()
	unsubscribe func()

	frames uint64
	links  int
}

// New returns an empty field. A nil rng is replaced by a time-seeded one.
func New(rng *rand.Rand) *Field {
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>1|1))
	}
	return &Field{
		rng:  rng,
		seed: DefaultSeed,
		opts: DefaultOptions(),
	}
}

// Initialize discards any existing particles and creates count new ones
// spread uniformly over [0,width) x [0,height). The configuration is kept
// even when the surface has no area yet, so a later Resize can build the
// set.
func (f *Field) Initialize(width, height float64, count int, seed ColorSeed, opts Options) {
	f.count = count
	f.seed = seed
	f.opts = opts.Normalize()
	f.build(width, height)
}

// Resize rebuilds the whole set for the new bounds.
func (f *Field) Resize(width, height float64) {
	f.build(width, height)
}

// SetOptions swaps the options and rebuilds the set.
func (f *Field) SetOptions(opts Options) {
	f.opts = opts.Normalize()
	f.build(f.width, f.height)
}

func (f *Field) build(width, height float64) {
	f.width, f.height = width, height
	f.particles = nil
	f.links = 0
	if width <= 0 || height <= 0 || f.count <= 0 ||
		math.IsNaN(width) || math.IsNaN(height) {
		return
	}

	f.particles = make([]Particle, f.count)
	for i := range f.particles {
		f.particles[i] = f.newParticle()
	}
}

func (f *Field) newParticle() Particle {
	o := f.opts
	r := f.rng

	p := Particle{
		Pos: Vec{X: r.Float64() * f.width, Y: r.Float64() * f.height},
		Vel: Vec{X: (r.Float64() - 0.5) * o.Speed, Y: (r.Float64() - 0.5) * o.Speed},
	}
	clampSpeed(&p.Vel, o.MaxSpeed)

	p.BaseSize = o.SizeMin + r.Float64()*(o.SizeMax-o.SizeMin)
	p.Size = p.BaseSize
	if o.SizePulse {
		p.SizeStep = o.PulseStepMin + r.Float64()*(o.PulseStepMax-o.PulseStepMin)
		if r.Float64() < 0.5 {
			p.SizeStep = -p.SizeStep
		}
	}

	p.Color = f.seed.Pick(r)
	p.Alpha = o.AlphaMin + r.Float64()*(o.AlphaMax-o.AlphaMin)
	if o.AlphaPulse {
		p.AlphaStep = o.AlphaStepMin + r.Float64()*(o.AlphaStepMax-o.AlphaStepMin)
	}
	p.GlowSize = p.Size * o.GlowScale
	return p
}

// Advance moves every particle by exactly one frame.
func (f *Field) Advance() {
	if len(f.particles) == 0 {
		return
	}
	o := f.opts
	repel := o.Interactive && f.pointerActive

	for i := range f.particles {
		p := &f.particles[i]

		p.Pos.X = wrap(p.Pos.X+p.Vel.X, f.width)
		p.Pos.Y = wrap(p.Pos.Y+p.Vel.Y, f.height)

		p.GlowSize = p.Size * o.GlowScale
		if repel {
			f.repel(p)
		}

		p.Vel.X *= o.Damping
		p.Vel.Y *= o.Damping

		if o.SizePulse {
			p.Size, p.SizeStep = pulse(p.Size, p.SizeStep, p.BaseSize*o.PulseMin, p.BaseSize*o.PulseMax)
		}
		if o.AlphaPulse {
			p.Alpha, p.AlphaStep = pulse(p.Alpha, p.AlphaStep, o.AlphaMin, o.AlphaMax)
		}
	}
	f.frames++
}

func (f *Field) repel(p *Particle) {
	radius := f.opts.InteractionRadius
	dx := p.Pos.X - f.lastPointer.X
	dy := p.Pos.Y - f.lastPointer.Y
	dist := math.Hypot(dx, dy)
	if dist >= radius {
		return
	}

	force := (radius - dist) / radius
	p.Vel.X += dx * force * f.opts.RepulsionStrength
	p.Vel.Y += dy * force * f.opts.RepulsionStrength
	clampSpeed(&p.Vel, f.opts.MaxSpeed)

	p.GlowSize = p.Size * (f.opts.GlowScale + force*glowBoost)
}

// ConnectionOpacity is the linear falloff used for links: 1 at distance
// zero, 0 at maxDist and beyond.
func ConnectionOpacity(dist, maxDist float64) float64 {
	if maxDist <= 0 || dist >= maxDist {
		return 0
	}
	if dist <= 0 {
		return 1
	}
	return 1 - dist/maxDist
}

// Render paints the particles and then the links between every pair closer
// than the connection distance. The pair scan is quadratic, which is fine
// for the low hundreds of particles this is meant for.
func (f *Field) Render(s Surface) {
	if s == nil || !s.Available() || len(f.particles) == 0 {
		return
	}
	o := f.opts

	for i := range f.particles {
		p := &f.particles[i]
		if o.Glow {
			s.FillCircle(p.Pos.X, p.Pos.Y, p.GlowSize, p.Color, o.GlowOpacity)
		}
		s.FillCircle(p.Pos.X, p.Pos.Y, p.Size, p.Color, p.Alpha)
	}

	lineColor := f.seed.RGB()
	links := 0
	for i := 0; i < len(f.particles); i++ {
		a := f.particles[i].Pos
		for j := i + 1; j < len(f.particles); j++ {
			b := f.particles[j].Pos
			opacity := ConnectionOpacity(math.Hypot(a.X-b.X, a.Y-b.Y), o.ConnectionDistance) * o.LineOpacity
			if opacity <= 0 {
				continue
			}
			s.StrokeLine(a.X, a.Y, b.X, b.Y, o.LineWidth, lineColor, opacity)
			links++
		}
	}
	f.links = links
}

// SetPointer records the pointer position and marks it as over the surface.
func (f *Field) SetPointer(x, y float64) {
	f.lastPointer = Vec{X: x, Y: y}
	f.pointerActive = true
}

// PointerLeave stops repulsion. The last position is kept; damping keeps
// running so pushed particles settle.
func (f *Field) PointerLeave() {
	f.pointerActive = false
}

func (f *Field) handlePointer(ev PointerEvent) {
	if ev.Inside {
		f.SetPointer(ev.X, ev.Y)
		return
	}
	f.PointerLeave()
}

// Mount subscribes to pointer events and starts advancing once per frame.
// Either argument may be nil. Mounting again replaces the previous
// subscriptions.
func (f *Field) Mount(sched FrameScheduler, pointer PointerSource) {
	f.detach()
	if pointer != nil {
		f.unsubscribe = pointer.SubscribePointer(f.handlePointer)
	}
	if sched != nil {
		f.sched = sched
		f.schedule()
	}
}

func (f *Field) schedule() {
	f.cancelFrame = f.sched.RequestFrame(f.onFrame)
}

func (f *Field) onFrame() {
	f.cancelFrame = nil
	f.Advance()
	if f.sched != nil {
		f.schedule()
	}
}

func (f *Field) detach() {
	if f.cancelFrame != nil {
		f.cancelFrame()
		f.cancelFrame = nil
	}
	if f.unsubscribe != nil {
		f.unsubscribe()
		f.unsubscribe = nil
	}
	f.sched = nil
	f.pointerActive = false
}

// Teardown cancels the pending frame, drops the pointer subscription and
// releases the particles. It is safe to call any number of times.
func (f *Field) Teardown() {
	f.detach()
	f.particles = nil
	f.links = 0
}

// Particles returns the live particle slice. Callers must not keep it across
// a Resize or Initialize.
func (f *Field) Particles() []Particle {
	return f.particles
}

func (f *Field) Options() Options {
	return f.opts
}

func (f *Field) Seed() ColorSeed {
	return f.seed
}

func (f *Field) Bounds() (float64, float64) {
	return f.width, f.height
}

func (f *Field) PointerActive() bool {
	return f.pointerActive
}

func (f *Field) Stats() Stats {
	return Stats{Particles: len(f.particles), Links: f.links, Frames: f.frames}
}

// WithAlpha folds a [0,1] opacity into c's alpha channel.
func WithAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(math.Round(clamp01(alpha) * float64(c.A)))
	return c
}
