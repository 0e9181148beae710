package field

import "gopkg.in/yaml.v3"

// Options tunes one field. Normalize replaces out-of-range numbers with
// DefaultOptions values. A zero is out of range everywhere except
// AlphaMin and RepulsionStrength, where it means fully faded and no push.
// The boolean switches are taken as-is.
type Options struct {
	Speed       float64 `yaml:"speed"`
	Interactive bool    `yaml:"interactive"`
	Glow        bool    `yaml:"glow"`

	ConnectionDistance float64 `yaml:"connection_distance"`
	InteractionRadius  float64 `yaml:"interaction_radius"`
	RepulsionStrength  float64 `yaml:"repulsion_strength"`
	MaxSpeed           float64 `yaml:"max_speed"`
	Damping            float64 `yaml:"damping"`

	SizeMin float64 `yaml:"size_min"`
	SizeMax float64 `yaml:"size_max"`

	// Size pulse bounds are factors of each particle's base size.
	SizePulse    bool    `yaml:"size_pulse"`
	PulseMin     float64 `yaml:"pulse_min"`
	PulseMax     float64 `yaml:"pulse_max"`
	PulseStepMin float64 `yaml:"pulse_step_min"`
	PulseStepMax float64 `yaml:"pulse_step_max"`

	AlphaPulse   bool    `yaml:"alpha_pulse"`
	AlphaMin     float64 `yaml:"alpha_min"`
	AlphaMax     float64 `yaml:"alpha_max"`
	AlphaStepMin float64 `yaml:"alpha_step_min"`
	AlphaStepMax float64 `yaml:"alpha_step_max"`

	LineOpacity float64 `yaml:"line_opacity"`
	LineWidth   float64 `yaml:"line_width"`
	GlowScale   float64 `yaml:"glow_scale"`
	GlowOpacity float64 `yaml:"glow_opacity"`
}

const (
	DefaultSpeed              = 1.0
	DefaultConnectionDistance = 100.0
	DefaultInteractionRadius  = 150.0
	DefaultRepulsionStrength  = 0.02
	DefaultMaxSpeed           = 3.0
	DefaultDamping            = 0.99
	DefaultSizeMin            = 1.0
	DefaultSizeMax            = 3.0
	DefaultPulseMin           = 0.7
	DefaultPulseMax           = 1.5
	DefaultPulseStepMin       = 0.01
	DefaultPulseStepMax       = 0.03
	DefaultAlphaMin           = 0.1
	DefaultAlphaMax           = 0.7
	DefaultAlphaStepMin       = 0.005
	DefaultAlphaStepMax       = 0.015
	DefaultLineOpacity        = 0.1
	DefaultLineWidth          = 0.5
	DefaultGlowScale          = 3.0
	DefaultGlowOpacity        = 0.15
)

// DefaultOptions matches the enhanced backdrop: interactive, glowing, size pulse.
func DefaultOptions() Options {
	return Options{
		Speed:              DefaultSpeed,
		Interactive:        true,
		Glow:               true,
		ConnectionDistance: DefaultConnectionDistance,
		InteractionRadius:  DefaultInteractionRadius,
		RepulsionStrength:  DefaultRepulsionStrength,
		MaxSpeed:           DefaultMaxSpeed,
		Damping:            DefaultDamping,
		SizeMin:            DefaultSizeMin,
		SizeMax:            DefaultSizeMax,
		SizePulse:          true,
		PulseMin:           DefaultPulseMin,
		PulseMax:           DefaultPulseMax,
		PulseStepMin:       DefaultPulseStepMin,
		PulseStepMax:       DefaultPulseStepMax,
		AlphaMin:           DefaultAlphaMin,
		AlphaMax:           DefaultAlphaMax,
		AlphaStepMin:       DefaultAlphaStepMin,
		AlphaStepMax:       DefaultAlphaStepMax,
		LineOpacity:        DefaultLineOpacity,
		LineWidth:          DefaultLineWidth,
		GlowScale:          DefaultGlowScale,
		GlowOpacity:        DefaultGlowOpacity,
	}
}

// BaseOptions is DefaultOptions with every switch off. Decoded options start
// from it, so omitted numbers keep their defaults and omitted switches are
// off.
func BaseOptions() Options {
	o := DefaultOptions()
	o.Interactive = false
	o.Glow = false
	o.SizePulse = false
	o.AlphaPulse = false
	return o
}

func (o *Options) UnmarshalYAML(value *yaml.Node) error {
	type plain Options
	p := plain(BaseOptions())
	if err := value.Decode(&p); err != nil {
		return err
	}
	*o = Options(p)
	return nil
}

// Normalize fills out-of-range numeric fields with defaults and orders
// min/max pairs.
func (o Options) Normalize() Options {
	positive := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	nonNegative := func(v *float64, def float64) {
		if *v < 0 {
			*v = def
		}
	}
	positive(&o.Speed, DefaultSpeed)
	positive(&o.ConnectionDistance, DefaultConnectionDistance)
	positive(&o.InteractionRadius, DefaultInteractionRadius)
	nonNegative(&o.RepulsionStrength, DefaultRepulsionStrength)
	positive(&o.MaxSpeed, DefaultMaxSpeed)
	positive(&o.SizeMin, DefaultSizeMin)
	positive(&o.SizeMax, DefaultSizeMax)
	positive(&o.PulseMin, DefaultPulseMin)
	positive(&o.PulseMax, DefaultPulseMax)
	positive(&o.PulseStepMin, DefaultPulseStepMin)
	positive(&o.PulseStepMax, DefaultPulseStepMax)
	nonNegative(&o.AlphaMin, DefaultAlphaMin)
	positive(&o.AlphaMax, DefaultAlphaMax)
	positive(&o.AlphaStepMin, DefaultAlphaStepMin)
	positive(&o.AlphaStepMax, DefaultAlphaStepMax)
	positive(&o.LineOpacity, DefaultLineOpacity)
	positive(&o.LineWidth, DefaultLineWidth)
	positive(&o.GlowScale, DefaultGlowScale)
	positive(&o.GlowOpacity, DefaultGlowOpacity)

	if o.Damping <= 0 || o.Damping >= 1 {
		o.Damping = DefaultDamping
	}

	o.SizeMin, o.SizeMax = ordered(o.SizeMin, o.SizeMax)
	o.PulseMin, o.PulseMax = ordered(o.PulseMin, o.PulseMax)
	o.PulseStepMin, o.PulseStepMax = ordered(o.PulseStepMin, o.PulseStepMax)
	o.AlphaStepMin, o.AlphaStepMax = ordered(o.AlphaStepMin, o.AlphaStepMax)

	o.AlphaMin = clamp01(o.AlphaMin)
	o.AlphaMax = clamp01(o.AlphaMax)
	o.AlphaMin, o.AlphaMax = ordered(o.AlphaMin, o.AlphaMax)
	o.LineOpacity = clamp01(o.LineOpacity)
	o.GlowOpacity = clamp01(o.GlowOpacity)
	return o
}

func ordered(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
