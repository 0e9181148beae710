// Package preset holds named particle field configurations and loads them
// from YAML or Starlark files.
package preset

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"starfield/field"
)

// Preset is one named field configuration. In preset files, omitted option
// switches are off and omitted numbers keep the field defaults.
type Preset struct {
	Name        string        `yaml:"name"`
	Count       int           `yaml:"count"`
	Color       string        `yaml:"color"`
	Jitter      float64       `yaml:"jitter,omitempty"`
	HueSpread   float64       `yaml:"hue_spread,omitempty"`
	SatSpread   float64       `yaml:"sat_spread,omitempty"`
	LightSpread float64       `yaml:"light_spread,omitempty"`
	Options     field.Options `yaml:"options"`
}

// UnmarshalYAML starts Options from field.BaseOptions so a preset without
// an options block gets the default numbers.
func (p *Preset) UnmarshalYAML(value *yaml.Node) error {
	type plain Preset
	raw := plain{Options: field.BaseOptions()}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*p = Preset(raw)
	return nil
}

// Seed parses the preset color into a field seed.
func (p Preset) Seed() (field.ColorSeed, error) {
	seed, err := field.ParseSeed(p.Color)
	if err != nil {
		return field.ColorSeed{}, err
	}
	if p.Jitter > 0 {
		seed.Jitter = p.Jitter
	}
	seed.HueSpread = p.HueSpread
	seed.SatSpread = p.SatSpread
	seed.LightSpread = p.LightSpread
	return seed, nil
}

func (p Preset) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("preset has no name")
	}
	if p.Count <= 0 {
		return fmt.Errorf("preset %q: count must be positive, got %d", p.Name, p.Count)
	}
	if _, err := p.Seed(); err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}
	return nil
}

// Apply initializes f with this preset at the given size.
func (p Preset) Apply(f *field.Field, width, height float64) error {
	seed, err := p.Seed()
	if err != nil {
		return err
	}
	f.Initialize(width, height, p.Count, seed, p.Options)
	return nil
}

// Catalog is an ordered set of presets loaded from one source.
type Catalog struct {
	Source  string
	Hash    string
	Presets []Preset
}

func (c *Catalog) Validate() error {
	if len(c.Presets) == 0 {
		return fmt.Errorf("%s: no presets defined", c.Source)
	}
	seen := make(map[string]bool, len(c.Presets))
	for _, p := range c.Presets {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%s: %w", c.Source, err)
		}
		if seen[p.Name] {
			return fmt.Errorf("%s: duplicate preset %q", c.Source, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// Get looks a preset up by name, case-insensitively.
func (c *Catalog) Get(name string) (Preset, bool) {
	for _, p := range c.Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Presets))
	for _, p := range c.Presets {
		names = append(names, p.Name)
	}
	return names
}

// Next returns the preset after name, wrapping around. An unknown name
// yields the first preset.
func (c *Catalog) Next(name string) Preset {
	for i, p := range c.Presets {
		if strings.EqualFold(p.Name, name) {
			return c.Presets[(i+1)%len(c.Presets)]
		}
	}
	return c.Presets[0]
}

// Builtin returns the presets that ship with the binary: the home page
// field, the classic dashboard field, the enhanced interactive field and the
// quiet boot-sequence backdrop.
func Builtin() *Catalog {
	classic := field.DefaultOptions()
	classic.Speed = 0.5
	classic.Glow = false
	classic.SizePulse = false
	classic.AlphaPulse = true
	classic.ConnectionDistance = 150
	classic.RepulsionStrength = 0.01
	classic.MaxSpeed = 2
	classic.LineOpacity = 0.2
	classic.LineWidth = 1

	enhanced := field.DefaultOptions()
	enhanced.AlphaMin = 0.3
	enhanced.AlphaMax = 0.8

	home := enhanced
	home.Glow = false

	welcome := field.DefaultOptions()
	welcome.Speed = 0.5
	welcome.Interactive = false
	welcome.Glow = false
	welcome.SizePulse = false
	welcome.AlphaPulse = true
	welcome.AlphaMin = 0.2
	welcome.AlphaMax = 0.8
	welcome.AlphaStepMin = 0.01
	welcome.AlphaStepMax = 0.03
	welcome.LineOpacity = 0.05

	return &Catalog{
		Source: "builtin",
		Presets: []Preset{
			{Name: "home", Count: 100, Color: "#06b6d4", Options: home},
			{Name: "classic", Count: 150, Color: "#71b3f4", HueSpread: 60, SatSpread: 0.3, LightSpread: 0.2, Options: classic},
			{Name: "enhanced", Count: 100, Color: "#3b82f6", Options: enhanced},
			{Name: "welcome", Count: 150, Color: "#6680ff", HueSpread: 60, Options: welcome},
		},
	}
}
