package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"starfield/engine"
)

// fileFormat is the YAML layout:
//
//	presets:
//	  - name: drift
//	    count: 80
//	    color: "#06b6d4"
//	    options:
//	      alpha_pulse: true
//	      alpha_min: 0
//
// Omitted option switches are off and omitted numbers keep the field
// defaults. An explicit alpha_min or repulsion_strength of 0 is kept.
type fileFormat struct {
	Presets []Preset `yaml:"presets"`
}

// Load reads a catalog from a .yaml/.yml file or a Starlark .star script.
// A script must leave a global named presets holding a list of dicts with
// the same keys as the YAML form.
func Load(path string, logger *zap.Logger) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	return Parse(path, data, logger)
}

// Parse decodes catalog data; path only selects the format and names the
// source in errors.
func Parse(path string, data []byte, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var presets []Preset
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		presets, err = parseYAML(data)
	case ".star":
		presets, err = parseStarlark(path, data, logger)
	default:
		return nil, fmt.Errorf("%s: unsupported preset format", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	c := &Catalog{
		Source:  path,
		Hash:    engine.ComputeInputHash(path, map[string]interface{}{"data": string(data)}),
		Presets: presets,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func parseYAML(data []byte) ([]Preset, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return f.Presets, nil
}

func parseStarlark(path string, data []byte, logger *zap.Logger) ([]Preset, error) {
	inputs := map[string]interface{}{
		"default_count":    100,
		"default_distance": 100.0,
	}
	out, err := engine.ExecuteStarlark(filepath.Base(path), string(data), inputs, func(msg string) {
		logger.Debug("preset script", zap.String("source", path), zap.String("msg", msg))
	})
	if err != nil {
		return nil, fmt.Errorf("run script: %w", err)
	}

	raw, ok := out["presets"]
	if !ok {
		return nil, fmt.Errorf("script does not define presets")
	}
	if _, ok := raw.([]interface{}); !ok {
		return nil, fmt.Errorf("presets must be a list, got %T", raw)
	}

	// Round-trip through YAML so scripts share the file schema and tags.
	buf, err := yaml.Marshal(map[string]interface{}{"presets": raw})
	if err != nil {
		return nil, fmt.Errorf("encode script presets: %w", err)
	}
	return parseYAML(buf)
}
