package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings are the viewer's local flags. Glow and Interactive override the
// preset when set.
type Settings struct {
	Preset      string `yaml:"preset"`
	Glow        *bool  `yaml:"glow,omitempty"`
	Interactive *bool  `yaml:"interactive,omitempty"`
	Visited     bool   `yaml:"visited"`
}

func SaveSettings(s *Settings, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return enc.Close()
}

// LoadSettings reads filename. A missing file is a first visit and yields
// empty settings.
func LoadSettings(filename string) (*Settings, error) {
	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return &Settings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("load settings %s: %w", filename, err)
	}
	return &s, nil
}
