package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadSettings(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "settings.yaml")
	glow := false
	in := &Settings{Preset: "classic", Glow: &glow, Visited: true}

	require.NoError(t, SaveSettings(in, filename))

	out, err := LoadSettings(filename)
	require.NoError(t, err)
	assert.Equal(t, "classic", out.Preset)
	require.NotNil(t, out.Glow)
	assert.False(t, *out.Glow)
	assert.Nil(t, out.Interactive)
	assert.True(t, out.Visited)
}

func TestLoadSettingsMissingFileIsFirstVisit(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &Settings{}, s)
}

func TestLoadSettingsRejectsGarbage(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("preset: [unterminated"), 0o644))

	_, err := LoadSettings(filename)
	assert.Error(t, err)
}
