package main

import (
	"errors"
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starfield/preset"
)

func newTestGame(t *testing.T, settings *Settings, explicit string) (*Game, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	g := NewGame(gameConfig{
		Settings:     settings,
		SettingsPath: path,
		Preset:       explicit,
		Width:        320,
		Height:       200,
		Rng:          rand.New(rand.NewPCG(7, 11)),
	})
	t.Cleanup(g.Close)
	return g, path
}

func TestFirstVisitStartsWithWelcome(t *testing.T) {
	g, path := newTestGame(t, &Settings{}, "")
	assert.Equal(t, WelcomePreset, g.current.Name)
	assert.Len(t, g.field.Particles(), 150)

	saved, err := LoadSettings(path)
	require.NoError(t, err)
	assert.True(t, saved.Visited)
}

func TestSavedPresetIsUsedOnReturn(t *testing.T) {
	g, _ := newTestGame(t, &Settings{Preset: "classic", Visited: true}, "")
	assert.Equal(t, "classic", g.current.Name)
}

func TestExplicitPresetWins(t *testing.T) {
	g, _ := newTestGame(t, &Settings{Preset: "classic", Visited: true}, "home")
	assert.Equal(t, "home", g.current.Name)
}

func TestUnknownPresetFallsBackToDefault(t *testing.T) {
	g, _ := newTestGame(t, &Settings{Visited: true}, "nope")
	assert.Equal(t, DefaultPreset, g.current.Name)
}

func TestFieldIsMountedOnTheFrameQueue(t *testing.T) {
	g, _ := newTestGame(t, &Settings{Visited: true}, "")
	assert.Equal(t, 1, g.frames.Pending())
	assert.Equal(t, 1, g.input.Subscribers())

	g.frames.Drain()
	g.frames.Drain()
	assert.EqualValues(t, 2, g.field.Stats().Frames)

	g.Close()
	assert.Zero(t, g.frames.Pending())
	assert.Zero(t, g.input.Subscribers())
}

func TestToggleOverridesSurvivePresetChange(t *testing.T) {
	g, _ := newTestGame(t, &Settings{Visited: true}, "enhanced")
	require.True(t, g.field.Options().Glow)

	g.ToggleGlow()
	assert.False(t, g.field.Options().Glow)
	require.NotNil(t, g.settings.Glow)
	assert.False(t, *g.settings.Glow)

	g.NextPreset()
	assert.Equal(t, "welcome", g.current.Name)
	assert.False(t, g.field.Options().Glow)

	g.ToggleInteractive()
	assert.True(t, g.field.Options().Interactive)
}

func TestSaveSettingsWritesCurrentPreset(t *testing.T) {
	g, path := newTestGame(t, &Settings{Visited: true}, "home")
	g.ToggleInteractive()
	g.SaveSettings()

	saved, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "home", saved.Preset)
	require.NotNil(t, saved.Interactive)
	assert.False(t, *saved.Interactive)
}

func TestLayoutResizesField(t *testing.T) {
	g, _ := newTestGame(t, &Settings{Visited: true}, "")
	w, h := g.Layout(640, 480)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)

	fw, fh := g.field.Bounds()
	assert.Equal(t, 640.0, fw)
	assert.Equal(t, 480.0, fh)
	for _, p := range g.field.Particles() {
		assert.Less(t, p.Pos.X, 640.0)
		assert.Less(t, p.Pos.Y, 480.0)
	}
}

func TestReloadKeepsCurrentPresetByName(t *testing.T) {
	g, _ := newTestGame(t, &Settings{Visited: true}, "home")

	reloaded := &preset.Catalog{
		Source: "test",
		Presets: []preset.Preset{
			{Name: "other", Count: 5, Color: "#ffffff"},
			{Name: "home", Count: 12, Color: "#00ff00"},
		},
	}
	g.handleReload(preset.Update{Catalog: reloaded})
	assert.Equal(t, "home", g.current.Name)
	assert.Len(t, g.field.Particles(), 12)
}

func TestReloadErrorKeepsField(t *testing.T) {
	g, _ := newTestGame(t, &Settings{Visited: true}, "home")
	before := len(g.field.Particles())

	g.handleReload(preset.Update{Err: errors.New("bad yaml")})
	assert.Equal(t, "bad yaml", g.ui.Debug.Error)
	assert.Len(t, g.field.Particles(), before)
}

func TestDrainReloadsTakesPendingUpdate(t *testing.T) {
	ch := make(chan preset.Update, 1)
	g := NewGame(gameConfig{
		Settings: &Settings{Visited: true},
		Width:    100,
		Height:   100,
		Reloads:  ch,
	})
	defer g.Close()

	ch <- preset.Update{Catalog: &preset.Catalog{
		Source:  "test",
		Presets: []preset.Preset{{Name: "solo", Count: 3, Color: "#123456"}},
	}}
	g.drainReloads()
	assert.Equal(t, "solo", g.current.Name)

	close(ch)
	g.drainReloads()
	assert.Nil(t, g.reloads)
}

func TestPauseToggles(t *testing.T) {
	g, _ := newTestGame(t, &Settings{Visited: true}, "")
	g.TogglePause()
	assert.True(t, g.paused)
	g.TogglePause()
	assert.False(t, g.paused)
}

func TestToolbarDoesNotRepelParticles(t *testing.T) {
	g, _ := newTestGame(t, &Settings{Visited: true}, "enhanced")
	w, _ := g.LayoutSize()

	g.input.Track(w/2, 100, true)
	assert.True(t, g.field.PointerActive())

	// the right-most toolbar button hugs the top-right corner
	g.input.Track(w-15, 15, true)
	assert.True(t, g.ui.IsMouseOver(w-15, 15))
	assert.False(t, g.field.PointerActive())
}
