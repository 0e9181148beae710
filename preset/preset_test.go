package preset

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"starfield/field"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const yamlPresets = `
presets:
  - name: nebula
    count: 80
    color: "#a855f7"
    jitter: 20
    options:
      speed: 0.8
      interactive: true
      glow: true
      connection_distance: 120
  - name: drift
    count: 40
    color: "#06b6d4"
    hue_spread: 30
    options:
      alpha_pulse: true
`

const starPresets = `
def make(name, color, count = default_count):
    return {"name": name, "color": color, "count": count, "options": {"glow": True, "connection_distance": default_distance * 1.5}}

presets = [make("a", "#ff0000"), make("b", "#00ff00", 10)]
`

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "presets.yaml", yamlPresets)
	c, err := Load(path, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"nebula", "drift"}, c.Names())
	assert.NotEmpty(t, c.Hash)

	p, ok := c.Get("NEBULA")
	require.True(t, ok)
	assert.Equal(t, 80, p.Count)
	assert.Equal(t, 0.8, p.Options.Speed)
	assert.True(t, p.Options.Interactive)
	assert.Equal(t, 120.0, p.Options.ConnectionDistance)

	seed, err := p.Seed()
	require.NoError(t, err)
	assert.Equal(t, 20.0, seed.Jitter)

	d, _ := c.Get("drift")
	assert.False(t, d.Options.Interactive)
	assert.True(t, d.Options.AlphaPulse)
}

func TestLoadKeepsExplicitZeros(t *testing.T) {
	const data = `
presets:
  - name: faded
    count: 10
    color: "#ffffff"
    options:
      interactive: true
      alpha_pulse: true
      alpha_min: 0
      repulsion_strength: 0
  - name: bare
    count: 10
    color: "#ffffff"
`
	path := writeFile(t, t.TempDir(), "zeros.yaml", data)
	c, err := Load(path, zaptest.NewLogger(t))
	require.NoError(t, err)

	faded, _ := c.Get("faded")
	f := field.New(rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, faded.Apply(f, 100, 100))
	assert.Zero(t, f.Options().AlphaMin)
	assert.Zero(t, f.Options().RepulsionStrength)
	assert.Equal(t, field.DefaultAlphaMax, f.Options().AlphaMax)
	assert.Equal(t, field.DefaultConnectionDistance, f.Options().ConnectionDistance)
	assert.False(t, f.Options().Glow)

	bare, _ := c.Get("bare")
	assert.Equal(t, field.DefaultAlphaMin, bare.Options.AlphaMin)
	assert.Equal(t, field.DefaultRepulsionStrength, bare.Options.RepulsionStrength)
	assert.False(t, bare.Options.Interactive)
}

func TestLoadStarlark(t *testing.T) {
	path := writeFile(t, t.TempDir(), "presets.star", starPresets)
	c, err := Load(path, zaptest.NewLogger(t))
	require.NoError(t, err)

	require.Len(t, c.Presets, 2)
	assert.Equal(t, 100, c.Presets[0].Count)
	assert.Equal(t, 10, c.Presets[1].Count)
	assert.True(t, c.Presets[0].Options.Glow)
	assert.Equal(t, 150.0, c.Presets[0].Options.ConnectionDistance)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name, file, data, want string
	}{
		{"format", "p.json", "{}", "unsupported preset format"},
		{"yaml", "bad.yaml", "presets: [", "decode yaml"},
		{"empty", "empty.yaml", "presets: []", "no presets defined"},
		{"count", "count.yaml", "presets:\n  - name: x\n    color: '#ffffff'\n", "count must be positive"},
		{"color", "color.yaml", "presets:\n  - name: x\n    count: 3\n    color: blue\n", "parse color seed"},
		{"dup", "dup.yaml", "presets:\n  - {name: x, count: 1, color: '#ffffff'}\n  - {name: x, count: 1, color: '#ffffff'}\n", "duplicate preset"},
		{"script", "noglobal.star", "x = 1", "does not define presets"},
		{"script type", "type.star", "presets = 3", "must be a list"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.data)
			_, err := Load(path, nil)
			assert.ErrorContains(t, err, tt.want)
		})
	}

	_, err := Load(filepath.Join(dir, "missing.yaml"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuiltinCatalog(t *testing.T) {
	c := Builtin()
	require.NoError(t, c.Validate())
	assert.Equal(t, []string{"home", "classic", "enhanced", "welcome"}, c.Names())

	assert.Equal(t, "classic", c.Next("home").Name)
	assert.Equal(t, "home", c.Next("welcome").Name)
	assert.Equal(t, "home", c.Next("nope").Name)

	welcome, ok := c.Get("welcome")
	require.True(t, ok)
	assert.False(t, welcome.Options.Interactive)
	assert.False(t, welcome.Options.Glow)
}

func TestApplyInitializesField(t *testing.T) {
	p, _ := Builtin().Get("classic")
	f := field.New(rand.New(rand.NewPCG(7, 8)))
	require.NoError(t, p.Apply(f, 320, 200))

	assert.Len(t, f.Particles(), 150)
	assert.Equal(t, 150.0, f.Options().ConnectionDistance)
	assert.True(t, f.Options().AlphaPulse)
	assert.Equal(t, 60.0, f.Seed().HueSpread)

	bad := Preset{Name: "bad", Count: 1, Color: "nope"}
	assert.Error(t, bad.Apply(f, 10, 10))
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "presets.yaml", yamlPresets)
	initial, err := Load(path, nil)
	require.NoError(t, err)

	w, err := NewWatcher(path, initial.Hash, zaptest.NewLogger(t))
	require.NoError(t, err)
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	updated := "presets:\n  - {name: solo, count: 5, color: '#123456'}\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	select {
	case u := <-w.Updates():
		require.NoError(t, u.Err)
		assert.Equal(t, []string{"solo"}, u.Catalog.Names())
	case <-time.After(5 * time.Second):
		t.Fatal("no reload delivered")
	}

	require.NoError(t, os.WriteFile(path, []byte("presets: ["), 0o644))
	select {
	case u := <-w.Updates():
		assert.Error(t, u.Err)
		assert.Nil(t, u.Catalog)
	case <-time.After(5 * time.Second):
		t.Fatal("no error delivered")
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	path := writeFile(t, t.TempDir(), "presets.yaml", yamlPresets)
	w, err := NewWatcher(path, "", nil)
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background()))
	w.Stop()
	w.Stop()

	// starting after stop does nothing
	require.NoError(t, w.Start(context.Background()))
}

func TestWatcherStopBeforeStart(t *testing.T) {
	path := writeFile(t, t.TempDir(), "presets.yaml", yamlPresets)
	w, err := NewWatcher(path, "", nil)
	require.NoError(t, err)
	assert.NotPanics(t, w.Stop)
}
