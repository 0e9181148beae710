package main

import (
	"fmt"
	"image/png"
	"math/rand/v2"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"
	"golang.org/x/image/font"

	"starfield/canvas"
	"starfield/field"
	"starfield/input"
	"starfield/preset"
	"starfield/ui"
)

// gameConfig is what the root command hands to NewGame.
type gameConfig struct {
	Logger       *zap.Logger
	Catalog      *preset.Catalog
	Settings     *Settings
	SettingsPath string
	Preset       string // overrides the saved preset when set
	Width        int
	Height       int
	Rng          *rand.Rand
	Reloads      <-chan preset.Update
	Verbose      bool
}

type Game struct {
	logger  *zap.Logger
	catalog *preset.Catalog
	current preset.Preset

	settings     *Settings
	settingsPath string

	field  *field.Field
	frames *frameQueue

	// Sub-systems
	input *input.InputSystem
	ui    *ui.UISystem

	face     font.Face
	backdrop canvas.Backdrop

	screenWidth  int
	screenHeight int

	paused              bool
	screenshotRequested bool
	verbose             bool

	reloads <-chan preset.Update
}

func NewGame(cfg gameConfig) *Game {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	settings := cfg.Settings
	if settings == nil {
		settings = &Settings{}
	}
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = preset.Builtin()
	}

	g := &Game{
		logger:       logger,
		catalog:      catalog,
		settings:     settings,
		settingsPath: cfg.SettingsPath,
		field:        field.New(cfg.Rng),
		frames:       newFrameQueue(),
		backdrop:     defaultBackdrop(),
		screenWidth:  cfg.Width,
		screenHeight: cfg.Height,
		reloads:      cfg.Reloads,
		verbose:      cfg.Verbose,
	}
	g.face = LoadUIFont(UIFontFile, logger)

	g.input = input.NewInputSystem(g)
	g.ui = ui.NewUISystem(
		func() font.Face { return g.face },
		g.LayoutSize,
		ui.Actions{
			NextPreset:        g.NextPreset,
			ToggleGlow:        g.ToggleGlow,
			ToggleInteractive: g.ToggleInteractive,
			GlowOn:            func() bool { return g.field.Options().Glow },
			InteractiveOn:     func() bool { return g.field.Options().Interactive },
		},
		DrawTextLines,
	)
	g.input.SetOverlay(g.ui.IsMouseOver)

	firstVisit := !settings.Visited
	g.current = g.startingPreset(cfg.Preset)
	g.applyPreset(g.current)
	g.field.Mount(g.frames, g.input)
	if firstVisit {
		g.SaveSettings()
	}
	return g
}

// startingPreset picks the explicit name, then the saved one. A first visit
// gets the welcome preset once.
func (g *Game) startingPreset(explicit string) preset.Preset {
	candidates := []string{explicit, g.settings.Preset}
	if !g.settings.Visited {
		candidates = []string{explicit, WelcomePreset}
		g.settings.Visited = true
	}
	candidates = append(candidates, DefaultPreset)
	for _, name := range candidates {
		if name == "" {
			continue
		}
		if p, ok := g.catalog.Get(name); ok {
			return p
		}
		g.logger.Warn("unknown preset", zap.String("preset", name))
	}
	return g.catalog.Presets[0]
}

// applyPreset initializes the field from p with the saved overrides on top.
func (g *Game) applyPreset(p preset.Preset) {
	if g.settings.Glow != nil {
		p.Options.Glow = *g.settings.Glow
	}
	if g.settings.Interactive != nil {
		p.Options.Interactive = *g.settings.Interactive
	}
	if err := p.Apply(g.field, float64(g.screenWidth), float64(g.screenHeight)); err != nil {
		g.logger.Error("apply preset", zap.String("preset", p.Name), zap.Error(err))
		g.ui.Debug.SetError(err.Error())
		return
	}
	g.logger.Debug("preset applied",
		zap.String("preset", p.Name),
		zap.Int("particles", len(g.field.Particles())))
}

func (g *Game) Update() error {
	g.drainReloads()

	// Delegate to sub-systems
	g.input.Update()
	g.ui.Update()

	if !g.paused {
		g.frames.Drain()
	}
	return nil
}

// drainReloads takes at most one pending watcher result.
func (g *Game) drainReloads() {
	if g.reloads == nil {
		return
	}
	select {
	case u, ok := <-g.reloads:
		if !ok {
			g.reloads = nil
			return
		}
		g.handleReload(u)
	default:
	}
}

func (g *Game) handleReload(u preset.Update) {
	if u.Err != nil {
		g.logger.Warn("preset reload failed", zap.Error(u.Err))
		g.ui.Debug.SetError(u.Err.Error())
		return
	}
	g.catalog = u.Catalog
	g.ui.Debug.Clear()
	p, ok := g.catalog.Get(g.current.Name)
	if !ok {
		p = g.catalog.Presets[0]
	}
	g.current = p
	g.applyPreset(p)
	g.logger.Info("presets reloaded",
		zap.String("source", u.Catalog.Source),
		zap.Strings("presets", u.Catalog.Names()))
}

func (g *Game) Draw(screen *ebiten.Image) {
	surface := canvas.NewScreen(screen)
	g.backdrop.Draw(surface, g.screenWidth, g.screenHeight)
	g.field.Render(surface)

	hud := g.hudText()
	clr := ColorHUDText
	if g.paused {
		clr = ColorHUDPaused
	}
	DrawTextLines(screen, g.face, hud, HUDMarginX, HUDMarginY, clr)

	if g.verbose {
		debugOverlay(screen, g)
	}
	g.ui.Draw(screen)

	// --- Save Screenshot ---
	if g.screenshotRequested {
		g.screenshotRequested = false
		if err := saveScreenshot(screen, ScreenshotFile); err != nil {
			g.logger.Error("screenshot", zap.Error(err))
		} else {
			g.logger.Info("screenshot saved", zap.String("file", ScreenshotFile))
		}
	}
}

func (g *Game) hudText() string {
	st := g.field.Stats()
	opts := g.field.Options()
	s := fmt.Sprintf(
		"%s  %d particles  %d links  %.0f fps\n"+
			"glow %s  repel %s\n"+
			"Tab preset  G glow  I repel  P pause  R reseed  Ctrl+S save",
		g.current.Name, st.Particles, st.Links, ebiten.ActualFPS(),
		onOff(opts.Glow), onOff(opts.Interactive),
	)
	if g.paused {
		s += "\nPAUSED"
	}
	return s
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func saveScreenshot(img *ebiten.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.screenWidth || outsideHeight != g.screenHeight {
		g.screenWidth = outsideWidth
		g.screenHeight = outsideHeight
		g.field.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Close stops the field loop and drops its subscriptions.
func (g *Game) Close() {
	g.field.Teardown()
}

// --- input.Host ---

func (g *Game) LayoutSize() (int, int) {
	return g.screenWidth, g.screenHeight
}

func (g *Game) RequestScreenshot() {
	g.screenshotRequested = true
}

func (g *Game) SaveSettings() {
	if g.settingsPath == "" {
		return
	}
	g.settings.Preset = g.current.Name
	if err := SaveSettings(g.settings, g.settingsPath); err != nil {
		g.logger.Error("save settings", zap.Error(err))
		g.ui.Debug.SetError(err.Error())
		return
	}
	g.logger.Info("settings saved", zap.String("file", g.settingsPath))
}

func (g *Game) NextPreset() {
	g.current = g.catalog.Next(g.current.Name)
	g.applyPreset(g.current)
}

func (g *Game) ToggleGlow() {
	opts := g.field.Options()
	opts.Glow = !opts.Glow
	g.settings.Glow = &opts.Glow
	g.field.SetOptions(opts)
}

func (g *Game) ToggleInteractive() {
	opts := g.field.Options()
	opts.Interactive = !opts.Interactive
	g.settings.Interactive = &opts.Interactive
	g.field.SetOptions(opts)
}

func (g *Game) TogglePause() {
	g.paused = !g.paused
}

func (g *Game) Reseed() {
	g.applyPreset(g.current)
}

var _ input.Host = (*Game)(nil)

// debugOverlay prints frame counters along the bottom edge.
func debugOverlay(screen *ebiten.Image, g *Game) {
	st := g.field.Stats()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("frames %d  pending %d", st.Frames, g.frames.Pending()), HUDMarginX, g.screenHeight-20)
}
