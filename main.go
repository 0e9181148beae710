package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"starfield/preset"
)

var (
	// Global flags
	verbose     bool
	presetsFile string
	presetName  string

	// Window flags
	settingsFile string
	windowWidth  int
	windowHeight int

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "starfield",
	Short: "Space Murder Detective - ambient particle field",
	Long: `starfield draws the drifting, linked particle field used behind the
Space Murder Detective screens.

Run without a subcommand to open the window. Presets come from the built-in
catalog or from a YAML or Starlark file given with --presets, which is
reloaded when it changes.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runWindow,
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the available presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "source: %s\n", catalog.Source)
		for _, p := range catalog.Presets {
			fmt.Fprintf(out, "  %-10s %4d particles  %s\n", p.Name, p.Count, p.Color)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&presetsFile, "presets", "", "Preset file (.yaml, .yml or .star); built-in presets when empty")
	rootCmd.PersistentFlags().StringVarP(&presetName, "preset", "p", "", "Preset to start with")

	rootCmd.Flags().StringVar(&settingsFile, "settings", DefaultSettingsFile, "Settings file")
	rootCmd.Flags().IntVar(&windowWidth, "width", DefaultWindowWidth, "Window width")
	rootCmd.Flags().IntVar(&windowHeight, "height", DefaultWindowHeight, "Window height")

	rootCmd.AddCommand(presetsCmd, renderCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadCatalog() (*preset.Catalog, error) {
	if presetsFile == "" {
		return preset.Builtin(), nil
	}
	return preset.Load(presetsFile, logger)
}

func runWindow(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	settings, err := LoadSettings(settingsFile)
	if err != nil {
		logger.Warn("ignoring settings", zap.Error(err))
		settings = &Settings{}
	}

	var reloads <-chan preset.Update
	if presetsFile != "" {
		w, err := preset.NewWatcher(presetsFile, catalog.Hash, logger)
		if err != nil {
			return fmt.Errorf("watch presets: %w", err)
		}
		if err := w.Start(ctx); err != nil {
			return fmt.Errorf("watch presets: %w", err)
		}
		defer w.Stop()
		reloads = w.Updates()
	}

	g := NewGame(gameConfig{
		Logger:       logger,
		Catalog:      catalog,
		Settings:     settings,
		SettingsPath: settingsFile,
		Preset:       presetName,
		Width:        windowWidth,
		Height:       windowHeight,
		Reloads:      reloads,
		Verbose:      verbose,
	})
	defer g.Close()

	logger.Info("starting",
		zap.String("preset", g.current.Name),
		zap.String("presets", strings.Join(catalog.Names(), ",")))

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle(WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
