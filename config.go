package main

import (
	"image/color"

	"starfield/canvas"
)

const (
	// --- Window ---
	DefaultWindowWidth  = 1024
	DefaultWindowHeight = 768
	WindowTitle         = "Space Murder Detective"

	// --- Files ---
	DefaultSettingsFile = "settings.yaml"
	ScreenshotFile      = "screenshot.png"
	UIFontFile          = "fonts/Roboto-Regular.ttf"

	// --- Presets ---
	DefaultPreset = "enhanced"
	WelcomePreset = "welcome"

	// --- Backdrop ---
	BackdropBands       = 48
	BackdropRingSpacing = 140.0
	BackdropRingAlpha   = 0.06

	// --- HUD ---
	HUDMarginX = 10
	HUDMarginY = 10

	// --- Headless render ---
	DefaultRenderFrames = 90
	DefaultRenderDelay  = 3 // 1/100 s per frame
	OrbitRadiusFactor   = 0.3
)

var (
	// --- Colors ---
	ColorBackdropTop    = color.NRGBA{2, 6, 23, 255}
	ColorBackdropBottom = color.NRGBA{15, 23, 42, 255}
	ColorRadarRing      = color.NRGBA{56, 189, 248, 255}
	ColorHUDText        = color.RGBA{148, 163, 184, 255}
	ColorHUDPaused      = color.RGBA{250, 204, 21, 255}
)

func defaultBackdrop() canvas.Backdrop {
	return canvas.Backdrop{
		Top:         ColorBackdropTop,
		Bottom:      ColorBackdropBottom,
		Ring:        ColorRadarRing,
		RingAlpha:   BackdropRingAlpha,
		RingSpacing: BackdropRingSpacing,
		Bands:       BackdropBands,
	}
}
