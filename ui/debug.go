package ui

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// debugTTL is how long a message stays on screen.
const debugTTL = 4 * time.Second

// DebugPanel shows the last non-fatal error in the bottom-right corner.
type DebugPanel struct {
	Error string
	at    time.Time
	now   func() time.Time
}

func (d *DebugPanel) clock() time.Time {
	if d.now != nil {
		return d.now()
	}
	return time.Now()
}

func (d *DebugPanel) SetError(msg string) {
	d.Error = msg
	d.at = d.clock()
}

func (d *DebugPanel) Clear() {
	d.Error = ""
}

// Visible reports whether a message is still within its display time.
func (d *DebugPanel) Visible() bool {
	if d == nil || d.Error == "" {
		return false
	}
	if d.clock().Sub(d.at) > debugTTL {
		d.Error = ""
		return false
	}
	return true
}

func (d *DebugPanel) Draw(screen *ebiten.Image, getScreenSize func() (int, int), getFace func() font.Face, drawText func(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color)) {
	if !d.Visible() {
		return
	}
	w, h := getScreenSize()
	pw, ph := 360, 60
	x := w - pw - 10
	y := h - ph - 10
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(pw), float32(ph), color.RGBA{40, 20, 20, 220}, false)
	if getFace != nil && drawText != nil {
		face := getFace()
		if face != nil {
			drawText(screen, face, d.Error, x+8, y+8, color.RGBA{255, 200, 50, 255})
		}
	}
}
