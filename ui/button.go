package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

var (
	buttonColor       = color.RGBA{15, 23, 42, 200}
	buttonActiveColor = color.RGBA{37, 99, 235, 220}
	buttonBorderColor = color.RGBA{56, 189, 248, 160}
)

type Button struct {
	Label   string
	X, Y    float32
	W, H    float32
	OnClick func()
	// Active reports whether the toggle this button controls is on.
	Active func() bool
}

func (b *Button) IsMouseOver(mx, my int) bool {
	return float32(mx) >= b.X && float32(mx) <= b.X+b.W &&
		float32(my) >= b.Y && float32(my) <= b.Y+b.H
}

// Draw renders the button. It uses the provided font.Face via getter.
func (b *Button) Draw(screen *ebiten.Image, getFace func() font.Face, drawText func(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color)) {
	bg := buttonColor
	if b.Active != nil && b.Active() {
		bg = buttonActiveColor
	}
	vector.DrawFilledRect(screen, b.X, b.Y, b.W, b.H, bg, false)
	vector.StrokeRect(screen, b.X, b.Y, b.W, b.H, 1, buttonBorderColor, false)
	if getFace == nil || drawText == nil {
		return
	}
	face := getFace()
	if face == nil {
		return
	}
	drawText(screen, face, b.Label, int(b.X)+8, int(b.Y)+6, color.White)
}
