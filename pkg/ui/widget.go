// Package ui holds the small immediate-mode widgets used by the ebiten shell.
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Widget is anything the Panel can stack vertically.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	// Height is the vertical space the widget needs, label included.
	Height() float64
	// MoveTo places the widget's top-left corner and gives it a width.
	MoveTo(x, y, width float64)
}

// debug font cell size used by ebitenutil.DebugPrintAt
const (
	charWidth  = 6
	charHeight = 16
)

var (
	colorTrack  = color.RGBA{R: 80, G: 80, B: 80, A: 255}
	colorFill   = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	colorBorder = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	colorOn     = color.RGBA{R: 100, G: 200, B: 100, A: 255}
)

func cursorIn(x, y, w, h float64) bool {
	mx, my := ebiten.CursorPosition()
	return float64(mx) >= x && float64(mx) <= x+w &&
		float64(my) >= y && float64(my) <= y+h
}

func textWidth(s string) float64 { return float64(len(s) * charWidth) }
