package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button runs OnClick once per press.
type Button struct {
	Label   string
	X, Y    float64
	Width   float64
	Height  float64
	OnClick func()

	BGColor    color.RGBA
	HoverColor color.RGBA
}

func NewButton(label string, onClick func()) *Button {
	return &Button{
		Label:      label,
		Height:     20,
		OnClick:    onClick,
		BGColor:    color.RGBA{R: 80, G: 120, B: 180, A: 255},
		HoverColor: color.RGBA{R: 100, G: 150, B: 220, A: 255},
	}
}

func (b *Button) hovered() bool { return cursorIn(b.X, b.Y, b.Width, b.Height) }

func (b *Button) Update() {
	if b.OnClick != nil && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && b.hovered() {
		b.OnClick()
	}
}

func (b *Button) Draw(screen *ebiten.Image) {
	bg := b.BGColor
	if b.hovered() {
		bg = b.HoverColor
	}
	vector.FillRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), bg, true)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), 1, colorBorder, true)

	tx := b.X + (b.Width-textWidth(b.Label))/2
	ty := b.Y + (b.Height-charHeight)/2
	ebitenutil.DebugPrintAt(screen, b.Label, int(tx), int(ty))
}

// ButtonRow lays buttons side by side across the panel width.
type ButtonRow struct {
	Buttons []*Button
	Gap     float64
}

func NewButtonRow(buttons ...*Button) *ButtonRow {
	return &ButtonRow{Buttons: buttons, Gap: 4}
}

func (r *ButtonRow) Update() {
	for _, b := range r.Buttons {
		b.Update()
	}
}

func (r *ButtonRow) Draw(screen *ebiten.Image) {
	for _, b := range r.Buttons {
		b.Draw(screen)
	}
}

func (r *ButtonRow) Height() float64 {
	h := 0.0
	for _, b := range r.Buttons {
		h = max(h, b.Height)
	}
	return h + 6
}

func (r *ButtonRow) MoveTo(x, y, width float64) {
	n := float64(len(r.Buttons))
	if n == 0 {
		return
	}
	w := (width - r.Gap*(n-1)) / n
	for i, b := range r.Buttons {
		b.X = x + float64(i)*(w+r.Gap)
		b.Y = y
		b.Width = w
	}
}
