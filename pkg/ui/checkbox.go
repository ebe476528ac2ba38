package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Checkbox toggles Value when its box or its label is clicked.
type Checkbox struct {
	Label string
	Value bool
	X, Y  float64
	Size  float64
	width float64
}

func NewCheckbox(label string, value bool) *Checkbox {
	return &Checkbox{Label: label, Value: value, Size: 14}
}

func (c *Checkbox) Update() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && cursorIn(c.X, c.Y, c.width, c.Size) {
		c.Value = !c.Value
	}
}

func (c *Checkbox) Draw(screen *ebiten.Image) {
	vector.StrokeRect(screen, float32(c.X), float32(c.Y), float32(c.Size), float32(c.Size), 2, colorBorder, true)
	if c.Value {
		vector.FillRect(screen, float32(c.X+3), float32(c.Y+3), float32(c.Size-6), float32(c.Size-6), colorOn, true)
	}
	ebitenutil.DebugPrintAt(screen, c.Label, int(c.X+c.Size+6), int(c.Y-1))
}

func (c *Checkbox) Height() float64 { return c.Size + 6 }

func (c *Checkbox) MoveTo(x, y, width float64) {
	c.X, c.Y, c.width = x, y, width
}
