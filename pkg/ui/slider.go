package ui

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Slider edits a number in [Min, Max], optionally snapped to Step.
type Slider struct {
	Label    string
	Value    float64
	Min, Max float64
	Step     float64 // 0 means continuous
	Format   string  // printf verb for the value
	X, Y     float64
	W, H     float64

	dragging bool
}

// NewSlider creates a slider; place it with MoveTo or add it to a Panel.
func NewSlider(label string, min, max, step, value float64) *Slider {
	s := &Slider{Label: label, Min: min, Max: max, Step: step, H: 10, Format: "%.2f"}
	if step >= 1 {
		s.Format = "%.0f"
	}
	s.SetValue(value)
	return s
}

// SetValue clamps v to the range and snaps it to the step.
func (s *Slider) SetValue(v float64) {
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	}
	s.Value = math.Max(s.Min, math.Min(s.Max, v))
}

func (s *Slider) Int() int { return int(math.Round(s.Value)) }

func (s *Slider) trackY() float64 { return s.Y + charHeight }

func (s *Slider) Update() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && cursorIn(s.X, s.trackY(), s.W, s.H) {
		s.dragging = true
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		s.dragging = false
	}
	if s.dragging && s.W > 0 {
		mx, _ := ebiten.CursorPosition()
		p := (float64(mx) - s.X) / s.W
		s.SetValue(s.Min + p*(s.Max-s.Min))
	}
}

func (s *Slider) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, s.Label, int(s.X), int(s.Y))
	v := fmt.Sprintf(s.Format, s.Value)
	ebitenutil.DebugPrintAt(screen, v, int(s.X+s.W-textWidth(v)), int(s.Y))

	vector.FillRect(screen, float32(s.X), float32(s.trackY()), float32(s.W), float32(s.H), colorTrack, true)
	ratio := 0.0
	if s.Max > s.Min {
		ratio = (s.Value - s.Min) / (s.Max - s.Min)
	}
	vector.FillRect(screen, float32(s.X), float32(s.trackY()), float32(s.W*ratio), float32(s.H), colorFill, true)
}

func (s *Slider) Height() float64 { return charHeight + s.H + 8 }

func (s *Slider) MoveTo(x, y, width float64) {
	s.X, s.Y, s.W = x, y, width
}
