package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Selector cycles through a list of options with "<" and ">" arrows.
type Selector struct {
	Label    string
	Options  []string
	Index    int
	OnChange func(index int)

	X, Y, W float64
}

func NewSelector(label string, options []string, onChange func(int)) *Selector {
	return &Selector{Label: label, Options: options, OnChange: onChange}
}

// Selected returns the current option, or "" when there are none.
func (s *Selector) Selected() string {
	if s.Index < 0 || s.Index >= len(s.Options) {
		return ""
	}
	return s.Options[s.Index]
}

// SetOptions replaces the options and keeps the index in range. OnChange is not called.
func (s *Selector) SetOptions(options []string) {
	s.Options = options
	if s.Index >= len(options) {
		s.Index = len(options) - 1
	}
	if s.Index < 0 {
		s.Index = 0
	}
}

func (s *Selector) Select(index int) {
	if len(s.Options) == 0 {
		return
	}
	s.Index = (index%len(s.Options) + len(s.Options)) % len(s.Options)
	if s.OnChange != nil {
		s.OnChange(s.Index)
	}
}

func (s *Selector) Next() { s.Select(s.Index + 1) }

func (s *Selector) Prev() { s.Select(s.Index - 1) }

const arrowWidth = 18

func (s *Selector) rowY() float64 { return s.Y + charHeight }

func (s *Selector) Update() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	switch {
	case cursorIn(s.X, s.rowY(), arrowWidth, charHeight):
		s.Prev()
	case cursorIn(s.X+s.W-arrowWidth, s.rowY(), arrowWidth, charHeight):
		s.Next()
	}
}

func (s *Selector) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, s.Label, int(s.X), int(s.Y))
	y := s.rowY()
	vector.FillRect(screen, float32(s.X), float32(y), float32(s.W), charHeight, colorTrack, true)
	ebitenutil.DebugPrintAt(screen, "<", int(s.X+6), int(y))
	ebitenutil.DebugPrintAt(screen, ">", int(s.X+s.W-12), int(y))

	text := s.Selected()
	if text == "" {
		text = "-"
	}
	ebitenutil.DebugPrintAt(screen, text, int(s.X+(s.W-textWidth(text))/2), int(y))
}

func (s *Selector) Height() float64 { return 2*charHeight + 6 }

func (s *Selector) MoveTo(x, y, width float64) {
	s.X, s.Y, s.W = x, y, width
}
