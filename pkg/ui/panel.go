package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Panel is a scrollable column of widgets grouped in titled sections.
type Panel struct {
	Title         string
	X, Y          float64
	Width, Height float64
	ScrollOffset  float64

	BGColor      color.RGBA
	BorderColor  color.RGBA
	SectionColor color.RGBA

	items []panelItem
	// y of every item for the current scroll, refreshed by layout
	ys []float64
}

// an item is either a section header (title set) or a widget
type panelItem struct {
	title  string
	widget Widget
}

const (
	panelMargin   = 10
	titleHeight   = 30
	sectionHeight = 25
)

func NewPanel(title string, x, y, width, height float64) *Panel {
	return &Panel{
		Title:        title,
		X:            x,
		Y:            y,
		Width:        width,
		Height:       height,
		BGColor:      color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor:  color.RGBA{R: 100, G: 100, B: 110, A: 255},
		SectionColor: color.RGBA{R: 60, G: 60, B: 70, A: 255},
	}
}

func (p *Panel) AddSection(title string) {
	p.items = append(p.items, panelItem{title: title})
}

// Add appends any widget and returns it for chaining.
func (p *Panel) Add(w Widget) Widget {
	p.items = append(p.items, panelItem{widget: w})
	return w
}

func (p *Panel) AddSlider(label string, min, max, step, value float64) *Slider {
	s := NewSlider(label, min, max, step, value)
	p.Add(s)
	return s
}

func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(label, value)
	p.Add(c)
	return c
}

func (p *Panel) AddButtons(buttons ...*Button) *ButtonRow {
	r := NewButtonRow(buttons...)
	p.Add(r)
	return r
}

func (p *Panel) AddSelector(label string, options []string, onChange func(int)) *Selector {
	s := NewSelector(label, options, onChange)
	p.Add(s)
	return s
}

// Contains reports whether a screen point falls on the panel, so clicks there are not
// mistaken for clicks on the world behind it.
func (p *Panel) Contains(x, y int) bool {
	return float64(x) >= p.X && float64(x) <= p.X+p.Width &&
		float64(y) >= p.Y && float64(y) <= p.Y+p.Height
}

func (p *Panel) contentHeight() float64 {
	h := float64(titleHeight)
	for _, it := range p.items {
		if it.widget == nil {
			h += sectionHeight
		} else {
			h += it.widget.Height()
		}
	}
	return h
}

// layout positions every item for the current scroll offset.
func (p *Panel) layout() {
	if len(p.ys) != len(p.items) {
		p.ys = make([]float64, len(p.items))
	}
	y := p.Y + titleHeight - p.ScrollOffset
	for i, it := range p.items {
		p.ys[i] = y
		if it.widget == nil {
			y += sectionHeight
			continue
		}
		it.widget.MoveTo(p.X+panelMargin, y, p.Width-2*panelMargin)
		y += it.widget.Height()
	}
}

func (p *Panel) visible(y, h float64) bool {
	return y >= p.Y+titleHeight-4 && y+h <= p.Y+p.Height
}

func (p *Panel) Update() {
	mx, my := ebiten.CursorPosition()
	if _, dy := ebiten.Wheel(); dy != 0 && p.Contains(mx, my) {
		maxScroll := max(0, p.contentHeight()-p.Height+panelMargin)
		p.ScrollOffset = min(maxScroll, max(0, p.ScrollOffset-dy*20))
	}
	p.layout()
	for i, it := range p.items {
		if it.widget != nil && p.visible(p.ys[i], it.widget.Height()) {
			it.widget.Update()
		}
	}
}

func (p *Panel) Draw(screen *ebiten.Image) {
	p.layout()
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), p.BGColor, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), 2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+panelMargin), int(p.Y+5))

	for i, it := range p.items {
		y := p.ys[i]
		if it.widget == nil {
			if p.visible(y, sectionHeight) {
				vector.FillRect(screen, float32(p.X+5), float32(y), float32(p.Width-10), 20, p.SectionColor, true)
				ebitenutil.DebugPrintAt(screen, it.title, int(p.X+panelMargin), int(y+2))
			}
			continue
		}
		if p.visible(y, it.widget.Height()) {
			it.widget.Draw(screen)
		}
	}
}
