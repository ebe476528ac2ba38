// Package term renders the world in a terminal with tcell.
package term

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/control"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	golog "github.com/tochemey/goakt/v3/log"
)

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleStatus  = styleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	styleFlash   = styleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// arrows by heading octant, clockwise from east (screen y grows downward)
var arrows = []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// Shell draws snapshots onto a tcell screen and maps keys and clicks to commands.
// The last row is a status line, the rest is the world scaled to fit.
type Shell struct {
	screen   tcell.Screen
	ctrl     *control.Controller
	logger   golog.Logger
	interval time.Duration

	// name of the flock +/- acts on, "" for the first one
	selected string
	status   string
}

func New(screen tcell.Screen, ctrl *control.Controller, interval time.Duration, logger golog.Logger) *Shell {
	if logger == nil {
		logger = golog.DiscardLogger
	}
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Shell{screen: screen, ctrl: ctrl, logger: logger, interval: interval}
}

// area is the part of the screen the world is drawn on.
func (s *Shell) area() (w, h int) {
	w, h = s.screen.Size()
	return w, max(h-1, 1)
}

// toCell maps a world position to a cell of a w×h area.
func toCell(p geometry.Vector2D, b simulation.Bounds, w, h int) (int, int) {
	x := int(p.X / b.Width * float64(w))
	y := int(p.Y / b.Height * float64(h))
	return min(max(x, 0), w-1), min(max(y, 0), h-1)
}

// toWorld maps the centre of a cell back to world coordinates.
func toWorld(x, y int, b simulation.Bounds, w, h int) geometry.Vector2D {
	return geometry.NewVector(
		(float64(x)+0.5)*b.Width/float64(w),
		(float64(y)+0.5)*b.Height/float64(h),
	)
}

func arrow(heading geometry.Vector2D) rune {
	if heading.IsZero() {
		return '•'
	}
	octant := int(math.Round(heading.Angle()/(math.Pi/4))+8) % 8
	return arrows[octant]
}

func styleOf(look simulation.Appearance) tcell.Style {
	if look.Kind == simulation.AppearanceImage {
		return styleDefault.Bold(true)
	}
	c := look.Color
	return styleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// Draw renders the current snapshot and the status line.
func (s *Shell) Draw() {
	s.screen.Clear()
	w, h := s.area()
	bounds := s.ctrl.World().Bounds()
	for _, a := range s.ctrl.Snapshot() {
		x, y := toCell(a.Position, bounds, w, h)
		s.screen.SetContent(x, y, arrow(a.Heading), nil, styleOf(a.Appearance))
	}
	s.drawStatus(w, h)
	s.screen.Show()
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (s *Shell) drawStatus(w, y int) {
	world := s.ctrl.World()
	state := "run"
	if world.Paused() {
		state = "PAUSED"
	}
	sel := "-"
	if f, err := s.current(); err == nil {
		for _, st := range s.ctrl.Stats() {
			if st.ID == f.ID() {
				sel = fmt.Sprintf("%s %d pol %.2f evade %d", st.Name, st.Count, st.Polarization, st.Radii.Evasion)
			}
		}
	}
	line := fmt.Sprintf(" tick %d %s | %s | space pause  e edges  r reset  tab select  +/- evasion  q quit",
		world.Tick(), state, sel)
	for x := 0; x < w; x++ {
		s.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
	drawText(s.screen, 0, y, line, styleStatus)
	if s.status != "" {
		drawText(s.screen, 0, 0, s.status, styleFlash)
	}
}

// Handle applies one event and reports false when the user asked to quit.
func (s *Shell) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyTab:
			s.selectNext()
		case tcell.KeyRune:
			return s.handleRune(ev.Rune())
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			w, h := s.area()
			if y < h {
				p := toWorld(x, y, s.ctrl.World().Bounds(), w, h)
				if s.ctrl.Step(&p) {
					s.status = "disrupted at " + p.Format()
				}
			}
		}
	}
	return true
}

func (s *Shell) handleRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		return false
	case ' ':
		s.ctrl.TogglePause()
	case 'e', 'E':
		s.ctrl.ToggleEdgeMode()
		s.status = "edge mode toggled"
	case 'r', 'R':
		if err := s.ctrl.Reset(); err != nil {
			s.status = err.Error()
			s.logger.Errorf("reset failed: %v", err)
		} else {
			s.status = "reset"
			if _, err := s.ctrl.FlockByName(s.selected); err != nil {
				s.selected = ""
			}
		}
	case '+', '-':
		s.nudgeEvasion(r)
	}
	return true
}

// current resolves the selection, falling back to the first flock.
func (s *Shell) current() (*simulation.Flock, error) {
	if s.selected != "" {
		if f, err := s.ctrl.FlockByName(s.selected); err == nil {
			return f, nil
		}
	}
	id, err := s.ctrl.FlockIDAt(0)
	if err != nil {
		return nil, err
	}
	return s.ctrl.World().Flock(id)
}

// selectNext moves the selection to the following flock in creation order, wrapping around.
func (s *Shell) selectNext() {
	names := s.ctrl.World().FlockNames()
	if len(names) == 0 {
		s.selected = ""
		return
	}
	next := 0
	if f, err := s.current(); err == nil {
		for i, n := range names {
			if n == f.Name() {
				next = (i + 1) % len(names)
			}
		}
	}
	s.selected = names[next]
}

func (s *Shell) nudgeEvasion(r rune) {
	f, err := s.current()
	if err != nil {
		return
	}
	id := f.ID()
	radius := f.Radii().Evasion + 10
	if r == '-' {
		radius = max(0, f.Radii().Evasion-10)
	}
	if err := s.ctrl.SetEvasionRadius(id, radius); err != nil {
		s.status = err.Error()
	}
}

// Run steps the world at the configured interval and redraws until ctx is done or the user quits.
func (s *Shell) Run(ctx context.Context) error {
	s.screen.EnableMouse()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	s.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !s.Handle(ev) {
				return nil
			}
			s.Draw()
		case <-ticker.C:
			s.ctrl.Step(nil)
			s.Draw()
		}
	}
}
