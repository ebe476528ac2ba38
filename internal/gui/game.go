// Package gui is the ebiten window shell: it renders the world and turns mouse,
// keyboard and panel input into controller commands.
package gui

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/control"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/ui"
	golog "github.com/tochemey/goakt/v3/log"
)

const panelWidth = 260

type Game struct {
	ctrl   *control.Controller
	cfg    *simulation.Config
	logger golog.Logger

	width, height int
	interval      time.Duration
	lastStep      time.Time
	// a click is kept until the next step consumes it
	disruption *geometry.Vector2D

	panel  *ui.Panel
	flocks *ui.Selector
	colors *ui.Selector

	widgetCount     *ui.Slider
	widgetSize      *ui.Slider
	widgetSpeed     *ui.Slider
	widgetSepRadius *ui.Slider
	widgetAliRadius *ui.Slider
	widgetCohRadius *ui.Slider
	widgetEvaRadius *ui.Slider
	widgetWVelocity *ui.Slider
	widgetWSep      *ui.Slider
	widgetWAlign    *ui.Slider
	widgetWCohesion *ui.Slider
	widgetShowRadii *ui.Checkbox
	widgetPanel     *ui.Checkbox

	status    string
	sprites   *spriteCache
	updateAvg float64
	drawAvg   float64
}

// NewGame builds the controller on the window surface described by cfg and the control panel.
func NewGame(cfg *simulation.Config, logger golog.Logger) (*Game, error) {
	if cfg == nil {
		cfg = simulation.DefaultConfig()
	}
	if logger == nil {
		logger = golog.DiscardLogger
	}
	g := &Game{
		cfg:      cfg,
		logger:   logger,
		width:    int(cfg.WorldWidth),
		height:   int(cfg.WorldHeight),
		interval: cfg.TickInterval(),
		sprites:  newSpriteCache(logger),
	}
	ctrl, err := control.New(cfg, g, logger)
	if err != nil {
		return nil, fmt.Errorf("creating world: %w", err)
	}
	g.ctrl = ctrl
	g.buildPanel()
	g.refreshFlocks()
	return g, nil
}

// Size makes the window the world's drawing surface.
func (g *Game) Size() (int, int) { return g.width, g.height }

func (g *Game) buildPanel() {
	d := simulation.DefaultFlockConfig("", 30)
	p := ui.NewPanel("Flocks  [space] pause [e] edges [r] reset", 10, 10, panelWidth, float64(g.height)-20)

	p.AddSection("Flock")
	g.flocks = p.AddSelector("Selected flock [tab]", nil, func(int) { g.loadSelected() })
	g.colors = p.AddSelector("Colour", simulation.ColorNames(), nil)
	g.colors.Index = indexOf(simulation.ColorNames(), d.Color)
	g.widgetCount = p.AddSlider("Agents (new flock)", 0, 300, 1, float64(d.Count))
	g.widgetSize = p.AddSlider("Size", 1, 40, 1, float64(d.Size))
	g.widgetSpeed = p.AddSlider("Speed", 0, 20, 0.5, d.Speed)

	p.AddSection("Radii")
	g.widgetSepRadius = p.AddSlider("Separation", 0, 200, 1, float64(d.Radii.Separation))
	g.widgetAliRadius = p.AddSlider("Alignment", 0, 200, 1, float64(d.Radii.Alignment))
	g.widgetCohRadius = p.AddSlider("Cohesion", 0, 200, 1, float64(d.Radii.Cohesion))
	g.widgetEvaRadius = p.AddSlider("Evasion", 0, 400, 1, float64(d.Radii.Evasion))
	p.AddButtons(
		ui.NewButton("Add", g.addFlock),
		ui.NewButton("Edit", g.editFlock),
		ui.NewButton("Delete", g.deleteFlock),
	)

	p.AddSection("Weights")
	g.widgetWVelocity = p.AddSlider("Velocity", 0, 1, 0.05, d.Weights.Velocity)
	g.widgetWSep = p.AddSlider("Separation", 0, 1, 0.05, d.Weights.Separation)
	g.widgetWAlign = p.AddSlider("Alignment", 0, 1, 0.05, d.Weights.Alignment)
	g.widgetWCohesion = p.AddSlider("Cohesion", 0, 1, 0.05, d.Weights.Cohesion)
	p.AddButtons(ui.NewButton("Set weights", g.setWeights))

	p.AddSection("World")
	p.AddButtons(
		ui.NewButton("Pause", g.togglePause),
		ui.NewButton("Edges", g.toggleEdges),
		ui.NewButton("Reset", g.reset),
	)
	g.widgetShowRadii = p.AddCheckbox("Show radii of selection", false)
	g.widgetPanel = p.AddCheckbox("Show panel [h]", true)
	g.panel = p
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return 0
}

// refreshFlocks re-reads the flock list after anything that adds or removes flocks.
func (g *Game) refreshFlocks() {
	g.flocks.SetOptions(g.ctrl.World().FlockNames())
	g.loadSelected()
}

func (g *Game) selectedID() (string, error) {
	return g.ctrl.FlockIDAt(g.flocks.Index)
}

// loadSelected copies the selected flock's settings into the sliders.
func (g *Game) loadSelected() {
	id, err := g.selectedID()
	if err != nil {
		return
	}
	f, err := g.ctrl.World().Flock(id)
	if err != nil {
		return
	}
	r, w := f.Radii(), f.Weights()
	g.widgetSepRadius.SetValue(float64(r.Separation))
	g.widgetAliRadius.SetValue(float64(r.Alignment))
	g.widgetCohRadius.SetValue(float64(r.Cohesion))
	g.widgetEvaRadius.SetValue(float64(r.Evasion))
	g.widgetWVelocity.SetValue(w.Velocity)
	g.widgetWSep.SetValue(w.Separation)
	g.widgetWAlign.SetValue(w.Alignment)
	g.widgetWCohesion.SetValue(w.Cohesion)
	if agents := f.Agents(); len(agents) > 0 {
		g.widgetSize.SetValue(float64(agents[0].Size))
		g.widgetSpeed.SetValue(agents[0].Speed)
	}
}

func (g *Game) look() simulation.Appearance {
	c, err := simulation.ParseColor(g.colors.Selected())
	if err != nil {
		return simulation.DefaultAppearance
	}
	return simulation.ColorAppearance(c)
}

func (g *Game) report(action string, err error) {
	if err != nil {
		g.status = fmt.Sprintf("%s: %v", action, err)
		g.logger.Warnf("%s failed: %v", action, err)
		return
	}
	g.status = action
}

func (g *Game) addFlock() {
	fc := simulation.FlockConfig{
		Count: g.widgetCount.Int(),
		Color: g.colors.Selected(),
		Size:  g.widgetSize.Int(),
		Speed: g.widgetSpeed.Value,
		Radii: simulation.Radii{
			Separation: g.widgetSepRadius.Int(),
			Alignment:  g.widgetAliRadius.Int(),
			Cohesion:   g.widgetCohRadius.Int(),
			Evasion:    g.widgetEvaRadius.Int(),
		},
		Weights: simulation.Weights{
			Velocity:   g.widgetWVelocity.Value,
			Separation: g.widgetWSep.Value,
			Alignment:  g.widgetWAlign.Value,
			Cohesion:   g.widgetWCohesion.Value,
		},
	}
	// first free "Flock n"
	var err error
	for n := len(g.ctrl.World().Flocks()) + 1; ; n++ {
		fc.Name = fmt.Sprintf("Flock %d", n)
		if _, err = g.ctrl.Spawn(fc); !errors.Is(err, control.ErrDuplicateName) {
			break
		}
	}
	g.report("add "+fc.Name, err)
	if err == nil {
		g.flocks.SetOptions(g.ctrl.World().FlockNames())
		g.flocks.Select(len(g.flocks.Options) - 1)
	}
}

func (g *Game) editFlock() {
	id, err := g.selectedID()
	if err == nil {
		err = g.ctrl.EditFlock(id, g.look(), g.widgetSize.Int(), g.widgetSpeed.Value,
			g.widgetAliRadius.Int(), g.widgetCohRadius.Int(), g.widgetSepRadius.Int())
	}
	if err == nil {
		err = g.ctrl.SetEvasionRadius(id, g.widgetEvaRadius.Int())
	}
	g.report("edit "+g.flocks.Selected(), err)
}

func (g *Game) deleteFlock() {
	name := g.flocks.Selected()
	id, err := g.selectedID()
	if err == nil {
		err = g.ctrl.DeleteFlock(id)
	}
	g.report("delete "+name, err)
	g.refreshFlocks()
}

func (g *Game) setWeights() {
	id, err := g.selectedID()
	if err == nil {
		err = g.ctrl.SetWeights(id, g.widgetWVelocity.Value, g.widgetWSep.Value, g.widgetWAlign.Value, g.widgetWCohesion.Value)
	}
	g.report("weights of "+g.flocks.Selected(), err)
}

func (g *Game) togglePause() {
	if g.ctrl.TogglePause() {
		g.status = "paused"
	} else {
		g.status = "running"
	}
}

func (g *Game) toggleEdges() {
	g.ctrl.ToggleEdgeMode()
	g.status = "edge mode toggled"
}

func (g *Game) reset() {
	g.report("reset", g.ctrl.Reset())
	g.disruption = nil
	g.refreshFlocks()
}

func (g *Game) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.togglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		g.toggleEdges()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.flocks.Next()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.widgetPanel.Value = !g.widgetPanel.Value
	}
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	panelShown := g.widgetPanel.Value
	if panelShown {
		g.panel.Update()
	}
	g.handleKeys()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if !panelShown || !g.panel.Contains(mx, my) {
			p := geometry.NewVector(float64(mx), float64(my))
			g.disruption = &p
		}
	}

	if time.Since(g.lastStep) < g.interval {
		return nil
	}
	g.lastStep = time.Now()
	if g.ctrl.Step(g.disruption) {
		g.disruption = nil
	}
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) { return g.width, g.height }

var (
	background = color.RGBA{R: 10, G: 10, B: 30, A: 255}
	highlight  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)
