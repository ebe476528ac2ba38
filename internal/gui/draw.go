package gui

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	golog "github.com/tochemey/goakt/v3/log"
)

var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.White)
}

// spriteCache loads image appearances once. A reference that fails to load is
// remembered as nil and drawn as a triangle.
type spriteCache struct {
	logger  golog.Logger
	sprites map[string]*ebiten.Image
}

func newSpriteCache(logger golog.Logger) *spriteCache {
	return &spriteCache{logger: logger, sprites: make(map[string]*ebiten.Image)}
}

func (c *spriteCache) get(ref string) *ebiten.Image {
	if img, ok := c.sprites[ref]; ok {
		return img
	}
	img, _, err := ebitenutil.NewImageFromFile(ref)
	if err != nil {
		c.logger.Warnf("cannot load sprite %q, drawing a triangle instead: %v", ref, err)
		img = nil
	}
	c.sprites[ref] = img
	return img
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(background)

	selected, _ := g.selectedID()
	var radii simulation.Radii
	if f, err := g.ctrl.World().Flock(selected); err == nil {
		radii = f.Radii()
	}
	showRadii := g.widgetShowRadii.Value

	for _, s := range g.ctrl.Snapshot() {
		look := s.Appearance
		if s.FlockID == selected {
			look = look.Blend(highlight, 0.3)
			if showRadii {
				drawRadii(screen, s, radii)
			}
		}
		switch look.Kind {
		case simulation.AppearanceImage:
			if img := g.sprites.get(look.Image); img != nil {
				drawSprite(screen, img, s)
			} else {
				drawTriangle(screen, s, highlight)
			}
		default:
			drawDisc(screen, s, look.Color)
		}
	}

	if g.widgetPanel.Value {
		g.panel.Draw(screen)
	}
	g.drawStatus(screen)
}

// drawDisc draws a filled circle with a line showing the heading.
func drawDisc(screen *ebiten.Image, s simulation.AgentSnapshot, clr color.RGBA) {
	x, y := float32(s.Position.X), float32(s.Position.Y)
	r := float32(s.Size) / 2
	vector.FillCircle(screen, x, y, r, clr, true)
	hx := x + float32(s.Heading.X)*r*1.8
	hy := y + float32(s.Heading.Y)*r*1.8
	vector.StrokeLine(screen, x, y, hx, hy, 1, clr, true)
}

func drawRadii(screen *ebiten.Image, s simulation.AgentSnapshot, r simulation.Radii) {
	x, y := float32(s.Position.X), float32(s.Position.Y)
	vector.StrokeCircle(screen, x, y, float32(r.Separation), 1, color.RGBA{R: 255, G: 80, B: 80, A: 90}, true)
	vector.StrokeCircle(screen, x, y, float32(r.Cohesion), 1, color.RGBA{R: 80, G: 160, B: 255, A: 60}, true)
}

func drawSprite(screen *ebiten.Image, img *ebiten.Image, s simulation.AgentSnapshot) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	// sprites are scaled to the agent size and drawn facing up
	if w > 0 {
		k := float64(s.Size) / float64(w)
		op.GeoM.Scale(k, k)
	}
	op.GeoM.Rotate(s.Heading.Angle() + math.Pi/2)
	op.GeoM.Translate(s.Position.X, s.Position.Y)
	screen.DrawImage(img, op)
}

func drawTriangle(screen *ebiten.Image, s simulation.AgentSnapshot, clr color.RGBA) {
	size := float64(s.Size) / 2
	heading := s.Heading
	if heading.IsZero() {
		heading = geometry.NewVector(0, -1)
	}
	r, g, b, a := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255, float32(clr.A)/255

	vertex := func(p geometry.Vector2D) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		}
	}
	vertices := []ebiten.Vertex{
		vertex(s.Position.Add(heading.Mul(size * 1.2))),
		vertex(s.Position.Add(heading.Rotate(2.5).Mul(size))),
		vertex(s.Position.Add(heading.Rotate(-2.5).Mul(size))),
	}
	screen.DrawTriangles(vertices, []uint16{0, 1, 2}, whiteImage, &ebiten.DrawTrianglesOptions{})
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	w := g.ctrl.World()
	state := "running"
	if w.Paused() {
		state = "PAUSED"
	}
	msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nUpdate: %.2fms  Draw: %.2fms\nTick %d  %s\n%d agents in %d flocks",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.updateAvg, g.drawAvg,
		w.Tick(), state, w.AgentCount(), len(w.Flocks()))
	ebitenutil.DebugPrintAt(screen, msg, g.width-220, 10)

	y := 80
	for _, st := range g.ctrl.Stats() {
		line := fmt.Sprintf("%-10s %4d  pol %.2f", st.Name, st.Count, st.Polarization)
		ebitenutil.DebugPrintAt(screen, line, g.width-220, y)
		y += 16
	}
	if g.status != "" {
		ebitenutil.DebugPrintAt(screen, g.status, panelWidth+20, g.height-20)
	}
}
