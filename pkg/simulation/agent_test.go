package simulation

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBounds = Bounds{Width: 1000, Height: 700}

func TestNewAgent_SpawnsInsideInsetBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 500; i++ {
		a := NewAgent(rng, testBounds, 10, 5, DefaultAppearance)
		assert.GreaterOrEqual(t, a.Position.X, 10.0)
		assert.LessOrEqual(t, a.Position.X, testBounds.Width-10)
		assert.GreaterOrEqual(t, a.Position.Y, 10.0)
		assert.LessOrEqual(t, a.Position.Y, testBounds.Height-10)
		assert.InDelta(t, 5.0, a.Velocity.Len(), 1e-9)
		assert.Equal(t, Wrap, a.Edge)
		_, staged := a.pendingVelocity()
		assert.False(t, staged)
	}
}

func TestAgent_Integrate(t *testing.T) {
	a := &Agent{Position: geometry.Vector2D{X: 10, Y: 20}, Velocity: geometry.Vector2D{X: -3, Y: 4}}
	a.Integrate()
	assert.Equal(t, geometry.Vector2D{X: 7, Y: 24}, a.Position)
	assert.Equal(t, geometry.Vector2D{X: -3, Y: 4}, a.Velocity)
}

func TestAgent_WrapBoundary(t *testing.T) {
	tests := []struct {
		name string
		pos  geometry.Vector2D
		want geometry.Vector2D
	}{
		{"just past left", geometry.Vector2D{X: -0.001, Y: 50}, geometry.Vector2D{X: 1000, Y: 50}},
		{"just past right", geometry.Vector2D{X: 1000.001, Y: 50}, geometry.Vector2D{X: 0, Y: 50}},
		{"just past top", geometry.Vector2D{X: 50, Y: -0.001}, geometry.Vector2D{X: 50, Y: 700}},
		{"just past bottom", geometry.Vector2D{X: 50, Y: 700.001}, geometry.Vector2D{X: 50, Y: 0}},
		{"far out is a hard teleport", geometry.Vector2D{X: -250, Y: 1900}, geometry.Vector2D{X: 1000, Y: 0}},
		{"on the edge stays", geometry.Vector2D{X: 1000, Y: 0}, geometry.Vector2D{X: 1000, Y: 0}},
		{"inside untouched", geometry.Vector2D{X: 500, Y: 350}, geometry.Vector2D{X: 500, Y: 350}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Agent{Position: tt.pos, Velocity: geometry.Vector2D{X: 1, Y: 1}, Size: 10, Edge: Wrap}
			a.ApplyBoundaryPolicy(testBounds)
			assert.Equal(t, tt.want, a.Position)
			assert.Equal(t, geometry.Vector2D{X: 1, Y: 1}, a.Velocity, "wrap must not touch velocity")
		})
	}
}

func TestAgent_BounceBoundary(t *testing.T) {
	tests := []struct {
		name string
		pos  geometry.Vector2D
		vel  geometry.Vector2D
		want geometry.Vector2D
	}{
		{"near left flips x", geometry.Vector2D{X: 4, Y: 300}, geometry.Vector2D{X: -3, Y: 2}, geometry.Vector2D{X: 3, Y: 2}},
		{"near right flips x", geometry.Vector2D{X: 996, Y: 300}, geometry.Vector2D{X: 3, Y: 2}, geometry.Vector2D{X: -3, Y: 2}},
		{"near top flips y", geometry.Vector2D{X: 300, Y: 1}, geometry.Vector2D{X: 3, Y: -2}, geometry.Vector2D{X: 3, Y: 2}},
		{"corner flips both", geometry.Vector2D{X: -1, Y: 702}, geometry.Vector2D{X: -3, Y: 2}, geometry.Vector2D{X: 3, Y: -2}},
		{"exactly size/2 is not beyond", geometry.Vector2D{X: 5, Y: 300}, geometry.Vector2D{X: -3, Y: 2}, geometry.Vector2D{X: -3, Y: 2}},
		{"inside untouched", geometry.Vector2D{X: 500, Y: 300}, geometry.Vector2D{X: -3, Y: 2}, geometry.Vector2D{X: -3, Y: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Agent{Position: tt.pos, Velocity: tt.vel, Size: 10, Edge: Bounce}
			a.ApplyBoundaryPolicy(testBounds)
			assert.Equal(t, tt.want, a.Velocity)
			assert.Equal(t, tt.pos, a.Position, "bounce must not clamp the position")
		})
	}
}

func TestAgent_StageAndCommit(t *testing.T) {
	a := &Agent{Velocity: geometry.Vector2D{X: 1, Y: 0}}

	a.CommitVelocity()
	assert.Equal(t, geometry.Vector2D{X: 1, Y: 0}, a.Velocity, "commit without stage is a no-op")

	a.StageVelocity(geometry.Vector2D{X: 0, Y: 2})
	assert.Equal(t, geometry.Vector2D{X: 1, Y: 0}, a.Velocity, "staging must not change the velocity")
	pending, ok := a.pendingVelocity()
	require.True(t, ok)
	assert.Equal(t, geometry.Vector2D{X: 0, Y: 2}, pending)

	a.CommitVelocity()
	assert.Equal(t, geometry.Vector2D{X: 0, Y: 2}, a.Velocity)
	_, ok = a.pendingVelocity()
	assert.False(t, ok, "commit clears the pending slot")
}

func TestAgent_EvadeConvergence(t *testing.T) {
	point := geometry.Vector2D{X: 500, Y: 350}
	rng := rand.New(rand.NewPCG(9, 9))
	for i := 0; i < 200; i++ {
		d := 1 + rng.Float64()*148
		theta := rng.Float64() * 2 * math.Pi
		a := &Agent{Position: point.Add(geometry.NewVectorPolar(d, theta))}
		a.Evade(point, 150, testBounds)
		assert.InDelta(t, 150, a.Position.DistanceTo(point), 1e-9)
	}
}

func TestAgent_EvadeOutsideRadiusDoesNotMove(t *testing.T) {
	a := &Agent{Position: geometry.Vector2D{X: 100, Y: 100}, Velocity: geometry.Vector2D{X: 1, Y: 1}}
	a.Evade(geometry.Vector2D{X: 100, Y: 250}, 150, testBounds)
	assert.Equal(t, geometry.Vector2D{X: 100, Y: 100}, a.Position, "distance == radius is not inside")
	assert.Equal(t, geometry.Vector2D{X: 1, Y: 1}, a.Velocity)
}

func TestAgent_EvadeClampsToScreen(t *testing.T) {
	a := &Agent{Position: geometry.Vector2D{X: 10, Y: 690}}
	a.Evade(geometry.Vector2D{X: 20, Y: 680}, 150, testBounds)
	assert.Equal(t, geometry.Vector2D{X: 0, Y: 699}, a.Position)
}

func TestAgent_EvadeAtDisruptionPointStaysPut(t *testing.T) {
	for _, p := range []geometry.Vector2D{{X: 42, Y: 42}, {X: 999.5, Y: 100}, {X: 0, Y: 700}} {
		a := &Agent{Position: p}
		a.Evade(p, 150, testBounds)
		assert.Equal(t, p, a.Position, "no direction to flee from %s, not even onto the screen", p)
		assert.False(t, math.IsNaN(a.Position.X))
	}
}

func TestEdgePolicy(t *testing.T) {
	assert.Equal(t, Bounce, Wrap.Toggle())
	assert.Equal(t, Wrap, Bounce.Toggle())
	assert.Equal(t, "wrap", Wrap.String())
	assert.Equal(t, "bounce", Bounce.String())
}

func TestParseEdgePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want EdgePolicy
	}{
		{"", Wrap},
		{"wrap", Wrap},
		{"bounce", Bounce},
	}
	for _, tt := range tests {
		got, err := ParseEdgePolicy(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	for _, bad := range []string{"Bounce", "reflect", " wrap"} {
		_, err := ParseEdgePolicy(bad)
		assert.True(t, errors.Is(err, ErrInvalidParameter), "%q", bad)
	}
}
