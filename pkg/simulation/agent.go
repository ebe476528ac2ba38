package simulation

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// EdgePolicy decides what happens to an agent that reaches the border of the world.
type EdgePolicy int

const (
	// Wrap teleports the agent to the opposite edge.
	Wrap EdgePolicy = iota
	// Bounce reflects the velocity component pointing out of the world.
	Bounce
)

// String implements fmt.Stringer.
func (e EdgePolicy) String() string {
	if e == Bounce {
		return "bounce"
	}
	return "wrap"
}

// Toggle returns the other policy.
func (e EdgePolicy) Toggle() EdgePolicy {
	if e == Bounce {
		return Wrap
	}
	return Bounce
}

// ParseEdgePolicy accepts "wrap", "bounce", or "" for Wrap.
func ParseEdgePolicy(s string) (EdgePolicy, error) {
	switch s {
	case "", "wrap":
		return Wrap, nil
	case "bounce":
		return Bounce, nil
	}
	return Wrap, fmt.Errorf("%w: unknown edge mode %q", ErrInvalidParameter, s)
}

// Agent is one boid. Its velocity only changes through the stage/commit pair
// so that a flock can compute every new velocity from the same pre-tick state.
type Agent struct {
	Position   geometry.Vector2D
	Velocity   geometry.Vector2D
	Size       int
	Speed      float64
	Edge       EdgePolicy
	Appearance Appearance

	pending    geometry.Vector2D
	hasPending bool
}

// NewAgent places an agent at a random location inside bounds, inset by 2*speed from every edge,
// heading in a direction drawn uniformly from [0, 2π).
func NewAgent(rng *rand.Rand, bounds Bounds, size int, speed float64, look Appearance) *Agent {
	inset := 2 * speed
	x := (bounds.Width-2*inset)*rng.Float64() + inset
	y := (bounds.Height-2*inset)*rng.Float64() + inset
	heading := 2 * math.Pi * rng.Float64()
	return &Agent{
		Position:   geometry.Vector2D{X: x, Y: y},
		Velocity:   geometry.NewVectorPolar(speed, heading),
		Size:       size,
		Speed:      speed,
		Appearance: look,
	}
}

// Heading is the unit vector of the current velocity (zero when the agent is still).
func (a *Agent) Heading() geometry.Vector2D {
	return a.Velocity.Normalize()
}

// DistanceTo is the Euclidean distance between two agents.
func (a *Agent) DistanceTo(other *Agent) float64 {
	return a.Position.DistanceTo(other.Position)
}

// Integrate moves the agent by its committed velocity.
func (a *Agent) Integrate() {
	a.Position = a.Position.Add(a.Velocity)
}

// ApplyBoundaryPolicy enforces the edge policy once, after integration.
//
// Wrap is a hard teleport: below 0 lands exactly on the far edge, beyond the edge lands exactly on 0,
// however far out the agent went. Bounce flips the outgoing velocity component when the agent is
// within size/2 of an edge, leaving the position untouched.
func (a *Agent) ApplyBoundaryPolicy(bounds Bounds) {
	if a.Edge == Wrap {
		if a.Position.X < 0 {
			a.Position.X = bounds.Width
		} else if a.Position.X > bounds.Width {
			a.Position.X = 0
		}
		if a.Position.Y < 0 {
			a.Position.Y = bounds.Height
		} else if a.Position.Y > bounds.Height {
			a.Position.Y = 0
		}
		return
	}

	half := float64(a.Size) / 2
	if a.Position.X < half || a.Position.X > bounds.Width-half {
		a.Velocity.X = -a.Velocity.X
	}
	if a.Position.Y < half || a.Position.Y > bounds.Height-half {
		a.Velocity.Y = -a.Velocity.Y
	}
}

// StageVelocity records v; it only takes effect on CommitVelocity.
func (a *Agent) StageVelocity(v geometry.Vector2D) {
	a.pending = v
	a.hasPending = true
}

// pendingVelocity returns the staged velocity, if any.
func (a *Agent) pendingVelocity() (geometry.Vector2D, bool) {
	return a.pending, a.hasPending
}

// CommitVelocity makes the staged velocity current and clears the slot.
func (a *Agent) CommitVelocity() {
	if !a.hasPending {
		return
	}
	a.Velocity = a.pending
	a.pending = geometry.Zero
	a.hasPending = false
}

// Evade pushes the agent straight away from point until it sits exactly radius away,
// then keeps it on screen. Agents already at or beyond radius do not move, nor does an
// agent sitting exactly on point (there is no direction to flee along).
func (a *Agent) Evade(point geometry.Vector2D, radius float64, bounds Bounds) {
	d := a.Position.Sub(point)
	dist := d.Len()
	if dist >= radius || d.IsZero() {
		return
	}
	a.Position = a.Position.Add(d.Normalize().Mul(radius - dist)).
		Clamp(0, 0, bounds.Width-1, bounds.Height-1)
}
