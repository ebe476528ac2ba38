package simulation

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// Radii are the neighbourhood sizes used by each rule, in world units.
type Radii struct {
	Separation int `json:"separation" yaml:"separation"`
	Alignment  int `json:"alignment" yaml:"alignment"`
	Cohesion   int `json:"cohesion" yaml:"cohesion"`
	Evasion    int `json:"evasion" yaml:"evasion"`
}

// Weights blend the current heading with the three rules. They need not sum to 1,
// the blended vector is renormalised anyway.
type Weights struct {
	Velocity   float64 `json:"velocity" yaml:"velocity"`
	Separation float64 `json:"separation" yaml:"separation"`
	Alignment  float64 `json:"alignment" yaml:"alignment"`
	Cohesion   float64 `json:"cohesion" yaml:"cohesion"`
}

var (
	DefaultRadii   = Radii{Separation: 30, Alignment: 50, Cohesion: 50, Evasion: 150}
	DefaultWeights = Weights{Velocity: 0.4, Separation: 0.2, Alignment: 0.2, Cohesion: 0.2}
)

// Validate rejects negative radii.
func (r Radii) Validate() error {
	if r.Separation < 0 || r.Alignment < 0 || r.Cohesion < 0 || r.Evasion < 0 {
		return fmt.Errorf("%w: negative radius in %+v", ErrInvalidParameter, r)
	}
	return nil
}

// Validate rejects negative weights.
func (w Weights) Validate() error {
	if w.Velocity < 0 || w.Separation < 0 || w.Alignment < 0 || w.Cohesion < 0 {
		return fmt.Errorf("%w: negative weight in %+v", ErrInvalidParameter, w)
	}
	return nil
}

func validateLook(size int, speed float64) error {
	if size < 0 {
		return fmt.Errorf("%w: negative size %d", ErrInvalidParameter, size)
	}
	if speed < 0 {
		return fmt.Errorf("%w: negative speed %v", ErrInvalidParameter, speed)
	}
	return nil
}

// Flock is a named group of agents sharing radii and weights.
// Agents only ever react to members of their own flock.
type Flock struct {
	id      string
	name    string
	agents  []*Agent
	radii   Radii
	weights Weights
}

// NewFlock wraps agents into a flock with the default radii and weights.
func NewFlock(name string, agents []*Agent) *Flock {
	return &Flock{
		id:      uuid.NewString(),
		name:    name,
		agents:  agents,
		radii:   DefaultRadii,
		weights: DefaultWeights,
	}
}

// ID is a uuid, stable for the lifetime of the flock. Flocks added to a seeded World get
// the same ids on every run.
func (f *Flock) ID() string { return f.id }

func (f *Flock) Name() string { return f.name }

func (f *Flock) Len() int { return len(f.agents) }

func (f *Flock) Radii() Radii { return f.radii }

func (f *Flock) Weights() Weights { return f.weights }

// Agents exposes the members in creation order. Callers must not mutate them directly.
func (f *Flock) Agents() []*Agent { return f.agents }

func (f *Flock) String() string { return fmt.Sprintf("%s[%d]", f.name, len(f.agents)) }

// SetRadii replaces every radius, the evasion radius included.
func (f *Flock) SetRadii(r Radii) error {
	if err := r.Validate(); err != nil {
		return err
	}
	f.radii = r
	return nil
}

// SetEvasionRadius changes only the disruption radius.
func (f *Flock) SetEvasionRadius(radius int) error {
	r := f.radii
	r.Evasion = radius
	return f.SetRadii(r)
}

// SetWeights replaces the blend weights.
func (f *Flock) SetWeights(w Weights) error {
	if err := w.Validate(); err != nil {
		return err
	}
	f.weights = w
	return nil
}

// SetAppearance restyles every member. Positions and velocities are kept,
// the new speed applies from the next computed velocity on.
func (f *Flock) SetAppearance(look Appearance, size int, speed float64) error {
	if err := validateLook(size, speed); err != nil {
		return err
	}
	for _, a := range f.agents {
		a.Appearance = look
		a.Size = size
		a.Speed = speed
	}
	return nil
}

// Edit is the flock editor form: look, size, speed and the three rule radii.
// The evasion radius is left as is. Nothing changes if any value is rejected.
func (f *Flock) Edit(look Appearance, size int, speed float64, alignRadius, cohRadius, sepRadius int) error {
	r := f.radii
	r.Alignment, r.Cohesion, r.Separation = alignRadius, cohRadius, sepRadius
	if err := r.Validate(); err != nil {
		return err
	}
	if err := f.SetAppearance(look, size, speed); err != nil {
		return err
	}
	f.radii = r
	return nil
}

// ToggleEdgeMode flips every member between Wrap and Bounce.
func (f *Flock) ToggleEdgeMode() {
	for _, a := range f.agents {
		a.Edge = a.Edge.Toggle()
	}
}

// SetEdgeMode forces every member onto the same policy.
func (f *Flock) SetEdgeMode(e EdgePolicy) {
	for _, a := range f.agents {
		a.Edge = e
	}
}

// ---------------------------------------------------------------------
// Rules. Every scan covers the whole flock, b included, with strict '<' thresholds.
// ---------------------------------------------------------------------

// separationSum is the raw repulsion acting on b before normalisation.
// Each neighbour pushes along b-other, proportionally to how deep it sits inside the radius.
// b itself sits at distance 0 and contributes nothing since its offset normalises to zero.
func (f *Flock) separationSum(b *Agent) geometry.Vector2D {
	radius := float64(f.radii.Separation)
	sum := geometry.Zero
	for _, other := range f.agents {
		diff := b.Position.Sub(other.Position)
		dist := diff.Len()
		if dist < radius {
			sum = sum.Add(diff.Normalize().Mul(radius - dist))
		}
	}
	return sum
}

// SeparationVector is the unit vector steering b away from crowding neighbours.
func (f *Flock) SeparationVector(b *Agent) geometry.Vector2D {
	return f.separationSum(b).Normalize()
}

// AlignmentVector is the unit vector of the summed velocities around b.
func (f *Flock) AlignmentVector(b *Agent) geometry.Vector2D {
	radius := float64(f.radii.Alignment)
	sum := geometry.Zero
	for _, other := range f.agents {
		if b.DistanceTo(other) < radius {
			sum = sum.Add(other.Velocity)
		}
	}
	return sum.Normalize()
}

// CohesionVector is the unit vector from b toward the mean position of its neighbours.
// b counts as its own neighbour; with a zero radius nobody qualifies and Zero is returned.
func (f *Flock) CohesionVector(b *Agent) geometry.Vector2D {
	radius := float64(f.radii.Cohesion)
	sum := geometry.Zero
	neighbors := 0
	for _, other := range f.agents {
		if b.DistanceTo(other) < radius {
			sum = sum.Add(other.Position)
			neighbors++
		}
	}
	if neighbors == 0 {
		return geometry.Zero
	}
	return sum.Mul(1 / float64(neighbors)).Sub(b.Position).Normalize()
}

// ComputeVelocity blends b's heading with the three rules and scales the result to b's speed.
// It only reads state, so it can be called for any member in any order within a tick.
func (f *Flock) ComputeVelocity(b *Agent) geometry.Vector2D {
	w := f.weights
	v := b.Velocity.Normalize().Mul(w.Velocity).
		Add(f.SeparationVector(b).Mul(w.Separation)).
		Add(f.AlignmentVector(b).Mul(w.Alignment)).
		Add(f.CohesionVector(b).Mul(w.Cohesion))
	return v.Normalize().Mul(b.Speed)
}

// Stage computes every member's next velocity from the current state, then stages them all.
func (f *Flock) Stage() {
	proposals := make([]geometry.Vector2D, len(f.agents))
	for i, b := range f.agents {
		proposals[i] = f.ComputeVelocity(b)
	}
	for i, b := range f.agents {
		b.StageVelocity(proposals[i])
	}
}

// Commit makes staged velocities current, then integrates and applies the edge policy.
func (f *Flock) Commit(bounds Bounds) {
	for _, b := range f.agents {
		b.CommitVelocity()
	}
	for _, b := range f.agents {
		b.Integrate()
		b.ApplyBoundaryPolicy(bounds)
	}
}

// Move runs one full flocking tick for this flock.
func (f *Flock) Move(bounds Bounds) {
	f.Stage()
	f.Commit(bounds)
}

// Evade displaces members near point out to the evasion radius. Velocities are untouched.
func (f *Flock) Evade(point geometry.Vector2D, bounds Bounds) {
	radius := float64(f.radii.Evasion)
	for _, b := range f.agents {
		b.Evade(point, radius, bounds)
	}
}
