package simulation

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	golog "github.com/tochemey/goakt/v3/log"
)

// World owns every flock and advances them in lockstep.
// It is not safe for concurrent use: one goroutine drives it, shells go through its methods only.
type World struct {
	bounds  Bounds
	flocks  []*Flock
	paused  bool
	tick    uint64
	seed    uint64
	spawned uint64
	logger  golog.Logger
}

// Option configures a World at construction.
type Option func(*World)

// WithLogger sets the logger used for control commands (Info) and ticks (Debug).
func WithLogger(logger golog.Logger) Option {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithSeed makes agent placement reproducible. Zero keeps the time based seed.
func WithSeed(seed uint64) Option {
	return func(w *World) {
		if seed != 0 {
			w.seed = seed
		}
	}
}

// NewWorld lays a new, empty world on surface.
// It fails with ErrSurfaceNotReady when the surface is missing or has no area yet.
func NewWorld(surface Surface, opts ...Option) (*World, error) {
	bounds, err := boundsOf(surface)
	if err != nil {
		return nil, err
	}
	w := &World{
		bounds: bounds,
		seed:   uint64(time.Now().UnixNano()),
		logger: golog.DiscardLogger,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger.Infof("world created %gx%g (seed %d)", bounds.Width, bounds.Height, w.seed)
	return w, nil
}

func (w *World) Bounds() Bounds { return w.bounds }

func (w *World) Paused() bool { return w.paused }

// Tick is the number of steps actually simulated (paused steps are not counted).
func (w *World) Tick() uint64 { return w.tick }

func (w *World) Seed() uint64 { return w.seed }

// newRand gives every spawned flock its own stream, derived from the world seed and the flock name.
func (w *World) newRand(name string) *rand.Rand {
	w.spawned++
	return rand.New(rand.NewPCG(w.seed+w.spawned, xxhash.Sum64String(name)))
}

// randReader feeds uuid from a flock's stream, so a seeded world hands out the same ids every run.
type randReader struct{ rng *rand.Rand }

func (r randReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.Uint32())
	}
	return len(p), nil
}

// AddFlock creates a flock of count freshly randomised agents and returns its id.
// Name uniqueness is the caller's business.
func (w *World) AddFlock(name string, count int, look Appearance, size int, speed float64) (string, error) {
	if count < 0 {
		return "", fmt.Errorf("%w: negative agent count %d", ErrInvalidParameter, count)
	}
	if err := validateLook(size, speed); err != nil {
		return "", err
	}
	rng := w.newRand(name)
	agents := make([]*Agent, count)
	for i := range agents {
		agents[i] = NewAgent(rng, w.bounds, size, speed, look)
	}
	f := NewFlock(name, agents)
	// drawn after the agents so the id never shifts placement
	if id, err := uuid.NewRandomFromReader(randReader{rng}); err == nil {
		f.id = id.String()
	}
	w.flocks = append(w.flocks, f)
	w.logger.Infof("flock %q (%s) added: %d agents, size %d, speed %g, %s", name, f.ID(), count, size, speed, look)
	return f.ID(), nil
}

// Spawn adds a flock described by a preset, including its radii, weights and edge mode.
func (w *World) Spawn(fc FlockConfig) (string, error) {
	look, err := fc.Appearance()
	if err != nil {
		return "", err
	}
	if err := fc.Radii.Validate(); err != nil {
		return "", err
	}
	if err := fc.Weights.Validate(); err != nil {
		return "", err
	}
	edge, err := ParseEdgePolicy(fc.EdgeMode)
	if err != nil {
		return "", err
	}
	id, err := w.AddFlock(fc.Name, fc.Count, look, fc.Size, fc.Speed)
	if err != nil {
		return "", err
	}
	f, _ := w.Flock(id)
	f.radii = fc.Radii
	f.weights = fc.Weights
	f.SetEdgeMode(edge)
	return id, nil
}

// Flock looks a flock up by id.
func (w *World) Flock(id string) (*Flock, error) {
	for _, f := range w.flocks {
		if f.id == id {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrFlockNotFound, id)
}

// Flocks returns the flocks in creation order. The slice is a copy.
func (w *World) Flocks() []*Flock {
	out := make([]*Flock, len(w.flocks))
	copy(out, w.flocks)
	return out
}

// FlockNames lists flock names in creation order.
func (w *World) FlockNames() []string {
	names := make([]string, len(w.flocks))
	for i, f := range w.flocks {
		names[i] = f.name
	}
	return names
}

// AgentCount is the total number of agents across all flocks.
func (w *World) AgentCount() int {
	n := 0
	for _, f := range w.flocks {
		n += f.Len()
	}
	return n
}

// EditFlock applies the flock editor form to flock id.
func (w *World) EditFlock(id string, look Appearance, size int, speed float64, alignRadius, cohRadius, sepRadius int) error {
	f, err := w.Flock(id)
	if err != nil {
		return err
	}
	if err := f.Edit(look, size, speed, alignRadius, cohRadius, sepRadius); err != nil {
		return fmt.Errorf("edit flock %q: %w", f.name, err)
	}
	w.logger.Infof("flock %q edited: size %d, speed %g, radii %+v, %s", f.name, size, speed, f.radii, look)
	return nil
}

// DeleteFlock removes flock id and all of its agents.
func (w *World) DeleteFlock(id string) error {
	for i, f := range w.flocks {
		if f.id == id {
			w.flocks = append(w.flocks[:i], w.flocks[i+1:]...)
			w.logger.Infof("flock %q deleted (%d agents)", f.name, f.Len())
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrFlockNotFound, id)
}

// SetWeights changes the blend weights of flock id.
func (w *World) SetWeights(id string, velocity, separation, alignment, cohesion float64) error {
	f, err := w.Flock(id)
	if err != nil {
		return err
	}
	weights := Weights{Velocity: velocity, Separation: separation, Alignment: alignment, Cohesion: cohesion}
	if err := f.SetWeights(weights); err != nil {
		return fmt.Errorf("set weights of flock %q: %w", f.name, err)
	}
	w.logger.Infof("flock %q weights %+v", f.name, weights)
	return nil
}

// SetEvasionRadius changes how far flock id flees from a disruption.
func (w *World) SetEvasionRadius(id string, radius int) error {
	f, err := w.Flock(id)
	if err != nil {
		return err
	}
	if err := f.SetEvasionRadius(radius); err != nil {
		return fmt.Errorf("set evasion radius of flock %q: %w", f.name, err)
	}
	w.logger.Infof("flock %q evasion radius %d", f.name, radius)
	return nil
}

// TogglePause switches between running and paused and returns the new state.
func (w *World) TogglePause() bool {
	w.paused = !w.paused
	w.logger.Infof("paused: %t", w.paused)
	return w.paused
}

// ToggleEdgeMode flips the edge policy of every agent in every flock.
func (w *World) ToggleEdgeMode() {
	for _, f := range w.flocks {
		f.ToggleEdgeMode()
	}
	w.logger.Infof("edge mode toggled for %d flocks", len(w.flocks))
}

// Step advances the world by one tick and reports whether anything happened.
//
// While paused nothing moves. With a disruption point every flock evades it and
// nobody flocks this tick; otherwise every flock computes and stages its velocities
// before any flock commits, so the whole tick reads pre-tick state only.
func (w *World) Step(disruption *geometry.Vector2D) bool {
	if w.paused {
		return false
	}
	w.tick++
	if disruption != nil {
		for _, f := range w.flocks {
			f.Evade(*disruption, w.bounds)
		}
		w.logger.Debugf("tick %d: disruption at %s", w.tick, *disruption)
		return true
	}
	for _, f := range w.flocks {
		f.Move(w.bounds)
	}
	w.logger.Debugf("tick %d: %d flocks moved", w.tick, len(w.flocks))
	return true
}
