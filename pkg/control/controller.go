// Package control is the command surface shared by every shell: it owns the World,
// keeps flock names unique and can rebuild the world from its configuration.
package control

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	golog "github.com/tochemey/goakt/v3/log"
)

// ErrDuplicateName is returned when a flock with the same name already exists.
var ErrDuplicateName = errors.New("flock name already in use")

// Controller drives one World. Like the World it is meant for a single goroutine.
type Controller struct {
	cfg     *simulation.Config
	surface simulation.Surface
	opts    []simulation.Option
	logger  golog.Logger
	world   *simulation.World
}

// New builds a world on surface and spawns every flock listed in cfg.
// A nil cfg means DefaultConfig. A zero seed in cfg keeps the world's clock seed.
func New(cfg *simulation.Config, surface simulation.Surface, logger golog.Logger, opts ...simulation.Option) (*Controller, error) {
	if cfg == nil {
		cfg = simulation.DefaultConfig()
	}
	if logger == nil {
		logger = golog.DiscardLogger
	}
	all := []simulation.Option{simulation.WithLogger(logger)}
	if cfg.Seed != 0 {
		all = append(all, simulation.WithSeed(cfg.Seed))
	}
	c := &Controller{
		cfg:     cfg,
		surface: surface,
		opts:    append(all, opts...),
		logger:  logger,
	}
	if err := c.build(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) build() error {
	w, err := simulation.NewWorld(c.surface, c.opts...)
	if err != nil {
		return err
	}
	prev := c.world
	c.world = w
	for _, fc := range c.cfg.Flocks {
		if _, err := c.Spawn(fc); err != nil {
			c.world = prev
			return fmt.Errorf("spawn %q: %w", fc.Name, err)
		}
	}
	return nil
}

// Reset throws the current world away and rebuilds it from the configuration.
// With a configured seed the new world is identical to the first one.
// On failure the current world is kept.
func (c *Controller) Reset() error {
	if err := c.build(); err != nil {
		return err
	}
	c.logger.Infof("world reset: %d flocks, %d agents", len(c.world.Flocks()), c.world.AgentCount())
	return nil
}

// World gives read access to the underlying world, mostly for rendering.
func (c *Controller) World() *simulation.World { return c.world }

func (c *Controller) Config() *simulation.Config { return c.cfg }

func (c *Controller) checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty flock name", simulation.ErrInvalidParameter)
	}
	for _, n := range c.world.FlockNames() {
		if n == name {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
	}
	return nil
}

// AddFlock adds a flock with default radii and weights under a new, unique name.
func (c *Controller) AddFlock(name string, count int, look simulation.Appearance, size int, speed float64) (string, error) {
	if err := c.checkName(name); err != nil {
		return "", err
	}
	return c.world.AddFlock(name, count, look, size, speed)
}

// Spawn adds a flock from a preset under a new, unique name.
func (c *Controller) Spawn(fc simulation.FlockConfig) (string, error) {
	if err := c.checkName(fc.Name); err != nil {
		return "", err
	}
	return c.world.Spawn(fc)
}

// FlockIDAt maps a position in a list of flocks (creation order) to its id.
func (c *Controller) FlockIDAt(index int) (string, error) {
	flocks := c.world.Flocks()
	if index < 0 || index >= len(flocks) {
		return "", fmt.Errorf("%w: index %d of %d", simulation.ErrFlockNotFound, index, len(flocks))
	}
	return flocks[index].ID(), nil
}

// FlockByName looks a flock up by its display name.
func (c *Controller) FlockByName(name string) (*simulation.Flock, error) {
	for _, f := range c.world.Flocks() {
		if f.Name() == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: no flock named %q", simulation.ErrFlockNotFound, name)
}

func (c *Controller) EditFlock(id string, look simulation.Appearance, size int, speed float64, alignRadius, cohRadius, sepRadius int) error {
	return c.world.EditFlock(id, look, size, speed, alignRadius, cohRadius, sepRadius)
}

func (c *Controller) DeleteFlock(id string) error { return c.world.DeleteFlock(id) }

func (c *Controller) SetWeights(id string, velocity, separation, alignment, cohesion float64) error {
	return c.world.SetWeights(id, velocity, separation, alignment, cohesion)
}

func (c *Controller) SetEvasionRadius(id string, radius int) error {
	return c.world.SetEvasionRadius(id, radius)
}

func (c *Controller) TogglePause() bool { return c.world.TogglePause() }

func (c *Controller) ToggleEdgeMode() { c.world.ToggleEdgeMode() }

// Step advances the world; pass a point to disrupt instead of flocking this tick.
func (c *Controller) Step(disruption *geometry.Vector2D) bool { return c.world.Step(disruption) }

func (c *Controller) Snapshot() []simulation.AgentSnapshot { return c.world.Snapshot() }

func (c *Controller) Stats() []simulation.FlockStats { return c.world.Stats() }
