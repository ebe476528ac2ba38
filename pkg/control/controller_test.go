package control

import (
	"errors"
	"testing"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController(t *testing.T) *Controller {
	t.Helper()
	cfg := simulation.DefaultConfig()
	cfg.Seed = 1234
	c, err := New(cfg, cfg.Bounds(), nil)
	require.NoError(t, err)
	return c
}

func TestNew_SpawnsConfiguredFlocks(t *testing.T) {
	c := newController(t)
	assert.Equal(t, []string{"Birds", "Raptors"}, c.World().FlockNames())
	assert.Equal(t, 40, c.World().AgentCount())
	assert.Equal(t, uint64(1234), c.World().Seed())
	assert.Equal(t, 1234, int(c.Config().Seed))
}

func TestNew_NilConfigUsesDefaults(t *testing.T) {
	c, err := New(nil, simulation.Bounds{Width: 1000, Height: 700}, nil)
	require.NoError(t, err)
	assert.Equal(t, 40, c.World().AgentCount())
}

func TestNew_Failures(t *testing.T) {
	_, err := New(nil, simulation.Bounds{}, nil)
	assert.True(t, errors.Is(err, simulation.ErrSurfaceNotReady))

	cfg := simulation.DefaultConfig()
	cfg.Flocks = append(cfg.Flocks, simulation.DefaultFlockConfig("Birds", 3))
	_, err = New(cfg, cfg.Bounds(), nil)
	assert.True(t, errors.Is(err, ErrDuplicateName))
}

func TestController_AddFlockNames(t *testing.T) {
	c := newController(t)

	_, err := c.AddFlock("Birds", 5, simulation.DefaultAppearance, 10, 5)
	assert.True(t, errors.Is(err, ErrDuplicateName))

	_, err = c.AddFlock("  ", 5, simulation.DefaultAppearance, 10, 5)
	assert.True(t, errors.Is(err, simulation.ErrInvalidParameter))

	id, err := c.AddFlock("Crows", 5, simulation.DefaultAppearance, 10, 5)
	require.NoError(t, err)
	f, err := c.FlockByName("Crows")
	require.NoError(t, err)
	assert.Equal(t, id, f.ID())

	_, err = c.FlockByName("Owls")
	assert.True(t, errors.Is(err, simulation.ErrFlockNotFound))

	require.NoError(t, c.DeleteFlock(id))
	_, err = c.AddFlock("Crows", 2, simulation.DefaultAppearance, 10, 5)
	assert.NoError(t, err, "a deleted name can be reused")
}

func TestController_FlockIDAt(t *testing.T) {
	c := newController(t)
	flocks := c.World().Flocks()

	for i, f := range flocks {
		id, err := c.FlockIDAt(i)
		require.NoError(t, err)
		assert.Equal(t, f.ID(), id)
	}
	for _, i := range []int{-1, len(flocks)} {
		_, err := c.FlockIDAt(i)
		assert.True(t, errors.Is(err, simulation.ErrFlockNotFound), "index %d", i)
	}
}

func TestController_Delegates(t *testing.T) {
	c := newController(t)
	id, err := c.FlockIDAt(0)
	require.NoError(t, err)

	require.NoError(t, c.SetWeights(id, 1, 0, 0, 0))
	require.NoError(t, c.SetEvasionRadius(id, 75))
	require.NoError(t, c.EditFlock(id, simulation.DefaultAppearance, 8, 4, 40, 45, 20))
	f, _ := c.World().Flock(id)
	assert.Equal(t, simulation.Weights{Velocity: 1}, f.Weights())
	assert.Equal(t, simulation.Radii{Separation: 20, Alignment: 40, Cohesion: 45, Evasion: 75}, f.Radii())

	assert.True(t, c.TogglePause())
	assert.False(t, c.Step(nil))
	assert.False(t, c.TogglePause())
	assert.True(t, c.Step(&geometry.Vector2D{X: 500, Y: 350}))
	assert.True(t, c.Step(nil))
	assert.Equal(t, uint64(2), c.World().Tick())

	c.ToggleEdgeMode()
	for _, s := range c.Snapshot() {
		assert.Equal(t, simulation.Bounce, s.Edge)
	}
	assert.Len(t, c.Stats(), 2)
}

func TestController_ResetRebuildsFromConfig(t *testing.T) {
	c := newController(t)
	initial := c.Snapshot()

	_, err := c.AddFlock("Extra", 3, simulation.DefaultAppearance, 10, 5)
	require.NoError(t, err)
	c.ToggleEdgeMode()
	c.TogglePause()
	for i := 0; i < 10; i++ {
		c.Step(nil)
	}

	require.NoError(t, c.Reset())
	assert.Equal(t, []string{"Birds", "Raptors"}, c.World().FlockNames())
	assert.False(t, c.World().Paused())
	assert.Zero(t, c.World().Tick())

	after := c.Snapshot()
	require.Len(t, after, len(initial))
	for i := range initial {
		assert.Equal(t, initial[i].Position, after[i].Position, "same seed, same layout")
		assert.Equal(t, initial[i].FlockID, after[i].FlockID, "same seed, same ids")
		assert.Equal(t, simulation.Wrap, after[i].Edge)
	}
}
