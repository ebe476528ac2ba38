package bench

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/control"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	golog "github.com/tochemey/goakt/v3/log"
)

func TestRun(t *testing.T) {
	results, err := Run(context.Background(), nil, 3, 20, 5, golog.DiscardLogger)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, uint64(5+i), r.Seed)
		assert.Equal(t, 40, r.Agents)
		assert.Equal(t, 20, r.Ticks)
		assert.Equal(t, int64(800), r.AgentSteps())
		assert.Len(t, r.Stats, 2)
	}
	assert.NotEqual(t, results[0].Stats[0].Centroid, results[1].Stats[0].Centroid, "different seeds, different worlds")
}

func TestRun_Reproducible(t *testing.T) {
	a, err := Run(context.Background(), nil, 2, 15, 9, golog.DiscardLogger)
	require.NoError(t, err)
	b, err := Run(context.Background(), nil, 2, 15, 9, golog.DiscardLogger)
	require.NoError(t, err)
	for i := range a {
		assert.Equal(t, a[i].Stats, b[i].Stats)
		assert.Equal(t, a[i].Stats[0].ID, b[i].Stats[0].ID, "flock ids follow the seed")
	}
}

func TestRun_WithDisruption(t *testing.T) {
	p := geometry.NewVector(500, 350)
	results, err := Run(context.Background(), nil, 1, 6, 4, golog.DiscardLogger, WithDisruption(p, 2))
	require.NoError(t, err)

	cfg := simulation.DefaultConfig()
	cfg.Seed = 4
	ctrl, err := control.New(cfg, cfg.Bounds(), nil)
	require.NoError(t, err)
	for tick := 0; tick < 6; tick++ {
		if tick%2 == 1 {
			ctrl.Step(&p)
		} else {
			ctrl.Step(nil)
		}
	}
	assert.Equal(t, ctrl.Stats(), results[0].Stats)

	plain, err := Run(context.Background(), nil, 1, 6, 4, golog.DiscardLogger, WithDisruption(p, 0))
	require.NoError(t, err)
	undisturbed, err := Run(context.Background(), nil, 1, 6, 4, golog.DiscardLogger)
	require.NoError(t, err)
	assert.Equal(t, undisturbed[0].Stats, plain[0].Stats, "a zero period disables the disruption")
}

func TestRun_Errors(t *testing.T) {
	_, err := Run(context.Background(), nil, 0, 10, 1, golog.DiscardLogger)
	assert.True(t, errors.Is(err, simulation.ErrInvalidParameter))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, nil, 2, 10, 1, golog.DiscardLogger)
	assert.True(t, errors.Is(err, context.Canceled))

	cfg := simulation.DefaultConfig()
	cfg.WorldWidth = 0
	_, err = Run(context.Background(), cfg, 1, 10, 1, golog.DiscardLogger)
	assert.True(t, errors.Is(err, simulation.ErrSurfaceNotReady))
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, []Result{{
		Index: 0, Seed: 7, Agents: 1500, Ticks: 2000, Elapsed: 2 * time.Second,
		Stats: []simulation.FlockStats{{Name: "Birds", Polarization: 0.5}},
	}})
	out := buf.String()
	assert.Contains(t, out, "1,500 agents")
	assert.Contains(t, out, "2,000 ticks")
	assert.Contains(t, out, "1.5 Msteps/s")
	assert.Contains(t, out, "Birds")
	assert.Contains(t, out, "3,000,000 agent steps")
}
