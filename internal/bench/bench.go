// Package bench runs independent headless worlds side by side and measures them.
package bench

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/control"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	golog "github.com/tochemey/goakt/v3/log"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one world.
type Result struct {
	Index   int
	Seed    uint64
	Agents  int
	Ticks   int
	Elapsed time.Duration
	Stats   []simulation.FlockStats
}

// AgentSteps is the number of agent updates performed.
func (r Result) AgentSteps() int64 { return int64(r.Agents) * int64(r.Ticks) }

// Rate is agent updates per second.
func (r Result) Rate() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.AgentSteps()) / r.Elapsed.Seconds()
}

type options struct {
	disruption *geometry.Vector2D
	every      int
}

// Option tunes a Run.
type Option func(*options)

// WithDisruption disrupts every world at p once every every ticks, the way a click would.
// A non-positive every turns it off.
func WithDisruption(p geometry.Vector2D, every int) Option {
	return func(o *options) {
		if every > 0 {
			o.disruption, o.every = &p, every
		}
	}
}

// Run builds worlds copies of cfg, seeded seed, seed+1, ..., and steps each for ticks ticks.
// Worlds never share state, so they run on as many goroutines as there are CPUs.
func Run(ctx context.Context, cfg *simulation.Config, worlds, ticks int, seed uint64, logger golog.Logger, opts ...Option) ([]Result, error) {
	if worlds <= 0 || ticks < 0 {
		return nil, fmt.Errorf("%w: %d worlds, %d ticks", simulation.ErrInvalidParameter, worlds, ticks)
	}
	if cfg == nil {
		cfg = simulation.DefaultConfig()
	}
	if seed == 0 {
		seed = 1
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.disruption != nil {
		logger.Infof("disrupting at %s every %d ticks", o.disruption.Format(), o.every)
	}

	results := make([]Result, worlds)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < worlds; i++ {
		g.Go(func() error {
			c := *cfg
			c.Seed = seed + uint64(i)
			ctrl, err := control.New(&c, c.Bounds(), logger)
			if err != nil {
				return fmt.Errorf("world %d: %w", i, err)
			}
			start := time.Now()
			for t := 0; t < ticks; t++ {
				if t%100 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				if o.disruption != nil && (t+1)%o.every == 0 {
					ctrl.Step(o.disruption)
				} else {
					ctrl.Step(nil)
				}
			}
			results[i] = Result{
				Index:   i,
				Seed:    c.Seed,
				Agents:  ctrl.World().AgentCount(),
				Ticks:   ticks,
				Elapsed: time.Since(start),
				Stats:   ctrl.Stats(),
			}
			logger.Debugf("world %d done in %s", i, results[i].Elapsed)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Report prints one line per world and a total.
func Report(w io.Writer, results []Result) {
	var total int64
	var wall time.Duration
	for _, r := range results {
		total += r.AgentSteps()
		wall = max(wall, r.Elapsed)
		fmt.Fprintf(w, "world %2d  seed %-6d %s agents x %s ticks in %s  (%s)\n",
			r.Index, r.Seed, humanize.Comma(int64(r.Agents)), humanize.Comma(int64(r.Ticks)),
			r.Elapsed.Round(time.Microsecond), humanize.SI(r.Rate(), "steps/s"))
		for _, s := range r.Stats {
			fmt.Fprintf(w, "          %-12s centroid %s  polarization %.3f\n", s.Name, s.Centroid, s.Polarization)
		}
	}
	if wall > 0 {
		fmt.Fprintf(w, "total     %s agent steps, %s overall\n",
			humanize.Comma(total), humanize.SI(float64(total)/wall.Seconds(), "steps/s"))
	}
}
