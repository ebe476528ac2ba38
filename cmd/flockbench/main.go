package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/bench"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	configFile := flag.String("config", "", "world configuration (.json, .yaml or .yml); built-in defaults when empty")
	schemaFile := flag.String("schema", "", "JSON schema used to validate the configuration; built-in when empty")
	worlds := flag.Int("worlds", 4, "number of independent worlds")
	ticks := flag.Int("ticks", 1000, "ticks per world")
	seed := flag.Uint64("seed", 1, "seed of the first world, the others follow")
	disrupt := flag.String("disrupt", "", `disruption point, for instance "< 500, 350 >"; none when empty`)
	every := flag.Int("disrupt-every", 50, "ticks between two disruptions")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	level := golog.InfoLevel
	if *debug {
		level = golog.DebugLevel
	}
	logger := golog.New(level, os.Stderr)

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configFile, *schemaFile); err != nil {
			log.Fatal(err)
		}
	}

	var opts []bench.Option
	if *disrupt != "" {
		p, err := geometry.ParseVector(*disrupt)
		if err != nil {
			log.Fatal(err)
		}
		opts = append(opts, bench.WithDisruption(p, *every))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	results, err := bench.Run(ctx, cfg, *worlds, *ticks, *seed, logger, opts...)
	if err != nil {
		log.Fatal(err)
	}
	bench.Report(os.Stdout, results)
}
