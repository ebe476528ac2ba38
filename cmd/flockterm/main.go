package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/term"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/control"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	configFile := flag.String("config", "", "world configuration (.json, .yaml or .yml); built-in defaults when empty")
	schemaFile := flag.String("schema", "", "JSON schema used to validate the configuration; built-in when empty")
	logFile := flag.String("log", "", "write logs to this file (the terminal is busy drawing)")
	debug := flag.Bool("debug", false, "log every tick")
	flag.Parse()

	if err := run(*configFile, *schemaFile, *logFile, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "flockterm: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, schemaFile, logFile string, debug bool) error {
	var out io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	level := golog.InfoLevel
	if debug {
		level = golog.DebugLevel
	}
	logger := golog.New(level, out)

	cfg := simulation.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(configFile, schemaFile); err != nil {
			return err
		}
	}
	ctrl, err := control.New(cfg, cfg.Bounds(), logger)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := term.New(screen, ctrl, cfg.TickInterval(), logger).Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
