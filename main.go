package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pthm-cable/tardigrade/config"
	"github.com/pthm-cable/tardigrade/console"
	"github.com/pthm-cable/tardigrade/game"
	"github.com/pthm-cable/tardigrade/locale"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config or time-based)")
	ticks := flag.Int("ticks", 1440, "Ticks to simulate in headless mode")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	interactive := flag.Bool("interactive", false, "Read commands from stdin while the colony ticks in real time")
	localeName := flag.String("locale", "", "Display language, e.g. en or ja (empty = config)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		slog.Error("invalid log level", "level", *logLevel, "error", err)
		os.Exit(1)
	}

	// JSON logs go to stdout headless; the console owns stdout when interactive.
	var logOut io.Writer = os.Stdout
	if *interactive {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Session.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	dir := *outputDir
	if dir == "" {
		dir = cfg.Session.OutputDir
	}

	g, err := game.New(cfg, game.Options{
		Seed:      rngSeed,
		OutputDir: dir,
		LogStats:  *logStats,
		Logger:    logger,
	})
	if err != nil {
		slog.Error("failed to start session", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := g.Close(); err != nil {
			slog.Error("failed to close session", "error", err)
		}
	}()

	if !*interactive {
		slog.Info("starting headless run", "seed", rngSeed, "ticks", *ticks, "sim_per_tick", cfg.Session.SimPerTick)
		attacks := g.Advance(*ticks)
		slog.Info("headless run finished", "attacks", len(attacks), "colony", len(g.View().Colony))
		return
	}

	if err := locale.Register(); err != nil {
		slog.Error("failed to load locales", "error", err)
		os.Exit(1)
	}
	pref := *localeName
	if pref == "" {
		pref = cfg.Session.Locale
	}
	namer := locale.NewNamer(locale.Match(pref))
	slog.Info("starting interactive session", "seed", rngSeed, "locale", namer.Tag().String())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- g.Run(ctx, nil) }()

	con := console.New(g, namer, os.Stdout)
	if err := con.Run(ctx, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("console stopped", "error", err)
	}
	cancel()
	<-done
}
