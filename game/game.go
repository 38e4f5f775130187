// Package game owns one play session: the state, the catalog, the random
// source, the simulated clock and the telemetry sinks. Every inbound call is
// serialized through one mutex so a scheduled tick never interleaves with a
// player action.
package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/pthm-cable/tardigrade/colony"
	"github.com/pthm-cable/tardigrade/config"
	"github.com/pthm-cable/tardigrade/random"
	"github.com/pthm-cable/tardigrade/species"
	"github.com/pthm-cable/tardigrade/systems"
	"github.com/pthm-cable/tardigrade/telemetry"
)

// Game is a running session.
type Game struct {
	mu sync.Mutex

	cfg    *config.Config
	engine *systems.Engine
	state  *colony.State
	rng    *rand.Rand
	now    time.Time
	logger *slog.Logger

	// Telemetry
	collector     *telemetry.Collector
	milestones    *telemetry.MilestoneDetector
	lifetimes     *telemetry.LifetimeTracker
	output        *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	logStats      bool
}

// New creates a session from cfg. The catalog is generated from the seeded
// source before the starting roster, so equal seeds give equal sessions.
func New(cfg *config.Config, opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	start := opts.Start
	if start.IsZero() {
		start = time.Now()
	}

	rng := random.New(opts.Seed)
	engine := systems.NewEngine(species.Build(rng), cfg)
	state, err := engine.NewState(start, rng, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		cfg:           cfg,
		engine:        engine,
		state:         state,
		rng:           rng,
		now:           start,
		logger:        logger,
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindowTicks, cfg.Session.SimPerTick),
		milestones:    telemetry.NewMilestoneDetector(engine.Catalog(), cfg.Milestones.DefenseStreak),
		lifetimes:     telemetry.NewLifetimeTracker(),
		output:        output,
		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats || cfg.Telemetry.LogStats,
	}

	g.milestones.Seed(state.DiscoveredIDs(), state.Len())
	for _, in := range state.Colony {
		g.lifetimes.Register(in, telemetry.OriginInitial, 0)
	}

	logger.Info("session started",
		"seed", opts.Seed,
		"colony", state.Len(),
		"discovered", len(state.Discovered),
		"next_attack_at", state.NextAttackAt,
	)
	return g, nil
}

// Catalog returns the session's species catalog.
func (g *Game) Catalog() *species.Catalog {
	return g.engine.Catalog()
}

// Now returns the simulated clock.
func (g *Game) Now() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.now
}

// Close writes the records of individuals still alive and closes output files.
func (g *Game) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, r := range g.lifetimes.Living() {
		r.DeathTick = g.state.Tick
		if err := g.output.WriteLifetime(r); err != nil {
			g.logger.Error("failed to write lifetime", "error", err)
		}
	}
	return g.output.Close()
}
