package main

import (
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/tardigrade/config"
	"github.com/pthm-cable/tardigrade/game"
	"github.com/pthm-cable/tardigrade/species"
	"github.com/pthm-cable/tardigrade/telemetry"
)

// evalStart fixes the simulated clock so runs are reproducible per seed.
var evalStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// FitnessEvaluator runs headless sessions driven by a caretaker policy and
// scores how close colony survival lands to the target.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int
	targetTicks float64
	careEvery   int
	seeds       []int64
	baseConfig  *config.Config

	mu          sync.Mutex
	lastSummary runSummary
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks, targetTicks, careEvery int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	if careEvery < 1 {
		careEvery = 1
	}
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		targetTicks: float64(targetTicks),
		careEvery:   careEvery,
		seeds:       seeds,
		baseConfig:  baseCfg,
	}
}

// runResult holds the results from a single session.
type runResult struct {
	survivalTicks int // tick the colony was wiped, or maxTicks if it never was
	repelled      int
	succeeded     int
}

// runSummary aggregates one evaluation across seeds.
type runSummary struct {
	SurvivalMean float64
	SurvivalStd  float64
	RepelRate    float64
}

// LastSummary returns the aggregate of the most recent Evaluate call.
func (fe *FitnessEvaluator) LastSummary() runSummary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSummary
}

// Evaluate computes fitness for a parameter vector (lower = better): the
// squared relative miss of mean survival against the target, plus a spread
// term so configs that only hit the target on average lose to steady ones.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSession(x, s)
		}(i, seed)
	}
	wg.Wait()

	survival := make([]float64, len(results))
	var repelled, attacks int
	for i, r := range results {
		survival[i] = float64(r.survivalTicks)
		repelled += r.repelled
		attacks += r.repelled + r.succeeded
	}
	mean, std := stat.MeanStdDev(survival, nil)
	if len(survival) < 2 {
		std = 0
	}

	sum := runSummary{SurvivalMean: mean, SurvivalStd: std}
	if attacks > 0 {
		sum.RepelRate = float64(repelled) / float64(attacks)
	}
	fe.mu.Lock()
	fe.lastSummary = sum
	fe.mu.Unlock()

	miss := (mean - fe.targetTicks) / fe.targetTicks
	spread := std / fe.targetTicks
	return miss*miss + 0.25*spread*spread
}

// runSession plays one seed until the colony is wiped or maxTicks pass.
func (fe *FitnessEvaluator) runSession(x []float64, seed int64) runResult {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)

	result := runResult{survivalTicks: fe.maxTicks}
	g, err := game.New(&cfg, game.Options{
		Seed:   seed,
		Start:  evalStart,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		StatsCallback: func(w telemetry.WindowStats) {
			result.repelled += w.AttacksRepelled
			result.succeeded += w.AttacksSucceeded
		},
	})
	if err != nil {
		result.survivalTicks = 0
		return result
	}
	defer g.Close()

	areas := species.Habitats()
	for tick := 1; tick <= fe.maxTicks; tick++ {
		if tick%fe.careEvery == 0 {
			tend(g, areas[(tick/fe.careEvery)%len(areas)].ID)
		}
		g.Advance(1)
		if len(g.View().Colony) == 0 {
			result.survivalTicks = tick
			break
		}
	}
	return result
}

// tend is the caretaker policy: one exploration, every empty defense slot
// filled, and the hungriest active individual fed. Rejections are expected
// and ignored.
func tend(g *game.Game, area species.AreaID) {
	g.Explore(area)
	for slot := range len(g.View().Defense) {
		g.AssignDefender(slot)
	}

	v := g.View()
	hungriest, lowest := -1, math.Inf(1)
	for i, in := range v.Colony {
		if !in.Dormant && in.Nutrition < lowest {
			hungriest, lowest = i, in.Nutrition
		}
	}
	if hungriest >= 0 {
		g.Feed(v.Colony[hungriest].ID)
	}
}
