// Package main tunes attack and discovery parameters with CMA-ES so a
// lightly tended colony survives for a target stretch of simulated time.
package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/tardigrade/config"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 7*24*60, "Maximum session length in ticks")
	targetTicks := flag.Int("target-ticks", 3*24*60, "Desired mean survival in ticks")
	careEvery := flag.Int("care-every", 120, "Ticks between caretaker visits")
	seeds := flag.Int("seeds", 8, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err := run(*configPath, *outputDir, *maxTicks, *targetTicks, *careEvery, *seeds, *maxEvals, *population); err != nil {
		slog.Error("balance search failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, outputDir string, maxTicks, targetTicks, careEvery, seeds, maxEvals, population int) error {
	switch {
	case outputDir == "":
		return errUsage("-output is required")
	case targetTicks <= 0 || targetTicks > maxTicks:
		return errUsage("-target-ticks must be in (0, max-ticks]")
	case seeds < 1:
		return errUsage("-seeds must be positive")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}
	if err := config.Init(configPath); err != nil {
		return err
	}
	baseCfg := config.Cfg()

	params := NewParamVector()
	evalSeeds := make([]int64, seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, maxTicks, targetTicks, careEvery, evalSeeds, baseCfg)

	rec, err := newRecorder(filepath.Join(outputDir, "balance_log.csv"), params, maxEvals)
	if err != nil {
		return err
	}
	defer rec.Close()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			values := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(values)
			rec.observe(values, fitness, evaluator.LastSummary())
			return fitness
		},
	}

	if population == 0 {
		population = 4 + 3*params.Dim()/2
	}
	slog.Info("starting balance search",
		"params", params.Dim(),
		"population", population,
		"max_evals", maxEvals,
		"seeds", seeds,
		"target_ticks", targetTicks,
		"max_ticks", maxTicks,
	)

	started := time.Now()
	_, err = optimize.Minimize(problem,
		params.Normalize(params.ExtractFromConfig(baseCfg)),
		&optimize.Settings{FuncEvaluations: maxEvals},
		&optimize.CmaEsChol{InitStepSize: 0.3, Population: population},
	)
	if err != nil {
		slog.Warn("optimization ended", "error", err)
	}
	if rec.best == nil {
		return errors.New("no evaluation completed")
	}

	attrs := []any{"evals", rec.evals, "fitness", rec.bestFitness, "elapsed", time.Since(started).Round(time.Second)}
	for i, spec := range params.Specs {
		attrs = append(attrs, spec.Name, rec.best[i])
	}
	slog.Info("balance search complete", attrs...)

	bestCfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	params.ApplyToConfig(bestCfg, rec.best)
	out := filepath.Join(outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(out); err != nil {
		return err
	}
	slog.Info("best config saved", "path", out)
	return nil
}

type errUsage string

func (e errUsage) Error() string { return string(e) }
