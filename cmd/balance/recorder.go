package main

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// recorder keeps the best evaluation seen and appends every evaluation to
// balance_log.csv.
type recorder struct {
	params   *ParamVector
	maxEvals int
	file     *os.File
	w        *csv.Writer
	started  time.Time

	evals       int
	bestFitness float64
	best        []float64
}

func newRecorder(path string, params *ParamVector, maxEvals int) (*recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating balance log: %w", err)
	}
	r := &recorder{
		params:      params,
		maxEvals:    maxEvals,
		file:        f,
		w:           csv.NewWriter(f),
		started:     time.Now(),
		bestFitness: 1e9,
	}
	header := []string{"eval", "fitness", "survival_mean", "survival_std", "repel_rate"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	if err := r.w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing balance log header: %w", err)
	}
	return r, nil
}

// observe records one evaluation of the clamped raw parameters.
func (r *recorder) observe(values []float64, fitness float64, sum runSummary) {
	r.evals++
	if fitness < r.bestFitness {
		r.bestFitness = fitness
		r.best = values
	}

	row := []string{
		strconv.Itoa(r.evals),
		strconv.FormatFloat(fitness, 'f', 6, 64),
		strconv.FormatFloat(sum.SurvivalMean, 'f', 1, 64),
		strconv.FormatFloat(sum.SurvivalStd, 'f', 1, 64),
		strconv.FormatFloat(sum.RepelRate, 'f', 3, 64),
	}
	for _, v := range values {
		row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
	}
	r.w.Write(row)
	r.w.Flush()

	elapsed := time.Since(r.started)
	eta := time.Duration(r.maxEvals-r.evals) * (elapsed / time.Duration(r.evals))
	slog.Info("evaluation",
		"eval", r.evals,
		"survival_mean", sum.SurvivalMean,
		"survival_std", sum.SurvivalStd,
		"repel_rate", sum.RepelRate,
		"best", r.bestFitness,
		"eta", eta.Round(time.Second),
	)
}

func (r *recorder) Close() error {
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}
