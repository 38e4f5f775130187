package main

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/tardigrade/config"
)

func TestParamVector_DefaultsMatchConfig(t *testing.T) {
	pv := NewParamVector()
	got := pv.ExtractFromConfig(config.Default())
	want := pv.DefaultVector()
	for i, spec := range pv.Specs {
		if got[i] != want[i] {
			t.Errorf("%s = %v, want %v", spec.Name, got[i], want[i])
		}
	}
}

func TestParamVector_NormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("param %d: %v -> %v", i, raw[i], back[i])
		}
	}
}

func TestParamVector_ApplyClampsAndKeepsPowerOrdered(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()
	pv.ApplyToConfig(cfg, []float64{-5, 0, 1000, 60, 30, 2})

	if cfg.Attack.PowerMin != 10 || cfg.Attack.PowerMax != 20 {
		t.Errorf("power = [%d, %d), want [10, 20)", cfg.Attack.PowerMin, cfg.Attack.PowerMax)
	}
	if cfg.Attack.SlotBonus != 40 {
		t.Errorf("slot bonus = %d, want 40", cfg.Attack.SlotBonus)
	}
	if cfg.Discovery.Chance != 0.8 {
		t.Errorf("discovery chance = %v, want 0.8", cfg.Discovery.Chance)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestEvaluate_ShortRunsAreDeterministic(t *testing.T) {
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 600, 300, 60, []int64{1, 2}, config.Default())

	a := fe.Evaluate(pv.DefaultVector())
	sa := fe.LastSummary()
	b := fe.Evaluate(pv.DefaultVector())
	if a != b || sa != fe.LastSummary() {
		t.Fatalf("same params gave %v and %v", a, b)
	}
	if sa.SurvivalMean <= 0 || sa.SurvivalMean > 600 {
		t.Errorf("survival mean = %v, want in (0, 600]", sa.SurvivalMean)
	}
}

func TestRecorder_KeepsBestAndLogsEveryEval(t *testing.T) {
	pv := NewParamVector()
	path := filepath.Join(t.TempDir(), "balance_log.csv")
	rec, err := newRecorder(path, pv, 3)
	if err != nil {
		t.Fatalf("newRecorder: %v", err)
	}

	worse := pv.DefaultVector()
	better := pv.Clamp(make([]float64, pv.Dim()))
	rec.observe(worse, 0.5, runSummary{SurvivalMean: 100})
	rec.observe(better, 0.1, runSummary{SurvivalMean: 200})
	rec.observe(worse, 0.3, runSummary{SurvivalMean: 150})
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if rec.evals != 3 || rec.bestFitness != 0.1 || rec.best[0] != better[0] {
		t.Fatalf("best = %v at %v after %d evals", rec.best, rec.bestFitness, rec.evals)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(rows) != 4 || len(rows[0]) != 5+pv.Dim() {
		t.Fatalf("log has %d rows of %d columns", len(rows), len(rows[0]))
	}
}
