package telemetry

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/tardigrade/colony"
)

func TestComputeNutritionStats(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantMean float64
	}{
		{"single", []float64{42}, 42},
		{"uniform", []float64{80, 80, 80, 80}, 80},
		{"spread", []float64{100, 10, 40, 70, 20, 90, 30, 60, 50, 80}, 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, p10, p50, p90 := ComputeNutritionStats(tt.values)
			if math.Abs(mean-tt.wantMean) > 1e-9 {
				t.Errorf("mean = %v, want %v", mean, tt.wantMean)
			}
			if !(p10 <= p50 && p50 <= p90) {
				t.Errorf("percentiles out of order: %v %v %v", p10, p50, p90)
			}
			lo, hi := minMax(tt.values)
			if p10 < lo || p90 > hi {
				t.Errorf("percentiles %v..%v escape data range %v..%v", p10, p90, lo, hi)
			}
		})
	}
}

func TestComputeNutritionStats_DoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeNutritionStats(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}

func TestComputeNutritionStatsEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeNutritionStats(nil)

	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestComputeAgeStats(t *testing.T) {
	if m, s := ComputeAgeStats(nil); m != 0 || s != 0 {
		t.Errorf("empty = %v, %v", m, s)
	}
	if m, s := ComputeAgeStats([]float64{7}); m != 7 || s != 0 {
		t.Errorf("single = %v, %v", m, s)
	}
	m, s := ComputeAgeStats([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if m != 5 {
		t.Errorf("mean = %v, want 5", m)
	}
	// sample deviation: sqrt(32/7)
	if math.Abs(s-math.Sqrt(32.0/7.0)) > 1e-9 {
		t.Errorf("std = %v", s)
	}
}

func TestCollector_FlushCountsAndResets(t *testing.T) {
	c := NewCollector(10, time.Minute)
	in := &colony.Individual{ID: 5, SpeciesID: 3}

	c.Record(NewDiscoveryEvent(1, 6, 9, true))
	c.Record(NewDiscoveryEvent(2, 6, 0, false))
	c.Record(NewMissEvent(3, "forest"))
	c.Record(NewBirthEvent(4, in, true))
	c.Record(NewDeathEvent(5, in, CauseAttack))
	c.Record(NewDeathEvent(5, in, CauseAttack))
	c.Record(NewDeathEvent(6, in, CauseRevival))
	c.Record(NewAttackEvent(7, true, 40, 50))

	if c.ShouldFlush(9) {
		t.Fatal("window should not be full at tick 9")
	}
	if !c.ShouldFlush(10) {
		t.Fatal("window should be full at tick 10")
	}

	snap := ColonySnapshot{Nutrition: []float64{50, 70}, Ages: []float64{1, 3}, Discovered: 4, ThreatLevel: 12}
	stats := c.Flush(10, snap)

	if stats.DiscoveriesNew != 1 || stats.DiscoveriesRepeat != 1 || stats.Misses != 1 {
		t.Errorf("discovery counts = %+v", stats)
	}
	if stats.Births != 1 || stats.Hybrids != 1 {
		t.Errorf("births = %d hybrids = %d", stats.Births, stats.Hybrids)
	}
	if stats.DeathsAttack != 2 || stats.DeathsRevival != 1 || stats.Deaths() != 3 {
		t.Errorf("deaths = %+v", stats)
	}
	if stats.AttacksRepelled != 1 {
		t.Errorf("attacks repelled = %d", stats.AttacksRepelled)
	}
	if stats.ColonySize != 2 || stats.NutritionMean != 60 || stats.AgeMean != 2 {
		t.Errorf("snapshot fields = %+v", stats)
	}
	if stats.SimMinutes != 10 {
		t.Errorf("sim minutes = %v, want 10", stats.SimMinutes)
	}

	next := c.Flush(20, ColonySnapshot{})
	if next.WindowStartTick != 10 || next.Births != 0 || next.Deaths() != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestSnapshotOf(t *testing.T) {
	st := colony.New(1)
	a, _ := st.Spawn(1, 40, 3, time.Unix(0, 0))
	st.Spawn(2, 60, 5, time.Unix(0, 0))
	a.Dormant = true
	st.Defense[0] = a.ID
	st.Discover(1)
	st.ThreatLevel = 7

	snap := SnapshotOf(st)
	if len(snap.Nutrition) != 2 || snap.Nutrition[0] != 40 || snap.Ages[1] != 5 {
		t.Errorf("samples = %+v", snap)
	}
	if snap.Dormant != 1 || snap.Defenders != 1 || snap.Discovered != 1 || snap.ThreatLevel != 7 {
		t.Errorf("counts = %+v", snap)
	}
}

func minMax(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
