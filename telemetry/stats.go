package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/tardigrade/colony"
)

// WindowStats holds aggregated statistics for a tick window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimMinutes      float64 `csv:"sim_minutes"`

	// Colony state at window end
	ColonySize  int     `csv:"colony"`
	Dormant     int     `csv:"dormant"`
	Defenders   int     `csv:"defenders"`
	Discovered  int     `csv:"discovered"`
	ThreatLevel float64 `csv:"threat"`
	Humidity    float64 `csv:"humidity"`
	Temperature float64 `csv:"temperature"`

	// Events during window
	DiscoveriesNew    int `csv:"discoveries_new"`
	DiscoveriesRepeat int `csv:"discoveries_repeat"`
	Misses            int `csv:"misses"`
	Births            int `csv:"births"`
	Hybrids           int `csv:"hybrids"`
	BreedFailures     int `csv:"breed_failures"`
	Revivals          int `csv:"revivals"`
	ExperimentsPassed int `csv:"experiments_passed"`
	AttacksRepelled   int `csv:"attacks_repelled"`
	AttacksSucceeded  int `csv:"attacks_succeeded"`

	// Deaths by cause
	DeathsReleased   int `csv:"deaths_released"`
	DeathsRevival    int `csv:"deaths_revival"`
	DeathsExperiment int `csv:"deaths_experiment"`
	DeathsAttack     int `csv:"deaths_attack"`
	DeathsBreeding   int `csv:"deaths_breeding"`

	// Nutrition distribution (sampled at window end)
	NutritionMean float64 `csv:"nutrition_mean"`
	NutritionP10  float64 `csv:"nutrition_p10"`
	NutritionP50  float64 `csv:"nutrition_p50"`
	NutritionP90  float64 `csv:"nutrition_p90"`

	AgeMean float64 `csv:"age_mean"`
	AgeStd  float64 `csv:"age_std"`
}

// Deaths returns the total deaths across every cause.
func (s WindowStats) Deaths() int {
	return s.DeathsReleased + s.DeathsRevival + s.DeathsExperiment + s.DeathsAttack + s.DeathsBreeding
}

// ColonySnapshot is the colony state sampled at a window boundary.
type ColonySnapshot struct {
	Nutrition   []float64 // one entry per individual, roster order
	Ages        []float64
	Dormant     int
	Defenders   int
	Discovered  int
	ThreatLevel float64
	Humidity    float64
	Temperature float64
}

// SnapshotOf samples st.
func SnapshotOf(st *colony.State) ColonySnapshot {
	snap := ColonySnapshot{
		Nutrition:   make([]float64, 0, st.Len()),
		Ages:        make([]float64, 0, st.Len()),
		Dormant:     st.DormantCount(),
		Defenders:   st.DefenderCount(),
		Discovered:  len(st.Discovered),
		ThreatLevel: st.ThreatLevel,
		Humidity:    st.Environment.Humidity,
		Temperature: st.Environment.Temperature,
	}
	for _, in := range st.Colony {
		snap.Nutrition = append(snap.Nutrition, in.Nutrition)
		snap.Ages = append(snap.Ages, float64(in.Age))
	}
	return snap
}

// ComputeNutritionStats calculates mean and percentiles from nutrition values.
func ComputeNutritionStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	// Quantile requires sorted input
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.LinInterp, sorted, nil)
	p50 = stat.Quantile(0.50, stat.LinInterp, sorted, nil)
	p90 = stat.Quantile(0.90, stat.LinInterp, sorted, nil)
	return mean, p10, p50, p90
}

// ComputeAgeStats calculates mean and sample standard deviation of ages.
// The deviation is zero with fewer than two samples.
func ComputeAgeStats(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	mean, std = stat.MeanStdDev(values, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return mean, std
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_minutes", s.SimMinutes),
		slog.Int("colony", s.ColonySize),
		slog.Int("dormant", s.Dormant),
		slog.Int("defenders", s.Defenders),
		slog.Int("discovered", s.Discovered),
		slog.Float64("threat", s.ThreatLevel),
		slog.Float64("humidity", s.Humidity),
		slog.Float64("temperature", s.Temperature),
		slog.Int("discoveries_new", s.DiscoveriesNew),
		slog.Int("discoveries_repeat", s.DiscoveriesRepeat),
		slog.Int("misses", s.Misses),
		slog.Int("births", s.Births),
		slog.Int("hybrids", s.Hybrids),
		slog.Int("breed_failures", s.BreedFailures),
		slog.Int("revivals", s.Revivals),
		slog.Int("experiments_passed", s.ExperimentsPassed),
		slog.Int("attacks_repelled", s.AttacksRepelled),
		slog.Int("attacks_succeeded", s.AttacksSucceeded),
		slog.Int("deaths", s.Deaths()),
		slog.Float64("nutrition_mean", s.NutritionMean),
		slog.Float64("nutrition_p10", s.NutritionP10),
		slog.Float64("nutrition_p50", s.NutritionP50),
		slog.Float64("nutrition_p90", s.NutritionP90),
		slog.Float64("age_mean", s.AgeMean),
		slog.Float64("age_std", s.AgeStd),
	)
}

// LogStats logs the window stats through logger.
func (s WindowStats) LogStats(logger *slog.Logger) {
	logger.Info("stats", "window", s)
}
