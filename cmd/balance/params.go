package main

import (
	"math"

	"github.com/pthm-cable/tardigrade/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Column name in the log
	Path    string  // Config path
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the attack and discovery parameters the tuner searches over.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Attack
			{Name: "power_min", Path: "attack.power_min", Min: 10, Max: 50, Default: 25},
			{Name: "power_spread", Path: "attack.power_max - attack.power_min", Min: 10, Max: 80, Default: 50},
			{Name: "slot_bonus", Path: "attack.slot_bonus", Min: 10, Max: 40, Default: 25},
			{Name: "interval_min", Path: "attack.interval_min", Min: 60, Max: 360, Default: 180},
			{Name: "interval_spread", Path: "attack.interval_spread", Min: 30, Max: 360, Default: 180},
			// Discovery
			{Name: "discovery_chance", Path: "discovery.chance", Min: 0.2, Max: 0.8, Default: 0.4},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Min(math.Max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes parameter values into cfg. Order must match Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)

	cfg.Attack.PowerMin = int(math.Round(c[0]))
	cfg.Attack.PowerMax = cfg.Attack.PowerMin + int(math.Round(c[1]))
	cfg.Attack.SlotBonus = int(math.Round(c[2]))
	cfg.Attack.IntervalMin = c[3]
	cfg.Attack.IntervalSpread = c[4]
	cfg.Discovery.Chance = c[5]
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		float64(cfg.Attack.PowerMin),
		float64(cfg.Attack.PowerMax - cfg.Attack.PowerMin),
		float64(cfg.Attack.SlotBonus),
		cfg.Attack.IntervalMin,
		cfg.Attack.IntervalSpread,
		cfg.Discovery.Chance,
	}
}
