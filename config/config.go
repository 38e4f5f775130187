// Package config provides configuration loading and access for the colony engine.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine configuration parameters.
type Config struct {
	Session     SessionConfig     `yaml:"session"`
	Colony      ColonyConfig      `yaml:"colony"`
	Environment EnvironmentConfig `yaml:"environment"`
	Discovery   DiscoveryConfig   `yaml:"discovery"`
	Breeding    BreedingConfig    `yaml:"breeding"`
	Nutrition   NutritionConfig   `yaml:"nutrition"`
	Experiment  ExperimentConfig  `yaml:"experiment"`
	Attack      AttackConfig      `yaml:"attack"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Milestones  MilestonesConfig  `yaml:"milestones"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// SessionConfig holds per-process settings. Every field can be overridden from the environment.
type SessionConfig struct {
	Seed         int64         `yaml:"seed"          env:"TARDIGRADE_SEED"`          // 0 = time-based
	TickInterval time.Duration `yaml:"tick_interval" env:"TARDIGRADE_TICK_INTERVAL"` // Wall time between ticks
	SimPerTick   time.Duration `yaml:"sim_per_tick"  env:"TARDIGRADE_SIM_PER_TICK"`  // Simulated time per tick in headless runs
	OutputDir    string        `yaml:"output_dir"    env:"TARDIGRADE_OUTPUT_DIR"`
	Locale       string        `yaml:"locale"        env:"TARDIGRADE_LOCALE"`
}

// ColonyConfig holds the starting roster.
type ColonyConfig struct {
	InitialSpecies      []int `yaml:"initial_species"`
	InitialNutritionMin int   `yaml:"initial_nutrition_min"`
	InitialNutritionMax int   `yaml:"initial_nutrition_max"` // exclusive
	InitialAgeMax       int   `yaml:"initial_age_max"`       // exclusive
}

// EnvironmentConfig holds the habitat starting point and drift.
type EnvironmentConfig struct {
	Humidity       float64 `yaml:"humidity"`
	Temperature    float64 `yaml:"temperature"`
	Sunlight       string  `yaml:"sunlight"`        // low, middle, high
	HumidityDrift  float64 `yaml:"humidity_drift"`  // Full width of the per-tick step
	TempDrift      float64 `yaml:"temp_drift"`      // Full width of the per-tick step
	HumidityMin    float64 `yaml:"humidity_min"`
	HumidityMax    float64 `yaml:"humidity_max"`
	TemperatureMin float64 `yaml:"temperature_min"`
	TemperatureMax float64 `yaml:"temperature_max"`
}

// DiscoveryConfig holds exploration odds.
type DiscoveryConfig struct {
	Chance         float64 `yaml:"chance"`          // Probability that an exploration finds anything
	OverrideChance float64 `yaml:"override_chance"` // Probability the find is drawn from the whole catalog
	NutritionMin   int     `yaml:"nutrition_min"`
	NutritionMax   int     `yaml:"nutrition_max"` // exclusive
}

// BreedingConfig holds breeding odds.
type BreedingConfig struct {
	SameSpeciesChance  float64 `yaml:"same_species_chance"`
	SameRarityChance   float64 `yaml:"same_rarity_chance"`
	CrossChance        float64 `yaml:"cross_chance"`
	HybridChance       float64 `yaml:"hybrid_chance"`
	OffspringNutrition int     `yaml:"offspring_nutrition"`
}

// NutritionConfig holds decay and feeding.
type NutritionConfig struct {
	DecayPerTick float64 `yaml:"decay_per_tick"`
	FeedAmount   float64 `yaml:"feed_amount"`
	Max          float64 `yaml:"max"`
}

// ExperimentConfig holds resistance lab parameters.
type ExperimentConfig struct {
	ThresholdMax int `yaml:"threshold_max"` // Thresholds are drawn in [1, ThresholdMax]
}

// AttackConfig holds attack cycle parameters.
type AttackConfig struct {
	InitialThreat  float64 `yaml:"initial_threat"`
	ThreatPerTick  float64 `yaml:"threat_per_tick"`
	ThreatMax      float64 `yaml:"threat_max"`
	FirstAttackMin float64 `yaml:"first_attack_min"` // Minutes until the first attack
	IntervalMin    float64 `yaml:"interval_min"`     // Minutes, lower bound of the re-arm delay
	IntervalSpread float64 `yaml:"interval_spread"`  // Minutes added uniformly on top of IntervalMin
	PowerMin       int     `yaml:"power_min"`
	PowerMax       int     `yaml:"power_max"` // exclusive
	SlotBonus      int     `yaml:"slot_bonus"`
	MaxCasualties  int     `yaml:"max_casualties"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindowTicks int  `yaml:"stats_window_ticks"`
	LogStats         bool `yaml:"log_stats"`
}

// MilestonesConfig holds milestone detection thresholds.
type MilestonesConfig struct {
	DefenseStreak int `yaml:"defense_streak"` // Consecutive repelled attacks
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FirstAttackDelay time.Duration
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults without file or environment overlays.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	cfg.computeDerived()
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults,
// then applies environment overrides.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"discovery.chance", c.Discovery.Chance},
		{"discovery.override_chance", c.Discovery.OverrideChance},
		{"breeding.same_species_chance", c.Breeding.SameSpeciesChance},
		{"breeding.same_rarity_chance", c.Breeding.SameRarityChance},
		{"breeding.cross_chance", c.Breeding.CrossChance},
		{"breeding.hybrid_chance", c.Breeding.HybridChance},
	} {
		if p.v < 0 || p.v > 1 {
			return fmt.Errorf("config: %s must be in [0, 1], got %v", p.name, p.v)
		}
	}
	switch c.Environment.Sunlight {
	case "low", "middle", "high":
	default:
		return fmt.Errorf("config: environment.sunlight must be low, middle or high, got %q", c.Environment.Sunlight)
	}
	if c.Attack.PowerMax <= c.Attack.PowerMin {
		return fmt.Errorf("config: attack.power_max must exceed power_min")
	}
	if c.Experiment.ThresholdMax < 1 {
		return fmt.Errorf("config: experiment.threshold_max must be positive")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FirstAttackDelay = time.Duration(c.Attack.FirstAttackMin * float64(time.Minute))

	if c.Telemetry.StatsWindowTicks < 1 {
		c.Telemetry.StatsWindowTicks = 1
	}
	if c.Session.SimPerTick <= 0 {
		c.Session.SimPerTick = time.Minute
	}
	if c.Session.TickInterval <= 0 {
		c.Session.TickInterval = time.Minute
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
