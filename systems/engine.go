// Package systems implements the randomized outcome engine. Every operation
// takes the state explicitly and draws from an injected random source.
package systems

import (
	"fmt"
	"time"

	"github.com/pthm-cable/tardigrade/colony"
	"github.com/pthm-cable/tardigrade/config"
	"github.com/pthm-cable/tardigrade/random"
	"github.com/pthm-cable/tardigrade/species"
)

// Engine binds the immutable catalog and rules to the outcome functions.
// It holds no mutable state.
type Engine struct {
	catalog *species.Catalog
	cfg     *config.Config
}

// NewEngine creates an engine over catalog using cfg for every odds and range.
func NewEngine(catalog *species.Catalog, cfg *config.Config) *Engine {
	return &Engine{catalog: catalog, cfg: cfg}
}

// Catalog returns the species catalog.
func (e *Engine) Catalog() *species.Catalog {
	return e.catalog
}

// Config returns the rules the engine runs with.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// NewState creates a session state with the configured climate, attack timer
// and starting roster. Starting individuals draw nutrition then age, in roster order.
func (e *Engine) NewState(now time.Time, src random.Source, idSeed int64) (*colony.State, error) {
	cfg := e.cfg
	st := colony.New(idSeed)

	sun, ok := colony.ParseSunlight(cfg.Environment.Sunlight)
	if !ok {
		return nil, fmt.Errorf("sunlight %q: %w", cfg.Environment.Sunlight, colony.ErrInvalidSelection)
	}
	st.Environment = colony.Environment{
		Humidity:    cfg.Environment.Humidity,
		Temperature: cfg.Environment.Temperature,
		Sunlight:    sun,
	}
	st.ThreatLevel = clampFloat(cfg.Attack.InitialThreat, 0, cfg.Attack.ThreatMax)
	st.NextAttackAt = now.Add(cfg.Derived.FirstAttackDelay)

	for _, raw := range cfg.Colony.InitialSpecies {
		id := species.ID(raw)
		if _, ok := e.catalog.Get(id); !ok {
			return nil, fmt.Errorf("initial species %d: %w", id, colony.ErrNotFound)
		}
		st.Discover(id)
		if !st.HasRoom() {
			continue
		}
		nutrition := random.IntRange(src, cfg.Colony.InitialNutritionMin, cfg.Colony.InitialNutritionMax)
		age := random.IntRange(src, 0, cfg.Colony.InitialAgeMax)
		if _, err := st.Spawn(id, float64(nutrition), age, now); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// definition resolves the species of an individual.
func (e *Engine) definition(in *colony.Individual) (*species.Definition, error) {
	def, ok := e.catalog.Get(in.SpeciesID)
	if !ok {
		return nil, fmt.Errorf("species %d of individual %d: %w", in.SpeciesID, in.ID, colony.ErrNotFound)
	}
	return def, nil
}
