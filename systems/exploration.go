package systems

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/tardigrade/colony"
	"github.com/pthm-cable/tardigrade/random"
	"github.com/pthm-cable/tardigrade/species"
)

// DiscoveryKind discriminates exploration outcomes.
type DiscoveryKind uint8

const (
	NothingFound DiscoveryKind = iota
	NewSpecies
	Rediscovered
)

// String returns the outcome's stable key.
func (k DiscoveryKind) String() string {
	switch k {
	case NothingFound:
		return "nothing_found"
	case NewSpecies:
		return "new_species"
	case Rediscovered:
		return "rediscovered"
	}
	return "unknown"
}

// DiscoveryResult reports one exploration.
type DiscoveryResult struct {
	Kind      DiscoveryKind
	Area      species.AreaID
	SpeciesID species.ID

	// Overridden is set when the find came from the whole catalog instead of the habitat pool.
	Overridden bool

	// Added is false when the colony was full; the species is still recorded as discovered.
	Added      bool
	Individual colony.IndividualID
}

// Found reports whether anything was discovered.
func (r DiscoveryResult) Found() bool {
	return r.Kind != NothingFound
}

// IsNewSpecies reports whether the species was discovered for the first time.
func (r DiscoveryResult) IsNewSpecies() bool {
	return r.Kind == NewSpecies
}

// LogValue implements slog.LogValuer.
func (r DiscoveryResult) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", r.Kind.String()),
		slog.String("area", string(r.Area)),
		slog.Int("species", int(r.SpeciesID)),
		slog.Bool("overridden", r.Overridden),
		slog.Bool("added", r.Added),
	)
}

// Explore searches a habitat.
//
// Draw order: discovery roll (found iff r < chance), habitat pool pick,
// override roll (override iff r >= 1-override chance), catalog pick when
// overridden, then nutrition when the colony has room.
func (e *Engine) Explore(st *colony.State, area species.AreaID, src random.Source, now time.Time) (DiscoveryResult, error) {
	h, ok := species.LookupHabitat(area)
	if !ok {
		return DiscoveryResult{}, fmt.Errorf("explore %q: %w", area, colony.ErrNotFound)
	}
	cfg := e.cfg.Discovery
	res := DiscoveryResult{Kind: NothingFound, Area: area}

	if !random.Chance(src, cfg.Chance) {
		return res, nil
	}

	id := random.Pick(src, h.Species)
	if src.Float64() >= 1-cfg.OverrideChance {
		id = random.Pick(src, e.catalog.IDs())
		res.Overridden = true
	}
	res.SpeciesID = id

	if st.Discover(id) {
		res.Kind = NewSpecies
	} else {
		res.Kind = Rediscovered
	}

	if st.HasRoom() {
		nutrition := random.IntRange(src, cfg.NutritionMin, cfg.NutritionMax)
		in, err := st.Spawn(id, float64(nutrition), 0, now)
		if err != nil {
			return res, err
		}
		res.Added = true
		res.Individual = in.ID
	}
	return res, nil
}
