package systems

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/tardigrade/colony"
	"github.com/pthm-cable/tardigrade/random"
	"github.com/pthm-cable/tardigrade/species"
)

// BreedKind discriminates breeding outcomes.
type BreedKind uint8

const (
	BreedFailed BreedKind = iota
	BreedSucceeded
)

// String returns the outcome's stable key.
func (k BreedKind) String() string {
	if k == BreedSucceeded {
		return "succeeded"
	}
	return "failed"
}

// BreedResult reports one breeding attempt. Both parents are consumed either way.
type BreedResult struct {
	Kind     BreedKind
	ParentA  colony.IndividualID
	ParentB  colony.IndividualID
	Chance   float64
	Hybrid   bool
	Species  species.ID
	Child    colony.IndividualID
	NewEntry bool // offspring species was not discovered before
}

// LogValue implements slog.LogValuer.
func (r BreedResult) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", r.Kind.String()),
		slog.Float64("chance", r.Chance),
		slog.Bool("hybrid", r.Hybrid),
		slog.Int("species", int(r.Species)),
		slog.Bool("new_entry", r.NewEntry),
	)
}

// SelectParent toggles id into the pending parent pair.
// The first pick fills slot 0, a distinct second pick fills slot 1, and any
// further pick restarts the pair with id.
func (e *Engine) SelectParent(st *colony.State, id colony.IndividualID) ([2]colony.IndividualID, error) {
	if _, err := st.Get(id); err != nil {
		return st.Parents, fmt.Errorf("select parent: %w", err)
	}
	switch {
	case st.Parents[0] == 0 && st.Parents[1] != id:
		st.Parents[0] = id
	case st.Parents[0] != 0 && st.Parents[1] == 0 && st.Parents[0] != id:
		st.Parents[1] = id
	default:
		st.Parents = [2]colony.IndividualID{id, 0}
	}
	return st.Parents, nil
}

// BreedChance returns the success probability for two species.
func (e *Engine) BreedChance(a, b *species.Definition) float64 {
	cfg := e.cfg.Breeding
	switch {
	case a.ID == b.ID:
		return cfg.SameSpeciesChance
	case a.Rarity == b.Rarity:
		return cfg.SameRarityChance
	default:
		return cfg.CrossChance
	}
}

// BreedSelected breeds the pending parent pair.
func (e *Engine) BreedSelected(st *colony.State, src random.Source, now time.Time) (BreedResult, error) {
	return e.PerformBreeding(st, st.Parents[0], st.Parents[1], src, now)
}

// PerformBreeding breeds a and b.
//
// Errors leave the state untouched. Otherwise both parents leave the colony
// whatever the roll; on success one offspring joins it.
// Draw order: success roll, then (different species only) hybrid roll and
// either a hybrid pool pick or a parent pick.
func (e *Engine) PerformBreeding(st *colony.State, a, b colony.IndividualID, src random.Source, now time.Time) (BreedResult, error) {
	if a == 0 || b == 0 || a == b {
		return BreedResult{}, fmt.Errorf("breed %d with %d: two distinct parents required: %w", a, b, colony.ErrInvalidSelection)
	}
	pa, err := st.Get(a)
	if err != nil {
		return BreedResult{}, fmt.Errorf("breed: %w", err)
	}
	pb, err := st.Get(b)
	if err != nil {
		return BreedResult{}, fmt.Errorf("breed: %w", err)
	}
	if !st.HasRoom() {
		return BreedResult{}, fmt.Errorf("breed: no room for offspring: %w", colony.ErrCapacityExceeded)
	}
	da, err := e.definition(pa)
	if err != nil {
		return BreedResult{}, err
	}
	db, err := e.definition(pb)
	if err != nil {
		return BreedResult{}, err
	}

	res := BreedResult{Kind: BreedFailed, ParentA: a, ParentB: b, Chance: e.BreedChance(da, db)}
	success := random.Chance(src, res.Chance)
	if success {
		res.Kind = BreedSucceeded
		res.Species, res.Hybrid = e.offspringSpecies(da, db, src)
	}

	// Parents are consumed regardless of the outcome.
	st.RemoveAt(indexOf(st, a))
	st.RemoveAt(indexOf(st, b))
	st.Parents = [2]colony.IndividualID{}

	if !success {
		return res, nil
	}

	child, err := st.Spawn(res.Species, float64(e.cfg.Breeding.OffspringNutrition), 0, now)
	if err != nil {
		return res, err
	}
	res.Child = child.ID
	res.NewEntry = st.Discover(res.Species)
	return res, nil
}

func (e *Engine) offspringSpecies(a, b *species.Definition, src random.Source) (species.ID, bool) {
	if a.ID == b.ID {
		return a.ID, false
	}
	if random.Chance(src, e.cfg.Breeding.HybridChance) {
		return random.Pick(src, e.catalog.HybridPool()), true
	}
	if random.Chance(src, 0.5) {
		return a.ID, false
	}
	return b.ID, false
}

func indexOf(st *colony.State, id colony.IndividualID) int {
	_, i := st.Find(id)
	return i
}
