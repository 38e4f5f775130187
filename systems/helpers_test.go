package systems

import (
	"testing"
	"time"

	"github.com/pthm-cable/tardigrade/colony"
	"github.com/pthm-cable/tardigrade/config"
	"github.com/pthm-cable/tardigrade/random"
	"github.com/pthm-cable/tardigrade/species"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// fixedEngine builds a catalog from constant 0.2 draws, so every stat is the
// tier minimum plus a fifth of its width: Common 14, Uncommon 30, Rare 50,
// Epic 69, Legendary 84. Cryptobiosis rates are all 0.876.
func fixedEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(species.Build(random.Constant(0.2)), config.Default())
}

// emptyState returns a state with no individuals and the attack timer 3h out.
func emptyState(t *testing.T) *colony.State {
	t.Helper()
	st := colony.New(1)
	st.NextAttackAt = t0.Add(3 * time.Hour)
	return st
}

func spawn(t *testing.T, st *colony.State, ids ...species.ID) []colony.IndividualID {
	t.Helper()
	out := make([]colony.IndividualID, 0, len(ids))
	for _, id := range ids {
		in, err := st.Spawn(id, 80, 0, t0)
		if err != nil {
			t.Fatalf("Spawn(%d): %v", id, err)
		}
		out = append(out, in.ID)
	}
	return out
}

func mustInvariants(t *testing.T, st *colony.State) {
	t.Helper()
	if err := st.CheckInvariants(); err != nil {
		t.Fatalf("invariants broken: %v", err)
	}
}
