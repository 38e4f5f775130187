package systems

import (
	"errors"
	"testing"

	"github.com/pthm-cable/tardigrade/colony"
	"github.com/pthm-cable/tardigrade/random"
	"github.com/pthm-cable/tardigrade/species"
)

// ---------- SelectParent ----------

func TestSelectParent_Sequence(t *testing.T) {
	e := fixedEngine(t)
	st := emptyState(t)
	ids := spawn(t, st, 1, 2, 3)

	steps := []struct {
		pick colony.IndividualID
		want [2]colony.IndividualID
	}{
		{ids[0], [2]colony.IndividualID{ids[0], 0}},
		{ids[0], [2]colony.IndividualID{ids[0], 0}},
		{ids[1], [2]colony.IndividualID{ids[0], ids[1]}},
		{ids[2], [2]colony.IndividualID{ids[2], 0}},
	}
	for i, s := range steps {
		got, err := e.SelectParent(st, s.pick)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if got != s.want {
			t.Fatalf("step %d: parents = %v, want %v", i, got, s.want)
		}
	}
}

func TestSelectParent_Unknown(t *testing.T) {
	e := fixedEngine(t)
	st := emptyState(t)
	if _, err := e.SelectParent(st, 12345); !errors.Is(err, colony.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// ---------- PerformBreeding ----------

func TestPerformBreeding_SameSpecies(t *testing.T) {
	e := fixedEngine(t)
	st := emptyState(t)
	ids := spawn(t, st, 6, 6, 1)

	res, err := e.PerformBreeding(st, ids[0], ids[1], random.Constant(0.5), t0)
	if err != nil {
		t.Fatalf("PerformBreeding: %v", err)
	}
	if res.Kind != BreedSucceeded || res.Chance != 0.95 {
		t.Fatalf("result = %+v", res)
	}
	if res.Species != 6 || res.Hybrid {
		t.Fatalf("offspring species = %d (hybrid %v), want 6", res.Species, res.Hybrid)
	}
	for _, p := range ids[:2] {
		if in, _ := st.Find(p); in != nil {
			t.Fatalf("parent %d still in colony", p)
		}
	}
	child, _ := st.Find(res.Child)
	if child == nil || child.Nutrition != 100 || child.Age != 0 || child.Dormant {
		t.Fatalf("child = %+v", child)
	}
	if st.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", st.Len())
	}
	mustInvariants(t, st)
}

func TestPerformBreeding_FailureConsumesParents(t *testing.T) {
	e := fixedEngine(t)
	st := emptyState(t)
	ids := spawn(t, st, 6, 6)
	st.Parents = [2]colony.IndividualID{ids[0], ids[1]}

	res, err := e.PerformBreeding(st, ids[0], ids[1], random.Constant(0.99), t0)
	if err != nil {
		t.Fatalf("PerformBreeding: %v", err)
	}
	if res.Kind != BreedFailed || res.Child != 0 {
		t.Fatalf("result = %+v", res)
	}
	if st.Len() != 0 {
		t.Fatalf("parents not consumed, Len() = %d", st.Len())
	}
	if st.Parents != [2]colony.IndividualID{} {
		t.Fatalf("selection not cleared: %v", st.Parents)
	}
}

func TestPerformBreeding_Hybrid(t *testing.T) {
	e := fixedEngine(t)
	st := emptyState(t)
	ids := spawn(t, st, 1, 16)

	// success (0.1 < 0.30), hybrid (0.1 < 0.15), hybrid pool head
	res, err := e.PerformBreeding(st, ids[0], ids[1], random.NewScript(0.1, 0.1, 0.0), t0)
	if err != nil {
		t.Fatalf("PerformBreeding: %v", err)
	}
	if res.Chance != 0.30 {
		t.Fatalf("cross-tier chance = %v, want 0.30", res.Chance)
	}
	if !res.Hybrid || res.Species != 26 {
		t.Fatalf("expected hybrid species 26, got %+v", res)
	}
	if !res.NewEntry || !st.IsDiscovered(26) {
		t.Fatalf("hybrid species should be newly discovered")
	}
}

func TestPerformBreeding_SameRarityPicksParent(t *testing.T) {
	e := fixedEngine(t)

	tests := []struct {
		name   string
		script []float64
		want   species.ID
	}{
		{"first parent", []float64{0.5, 0.5, 0.3}, 1},
		{"second parent", []float64{0.5, 0.5, 0.7}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := emptyState(t)
			ids := spawn(t, st, 1, 2)
			res, err := e.PerformBreeding(st, ids[0], ids[1], random.NewScript(tt.script...), t0)
			if err != nil {
				t.Fatalf("PerformBreeding: %v", err)
			}
			if res.Chance != 0.70 {
				t.Fatalf("same-tier chance = %v, want 0.70", res.Chance)
			}
			if res.Species != tt.want || res.Hybrid {
				t.Fatalf("species = %d, want %d", res.Species, tt.want)
			}
		})
	}
}

func TestPerformBreeding_Errors(t *testing.T) {
	e := fixedEngine(t)

	t.Run("same individual", func(t *testing.T) {
		st := emptyState(t)
		ids := spawn(t, st, 1)
		_, err := e.PerformBreeding(st, ids[0], ids[0], random.Constant(0), t0)
		if !errors.Is(err, colony.ErrInvalidSelection) {
			t.Fatalf("expected ErrInvalidSelection, got %v", err)
		}
		if st.Len() != 1 {
			t.Fatalf("error mutated state")
		}
	})

	t.Run("missing parent", func(t *testing.T) {
		st := emptyState(t)
		ids := spawn(t, st, 1)
		_, err := e.PerformBreeding(st, ids[0], 777, random.Constant(0), t0)
		if !errors.Is(err, colony.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("empty selection", func(t *testing.T) {
		st := emptyState(t)
		_, err := e.BreedSelected(st, random.Constant(0), t0)
		if !errors.Is(err, colony.ErrInvalidSelection) {
			t.Fatalf("expected ErrInvalidSelection, got %v", err)
		}
	})

	t.Run("full colony", func(t *testing.T) {
		st := emptyState(t)
		ids := spawn(t, st, 1, 1, 1, 1, 1, 1, 1, 1)
		src := random.Constant(0)
		_, err := e.PerformBreeding(st, ids[0], ids[1], src, t0)
		if !errors.Is(err, colony.ErrCapacityExceeded) {
			t.Fatalf("expected ErrCapacityExceeded, got %v", err)
		}
		if st.Len() != colony.Capacity || src.Drawn() != 0 {
			t.Fatalf("error mutated state or drew randomness")
		}
	})
}
