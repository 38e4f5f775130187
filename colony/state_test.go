package colony

import (
	"errors"
	"testing"
	"time"

	"github.com/pthm-cable/tardigrade/species"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func fill(t *testing.T, s *State, n int) []*Individual {
	t.Helper()
	out := make([]*Individual, 0, n)
	for i := 0; i < n; i++ {
		in, err := s.Spawn(species.ID(i%5+1), 80, 0, t0)
		if err != nil {
			t.Fatalf("Spawn %d: %v", i, err)
		}
		out = append(out, in)
	}
	return out
}

func TestSpawnRespectsCapacity(t *testing.T) {
	s := New(1)
	fill(t, s, Capacity)

	_, err := s.Spawn(1, 80, 0, t0)
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if s.Len() != Capacity {
		t.Fatalf("Len() = %d, want %d", s.Len(), Capacity)
	}
}

func TestSpawnIDsUniqueAtSameInstant(t *testing.T) {
	s := New(1)
	ins := fill(t, s, Capacity)
	for i := 1; i < len(ins); i++ {
		if ins[i].ID <= ins[i-1].ID {
			t.Fatalf("ids not increasing: %d then %d", ins[i-1].ID, ins[i].ID)
		}
	}
	if ins[0].ID>>16 != IndividualID(t0.UnixMilli()) {
		t.Errorf("id %d does not carry generation time", ins[0].ID)
	}
}

func TestRemoveClearsReferences(t *testing.T) {
	s := New(1)
	ins := fill(t, s, 3)
	s.Defense[0] = ins[1].ID
	s.Defense[3] = ins[1].ID
	s.Defense[2] = ins[2].ID
	s.Parents = [2]IndividualID{ins[1].ID, ins[0].ID}

	if _, err := s.Remove(ins[1].ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if s.Defense[0] != 0 || s.Defense[3] != 0 {
		t.Errorf("dangling defense refs: %v", s.Defense)
	}
	if s.Defense[2] != ins[2].ID {
		t.Errorf("unrelated slot cleared: %v", s.Defense)
	}
	if s.Parents[0] != 0 || s.Parents[1] != ins[0].ID {
		t.Errorf("parents = %v", s.Parents)
	}
	if err := s.CheckInvariants(); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}

func TestRemoveKeepsOrder(t *testing.T) {
	s := New(1)
	ins := fill(t, s, 4)
	s.RemoveAt(1)
	want := []IndividualID{ins[0].ID, ins[2].ID, ins[3].ID}
	for i, id := range want {
		if s.Colony[i].ID != id {
			t.Fatalf("colony[%d] = %d, want %d", i, s.Colony[i].ID, id)
		}
	}
}

func TestRemoveUnknown(t *testing.T) {
	s := New(1)
	if _, err := s.Remove(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Get(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDiscoverIsIdempotent(t *testing.T) {
	s := New(1)
	if !s.Discover(7) {
		t.Fatal("first discovery should be new")
	}
	if s.Discover(7) {
		t.Fatal("second discovery should not be new")
	}
	s.Discover(3)
	ids := s.DiscoveredIDs()
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 7 {
		t.Fatalf("DiscoveredIDs() = %v", ids)
	}
}

func TestExperimentLogOutlivesIndividual(t *testing.T) {
	s := New(1)
	in := fill(t, s, 1)[0]
	if got := s.Experiments.Record(in.ID, Heat); got != 1 {
		t.Fatalf("Record = %d, want 1", got)
	}
	s.Experiments.Record(in.ID, Heat)
	if _, err := s.Remove(in.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got := s.Experiments.Count(in.ID, Heat); got != 2 {
		t.Fatalf("Count after removal = %d, want 2", got)
	}
	if got := s.Experiments.Count(in.ID, Cold); got != 0 {
		t.Fatalf("Count cold = %d, want 0", got)
	}
}

func TestCheckInvariantsDetectsDanglingSlot(t *testing.T) {
	s := New(1)
	s.Defense[1] = 99
	if err := s.CheckInvariants(); err == nil {
		t.Fatal("expected dangling slot to be reported")
	}
}

func TestParseEnums(t *testing.T) {
	for _, e := range ExperimentTypes {
		got, ok := ParseExperimentType(e.String())
		if !ok || got != e {
			t.Errorf("ParseExperimentType(%q) = %v, %v", e, got, ok)
		}
	}
	if _, ok := ParseExperimentType("acid"); ok {
		t.Error("acid should not parse")
	}
	for _, sun := range []Sunlight{SunLow, SunMiddle, SunHigh} {
		got, ok := ParseSunlight(sun.String())
		if !ok || got != sun {
			t.Errorf("ParseSunlight(%q) = %v, %v", sun, got, ok)
		}
	}
}
