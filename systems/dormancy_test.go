package systems

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/tardigrade/colony"
	"github.com/pthm-cable/tardigrade/config"
	"github.com/pthm-cable/tardigrade/random"
	"github.com/pthm-cable/tardigrade/species"
)

func TestSetDormant_FreezesAging(t *testing.T) {
	e := fixedEngine(t)
	st := emptyState(t)
	ids := spawn(t, st, 1, 2)

	res, err := e.SetDormant(st, ids[0], true, random.Constant(0))
	if err != nil {
		t.Fatalf("SetDormant: %v", err)
	}
	if res.Kind != EnteredDormancy {
		t.Fatalf("kind = %s", res.Kind)
	}

	if aged := e.AgeColony(st); aged != 1 {
		t.Fatalf("aged = %d, want 1", aged)
	}
	sleeper, _ := st.Find(ids[0])
	awake, _ := st.Find(ids[1])
	if sleeper.Nutrition != 80 || sleeper.Age != 0 {
		t.Fatalf("dormant individual changed: %+v", sleeper)
	}
	if awake.Nutrition != 79.5 || awake.Age != 1 {
		t.Fatalf("active individual = %+v", awake)
	}
}

func TestSetDormant_WakeRollsRevival(t *testing.T) {
	e := fixedEngine(t)

	tests := []struct {
		name string
		draw float64
		want DormancyKind
		left int
	}{
		{"revived", 0.0, Revived, 1},
		{"below rate", 0.87, Revived, 1},
		{"above rate", 0.88, RevivalFailed, 0},
		{"failed", 0.99, RevivalFailed, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := emptyState(t)
			ids := spawn(t, st, 3)
			st.Colony[0].Dormant = true

			res, err := e.SetDormant(st, ids[0], false, random.Constant(tt.draw))
			if err != nil {
				t.Fatalf("SetDormant: %v", err)
			}
			if res.Kind != tt.want || st.Len() != tt.left {
				t.Fatalf("kind = %s len = %d, want %s len %d", res.Kind, st.Len(), tt.want, tt.left)
			}
			if tt.left == 1 && st.Colony[0].Dormant {
				t.Fatalf("revived individual still dormant")
			}
		})
	}
}

func TestSetDormant_NoOpDoesNotDraw(t *testing.T) {
	e := fixedEngine(t)
	st := emptyState(t)
	ids := spawn(t, st, 1)
	src := random.Constant(0.99)

	res, err := e.SetDormant(st, ids[0], false, src)
	if err != nil {
		t.Fatalf("SetDormant: %v", err)
	}
	if res.Kind != DormancyUnchanged || src.Drawn() != 0 || st.Len() != 1 {
		t.Fatalf("waking an active individual must be a no-op")
	}
	if _, err := e.SetDormant(st, 4242, true, src); !errors.Is(err, colony.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReviveAll_IndependentRolls(t *testing.T) {
	e := fixedEngine(t)
	st := emptyState(t)
	ids := spawn(t, st, 1, 2, 3)
	st.Defense[1] = ids[2]
	if n := e.DormantAll(st); n != 3 {
		t.Fatalf("DormantAll = %d, want 3", n)
	}

	src := random.NewScript(0.0, 0.0, 0.99)
	res, err := e.ReviveAll(st, src)
	if err != nil {
		t.Fatalf("ReviveAll: %v", err)
	}
	if src.Drawn() != 3 {
		t.Fatalf("drew %d, want one draw per dormant individual", src.Drawn())
	}
	if len(res.Revived) != 2 || len(res.Lost) != 1 || res.Lost[0] != ids[2] {
		t.Fatalf("result = %+v", res)
	}
	if st.Len() != 2 || st.DormantCount() != 0 {
		t.Fatalf("colony = %d dormant = %d", st.Len(), st.DormantCount())
	}
	mustInvariants(t, st)
}

func TestReviveAll_MatchesCryptobiosisRate(t *testing.T) {
	cat := species.Build(random.New(2024))
	e := NewEngine(cat, config.Default())
	src := random.New(99)

	const trials = 20000
	for _, sid := range []species.ID{1, 17, 42} {
		def, _ := cat.Get(sid)
		revived := 0
		for i := 0; i < trials; i++ {
			st := emptyState(t)
			spawn(t, st, sid)
			st.Colony[0].Dormant = true
			res, err := e.ReviveAll(st, src)
			if err != nil {
				t.Fatalf("ReviveAll: %v", err)
			}
			revived += len(res.Revived)
		}

		b := distuv.Binomial{N: trials, P: def.CryptobiosisRate}
		if diff := math.Abs(float64(revived) - b.Mean()); diff > 5*b.StdDev() {
			t.Errorf("species %d: revived %d of %d, expected %.0f ± %.1f (rate %.3f)",
				sid, revived, trials, b.Mean(), 5*b.StdDev(), def.CryptobiosisRate)
		}
	}
}
