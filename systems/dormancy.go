package systems

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/tardigrade/colony"
	"github.com/pthm-cable/tardigrade/random"
)

// DormancyKind discriminates single dormancy toggles.
type DormancyKind uint8

const (
	DormancyUnchanged DormancyKind = iota
	EnteredDormancy
	Revived
	RevivalFailed
)

// String returns the outcome's stable key.
func (k DormancyKind) String() string {
	switch k {
	case DormancyUnchanged:
		return "unchanged"
	case EnteredDormancy:
		return "entered_dormancy"
	case Revived:
		return "revived"
	case RevivalFailed:
		return "revival_failed"
	}
	return "unknown"
}

// DormancyResult reports one toggle.
type DormancyResult struct {
	Kind       DormancyKind
	Individual colony.IndividualID
}

// ReviveResult reports a bulk revival.
type ReviveResult struct {
	Revived []colony.IndividualID
	Lost    []colony.IndividualID
}

// LogValue implements slog.LogValuer.
func (r ReviveResult) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("revived", len(r.Revived)),
		slog.Int("lost", len(r.Lost)),
	)
}

// SetDormant puts an individual to sleep or attempts to wake it.
// Waking is a revival roll against the species' cryptobiosis rate; a failed
// roll removes the individual.
func (e *Engine) SetDormant(st *colony.State, id colony.IndividualID, dormant bool, src random.Source) (DormancyResult, error) {
	in, err := st.Get(id)
	if err != nil {
		return DormancyResult{}, fmt.Errorf("set dormant: %w", err)
	}
	res := DormancyResult{Kind: DormancyUnchanged, Individual: id}
	if in.Dormant == dormant {
		return res, nil
	}
	if dormant {
		in.Dormant = true
		res.Kind = EnteredDormancy
		return res, nil
	}

	ok, err := e.revive(st, in, src)
	if err != nil {
		return res, err
	}
	if ok {
		res.Kind = Revived
	} else {
		res.Kind = RevivalFailed
	}
	return res, nil
}

// DormantAll puts every active individual to sleep and returns how many changed.
func (e *Engine) DormantAll(st *colony.State) int {
	n := 0
	for _, in := range st.Colony {
		if !in.Dormant {
			in.Dormant = true
			n++
		}
	}
	return n
}

// ReviveAll rolls revival once per dormant individual, in roster order.
func (e *Engine) ReviveAll(st *colony.State, src random.Source) (ReviveResult, error) {
	var res ReviveResult
	roster := make([]*colony.Individual, len(st.Colony))
	copy(roster, st.Colony)

	for _, in := range roster {
		if !in.Dormant {
			continue
		}
		ok, err := e.revive(st, in, src)
		if err != nil {
			return res, err
		}
		if ok {
			res.Revived = append(res.Revived, in.ID)
		} else {
			res.Lost = append(res.Lost, in.ID)
		}
	}
	return res, nil
}

func (e *Engine) revive(st *colony.State, in *colony.Individual, src random.Source) (bool, error) {
	def, err := e.definition(in)
	if err != nil {
		return false, err
	}
	if random.Chance(src, def.CryptobiosisRate) {
		in.Dormant = false
		return true, nil
	}
	if _, err := st.Remove(in.ID); err != nil {
		return false, err
	}
	return false, nil
}
