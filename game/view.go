package game

import (
	"time"

	"github.com/pthm-cable/tardigrade/colony"
	"github.com/pthm-cable/tardigrade/species"
)

// View is a copy of the session state for presentation. Mutating it has no
// effect on the game.
type View struct {
	Tick         int64
	Now          time.Time
	Environment  colony.Environment
	Colony       []colony.Individual
	Discovered   []species.ID
	ThreatLevel  float64
	NextAttackAt time.Time
	Defense      [colony.DefenseSlots]colony.IndividualID
	Parents      [2]colony.IndividualID

	// Experiments holds survived trial counts per individual, including
	// individuals that are gone.
	Experiments map[colony.IndividualID]map[colony.ExperimentType]int
}

// View returns a snapshot of the session.
func (g *Game) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := g.state
	v := View{
		Tick:         st.Tick,
		Now:          g.now,
		Environment:  st.Environment,
		Colony:       make([]colony.Individual, 0, st.Len()),
		Discovered:   st.DiscoveredIDs(),
		ThreatLevel:  st.ThreatLevel,
		NextAttackAt: st.NextAttackAt,
		Defense:      st.Defense,
		Parents:      st.Parents,
		Experiments:  make(map[colony.IndividualID]map[colony.ExperimentType]int, len(st.Experiments)),
	}
	for _, in := range st.Colony {
		v.Colony = append(v.Colony, *in)
	}
	for id, counts := range st.Experiments {
		cp := make(map[colony.ExperimentType]int, len(counts))
		for typ, n := range counts {
			cp[typ] = n
		}
		v.Experiments[id] = cp
	}
	return v
}

// Individual returns the roster entry at position i (0-based), if any.
func (v View) Individual(i int) (colony.Individual, bool) {
	if i < 0 || i >= len(v.Colony) {
		return colony.Individual{}, false
	}
	return v.Colony[i], true
}

// CheckInvariants validates the live state.
func (g *Game) CheckInvariants() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.CheckInvariants()
}
