package game

import (
	"github.com/pthm-cable/tardigrade/colony"
	"github.com/pthm-cable/tardigrade/species"
	"github.com/pthm-cable/tardigrade/systems"
	"github.com/pthm-cable/tardigrade/telemetry"
)

// Explore searches a habitat for tardigrades.
func (g *Game) Explore(area species.AreaID) (systems.DiscoveryResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	res, err := g.engine.Explore(g.state, area, g.rng, g.now)
	if err != nil {
		return res, g.reject("explore", err)
	}

	tick := g.state.Tick
	if !res.Found() {
		g.emit(telemetry.NewMissEvent(tick, area))
		return res, nil
	}
	if res.Added {
		in, _ := g.state.Find(res.Individual)
		g.lifetimes.Register(in, telemetry.OriginDiscovered, tick)
	}
	g.emit(telemetry.NewDiscoveryEvent(tick, res.SpeciesID, res.Individual, res.IsNewSpecies()))
	g.logger.Info("discovery", "result", res)
	return res, nil
}

// SelectParent adds id to the pending breeding pair.
func (g *Game) SelectParent(id colony.IndividualID) ([2]colony.IndividualID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	parents, err := g.engine.SelectParent(g.state, id)
	if err != nil {
		return parents, g.reject("select_parent", err)
	}
	return parents, nil
}

// Breed breeds the selected pair. Both parents leave the colony whatever the roll.
func (g *Game) Breed() (systems.BreedResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	parents := g.roster(g.state.Parents[:]...)
	res, err := g.engine.BreedSelected(g.state, g.rng, g.now)
	if err != nil {
		return res, g.reject("breed", err)
	}

	tick := g.state.Tick
	for _, p := range parents {
		g.recordDeath(p, telemetry.CauseBreeding)
	}
	if res.Kind == systems.BreedSucceeded {
		child, _ := g.state.Find(res.Child)
		g.lifetimes.Register(child, telemetry.OriginBred, tick)
		g.emit(telemetry.NewBirthEvent(tick, child, res.Hybrid))
	} else {
		g.emit(telemetry.NewBreedFailedEvent(tick, res.Chance))
	}
	g.logger.Info("breeding", "result", res)
	return res, nil
}

// SetDormant puts an individual to sleep, or tries to revive it.
func (g *Game) SetDormant(id colony.IndividualID, dormant bool) (systems.DormancyResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	before := g.roster(id)
	res, err := g.engine.SetDormant(g.state, id, dormant, g.rng)
	if err != nil {
		return res, g.reject("set_dormant", err)
	}

	switch res.Kind {
	case systems.Revived:
		g.recordRevival(before[0])
	case systems.RevivalFailed:
		g.recordDeath(before[0], telemetry.CauseRevival)
	}
	return res, nil
}

// DormantAll puts every active individual to sleep.
func (g *Game) DormantAll() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.DormantAll(g.state)
}

// ReviveAll attempts to revive every dormant individual.
func (g *Game) ReviveAll() (systems.ReviveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	before := g.roster()
	res, err := g.engine.ReviveAll(g.state, g.rng)
	if err != nil {
		return res, g.reject("revive_all", err)
	}

	byID := make(map[colony.IndividualID]*colony.Individual, len(before))
	for _, in := range before {
		byID[in.ID] = in
	}
	for _, id := range res.Revived {
		g.recordRevival(byID[id])
	}
	for _, id := range res.Lost {
		g.recordDeath(byID[id], telemetry.CauseRevival)
	}
	g.logger.Info("revive all", "result", res)
	return res, nil
}

// Experiment runs a lethal resistance trial on an individual.
func (g *Game) Experiment(id colony.IndividualID, typ colony.ExperimentType) (systems.ExperimentResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	before := g.roster(id)
	res, err := g.engine.PerformExperiment(g.state, id, typ, g.rng)
	if err != nil {
		return res, g.reject("experiment", err)
	}

	if res.Kind == systems.ExperimentSurvived {
		g.lifetimes.RecordExperiment(id)
		g.emit(telemetry.NewExperimentEvent(g.state.Tick, id, res.Species, typ))
	} else {
		g.recordDeath(before[0], telemetry.CauseExperiment)
	}
	g.logger.Info("experiment", "result", res)
	return res, nil
}

// Release returns an individual to the wild.
func (g *Game) Release(id colony.IndividualID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	in, err := g.engine.Release(g.state, id)
	if err != nil {
		return g.reject("release", err)
	}
	g.recordDeath(in, telemetry.CauseReleased)
	return nil
}

// Feed tops up an individual's nutrition and returns the new value.
func (g *Game) Feed(id colony.IndividualID) (float64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, err := g.engine.Feed(g.state, id)
	if err != nil {
		return n, g.reject("feed", err)
	}
	g.lifetimes.RecordFeeding(id)
	return n, nil
}

// AssignDefender fills a defense slot with the first eligible individual.
func (g *Game) AssignDefender(slot int) (colony.IndividualID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := g.engine.AssignDefender(g.state, slot)
	if err != nil {
		return id, g.reject("assign_defender", err)
	}
	return id, nil
}

// ClearDefender empties a defense slot.
func (g *Game) ClearDefender(slot int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.engine.ClearDefender(g.state, slot); err != nil {
		return g.reject("clear_defender", err)
	}
	return nil
}

// roster copies the individuals with the given ids, or the whole colony when
// no id is given, so they can be reported after the engine removes them.
func (g *Game) roster(ids ...colony.IndividualID) []*colony.Individual {
	var out []*colony.Individual
	if len(ids) == 0 {
		for _, in := range g.state.Colony {
			cp := *in
			out = append(out, &cp)
		}
		return out
	}
	for _, id := range ids {
		if in, _ := g.state.Find(id); in != nil {
			cp := *in
			out = append(out, &cp)
		}
	}
	return out
}
