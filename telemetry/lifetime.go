package telemetry

import (
	"sort"

	"github.com/pthm-cable/tardigrade/colony"
	"github.com/pthm-cable/tardigrade/species"
)

// LifetimeRecord tracks one individual from arrival to departure.
// It is also the lifetimes.csv row.
type LifetimeRecord struct {
	Individual colony.IndividualID `csv:"individual"`
	Species    species.ID          `csv:"species"`
	Origin     Origin              `csv:"origin"`
	BirthTick  int64               `csv:"birth_tick"`
	DeathTick  int64               `csv:"death_tick"`
	Cause      DeathCause          `csv:"cause"`

	ExperimentsPassed int `csv:"experiments_passed"`
	Revivals          int `csv:"revivals"`
	Feedings          int `csv:"feedings"`
}

// LifetimeTicks returns how long the individual stayed in the colony.
func (r *LifetimeRecord) LifetimeTicks() int64 {
	return r.DeathTick - r.BirthTick
}

// LifetimeTracker manages per-individual lifetime records.
type LifetimeTracker struct {
	records map[colony.IndividualID]*LifetimeRecord
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		records: make(map[colony.IndividualID]*LifetimeRecord),
	}
}

// Register starts a record for a newly arrived individual.
func (lt *LifetimeTracker) Register(in *colony.Individual, origin Origin, tick int64) {
	lt.records[in.ID] = &LifetimeRecord{
		Individual: in.ID,
		Species:    in.SpeciesID,
		Origin:     origin,
		BirthTick:  tick,
	}
}

// Get returns the record for an individual, or nil if not found.
func (lt *LifetimeTracker) Get(id colony.IndividualID) *LifetimeRecord {
	return lt.records[id]
}

// Close finalizes and removes an individual's record. It returns nil for
// untracked individuals.
func (lt *LifetimeTracker) Close(id colony.IndividualID, tick int64, cause DeathCause) *LifetimeRecord {
	r := lt.records[id]
	if r == nil {
		return nil
	}
	delete(lt.records, id)
	r.DeathTick = tick
	r.Cause = cause
	return r
}

// RecordExperiment increments the survived experiment count.
func (lt *LifetimeTracker) RecordExperiment(id colony.IndividualID) {
	if r := lt.records[id]; r != nil {
		r.ExperimentsPassed++
	}
}

// RecordRevival increments the revival count.
func (lt *LifetimeTracker) RecordRevival(id colony.IndividualID) {
	if r := lt.records[id]; r != nil {
		r.Revivals++
	}
}

// RecordFeeding increments the feeding count.
func (lt *LifetimeTracker) RecordFeeding(id colony.IndividualID) {
	if r := lt.records[id]; r != nil {
		r.Feedings++
	}
}

// Living returns the open records ordered by individual id.
func (lt *LifetimeTracker) Living() []*LifetimeRecord {
	out := make([]*LifetimeRecord, 0, len(lt.records))
	for _, r := range lt.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Individual < out[j].Individual })
	return out
}

// Count returns the number of tracked individuals.
func (lt *LifetimeTracker) Count() int {
	return len(lt.records)
}
