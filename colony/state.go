// Package colony holds the mutable game state and the invariants every mutation preserves.
package colony

import (
	"fmt"
	"sort"
	"time"

	"github.com/pthm-cable/tardigrade/species"
)

// Capacity is the maximum number of individuals in the colony.
const Capacity = 8

// DefenseSlots is the fixed number of defense positions.
const DefenseSlots = 4

// State is the complete game state of one session.
type State struct {
	Environment Environment

	// Colony is the ordered roster; len(Colony) <= Capacity.
	Colony []*Individual

	// Discovered only ever grows.
	Discovered map[species.ID]struct{}

	ThreatLevel  float64 // 0..100
	NextAttackAt time.Time

	// Defense holds individual ids; 0 marks an empty slot.
	Defense [DefenseSlots]IndividualID

	// Parents is the pending breeding selection; 0 marks an empty pick.
	Parents [2]IndividualID

	Experiments ExperimentLog

	Tick int64

	ids *idGenerator
}

// New creates an empty state. idSeed seeds the tiebreak for individual ids.
func New(idSeed int64) *State {
	return &State{
		Discovered:  make(map[species.ID]struct{}),
		Experiments: make(ExperimentLog),
		ids:         newIDGenerator(idSeed),
	}
}

// Len returns the number of individuals in the colony.
func (s *State) Len() int {
	return len(s.Colony)
}

// HasRoom reports whether another individual fits.
func (s *State) HasRoom() bool {
	return len(s.Colony) < Capacity
}

// Find returns the individual with id and its index, or nil and -1.
func (s *State) Find(id IndividualID) (*Individual, int) {
	for i, in := range s.Colony {
		if in.ID == id {
			return in, i
		}
	}
	return nil, -1
}

// Get returns the individual with id or ErrNotFound.
func (s *State) Get(id IndividualID) (*Individual, error) {
	in, _ := s.Find(id)
	if in == nil {
		return nil, fmt.Errorf("individual %d: %w", id, ErrNotFound)
	}
	return in, nil
}

// Spawn appends a new individual of speciesID. The id is derived from now.
func (s *State) Spawn(speciesID species.ID, nutrition float64, age int, now time.Time) (*Individual, error) {
	if !s.HasRoom() {
		return nil, fmt.Errorf("spawn species %d: %w", speciesID, ErrCapacityExceeded)
	}
	in := &Individual{
		ID:        s.ids.next(now),
		SpeciesID: speciesID,
		Nutrition: nutrition,
		Age:       age,
	}
	s.Colony = append(s.Colony, in)
	return in, nil
}

// Remove deletes the individual with id and clears every reference to it.
func (s *State) Remove(id IndividualID) (*Individual, error) {
	in, idx := s.Find(id)
	if in == nil {
		return nil, fmt.Errorf("remove individual %d: %w", id, ErrNotFound)
	}
	s.Colony = append(s.Colony[:idx], s.Colony[idx+1:]...)
	s.clearRefs(id)
	return in, nil
}

// RemoveAt deletes the individual at index i.
func (s *State) RemoveAt(i int) *Individual {
	in := s.Colony[i]
	s.Colony = append(s.Colony[:i], s.Colony[i+1:]...)
	s.clearRefs(in.ID)
	return in
}

func (s *State) clearRefs(id IndividualID) {
	for i := range s.Defense {
		if s.Defense[i] == id {
			s.Defense[i] = 0
		}
	}
	for i := range s.Parents {
		if s.Parents[i] == id {
			s.Parents[i] = 0
		}
	}
}

// Discover marks id as discovered and reports whether it was new.
func (s *State) Discover(id species.ID) bool {
	if _, ok := s.Discovered[id]; ok {
		return false
	}
	s.Discovered[id] = struct{}{}
	return true
}

// IsDiscovered reports whether id has been discovered.
func (s *State) IsDiscovered(id species.ID) bool {
	_, ok := s.Discovered[id]
	return ok
}

// DiscoveredIDs returns the discovered ids in ascending order.
func (s *State) DiscoveredIDs() []species.ID {
	ids := make([]species.ID, 0, len(s.Discovered))
	for id := range s.Discovered {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DefenderCount returns the number of occupied defense slots.
func (s *State) DefenderCount() int {
	n := 0
	for _, id := range s.Defense {
		if id != 0 {
			n++
		}
	}
	return n
}

// DormantCount returns the number of dormant individuals.
func (s *State) DormantCount() int {
	n := 0
	for _, in := range s.Colony {
		if in.Dormant {
			n++
		}
	}
	return n
}

// CheckInvariants returns an error describing the first broken invariant.
func (s *State) CheckInvariants() error {
	if len(s.Colony) > Capacity {
		return fmt.Errorf("colony size %d exceeds capacity %d", len(s.Colony), Capacity)
	}
	seen := make(map[IndividualID]bool, len(s.Colony))
	for _, in := range s.Colony {
		if seen[in.ID] {
			return fmt.Errorf("duplicate individual id %d", in.ID)
		}
		seen[in.ID] = true
		if in.Nutrition < 0 || in.Nutrition > 100 {
			return fmt.Errorf("individual %d nutrition %v out of range", in.ID, in.Nutrition)
		}
	}
	for i, id := range s.Defense {
		if id != 0 && !seen[id] {
			return fmt.Errorf("defense slot %d references missing individual %d", i, id)
		}
	}
	for i, id := range s.Parents {
		if id != 0 && !seen[id] {
			return fmt.Errorf("parent pick %d references missing individual %d", i, id)
		}
	}
	if s.ThreatLevel < 0 || s.ThreatLevel > 100 {
		return fmt.Errorf("threat level %v out of range", s.ThreatLevel)
	}
	return nil
}
