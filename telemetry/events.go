// Package telemetry provides colony health tracking, milestones and CSV output.
package telemetry

import (
	"fmt"

	"github.com/pthm-cable/tardigrade/colony"
	"github.com/pthm-cable/tardigrade/species"
)

// EventType identifies telemetry events.
type EventType string

const (
	EventDiscoveryNew     EventType = "discovery_new"
	EventDiscoveryRepeat  EventType = "discovery_repeat"
	EventMiss             EventType = "miss"
	EventBirth            EventType = "birth"
	EventBreedFailed      EventType = "breed_failed"
	EventDeath            EventType = "death"
	EventRevival          EventType = "revival"
	EventExperimentPassed EventType = "experiment_passed"
	EventAttackRepelled   EventType = "attack_repelled"
	EventAttackSucceeded  EventType = "attack_succeeded"
)

// DeathCause says why an individual left the colony.
type DeathCause string

const (
	CauseReleased   DeathCause = "released"
	CauseRevival    DeathCause = "revival"
	CauseExperiment DeathCause = "experiment"
	CauseAttack     DeathCause = "attack"
	CauseBreeding   DeathCause = "breeding" // parent consumed by a breeding attempt
)

// Origin says how an individual entered the colony.
type Origin string

const (
	OriginInitial    Origin = "initial"
	OriginDiscovered Origin = "discovered"
	OriginBred       Origin = "bred"
)

// Event represents a single telemetry event. It is also the events.csv row.
type Event struct {
	Type       EventType           `csv:"type"`
	Tick       int64               `csv:"tick"`
	Individual colony.IndividualID `csv:"individual"`
	Species    species.ID          `csv:"species"`

	// Optional fields depending on event type
	Cause  DeathCause `csv:"cause"`
	Detail string     `csv:"detail"`
}

// NewDiscoveryEvent creates a discovery event. individual is zero when the
// colony had no room.
func NewDiscoveryEvent(tick int64, sid species.ID, individual colony.IndividualID, isNew bool) Event {
	typ := EventDiscoveryRepeat
	if isNew {
		typ = EventDiscoveryNew
	}
	return Event{Type: typ, Tick: tick, Individual: individual, Species: sid}
}

// NewMissEvent creates an exploration event that found nothing.
func NewMissEvent(tick int64, area species.AreaID) Event {
	return Event{Type: EventMiss, Tick: tick, Detail: string(area)}
}

// NewBirthEvent creates a birth event. hybrid marks offspring from the hybrid pool.
func NewBirthEvent(tick int64, child *colony.Individual, hybrid bool) Event {
	ev := Event{Type: EventBirth, Tick: tick, Individual: child.ID, Species: child.SpeciesID}
	if hybrid {
		ev.Detail = "hybrid"
	}
	return ev
}

// NewBreedFailedEvent creates a failed breeding event.
func NewBreedFailedEvent(tick int64, chance float64) Event {
	return Event{Type: EventBreedFailed, Tick: tick, Detail: formatChance(chance)}
}

// NewDeathEvent creates a death event.
func NewDeathEvent(tick int64, in *colony.Individual, cause DeathCause) Event {
	return Event{Type: EventDeath, Tick: tick, Individual: in.ID, Species: in.SpeciesID, Cause: cause}
}

// NewRevivalEvent creates a successful revival event.
func NewRevivalEvent(tick int64, id colony.IndividualID, sid species.ID) Event {
	return Event{Type: EventRevival, Tick: tick, Individual: id, Species: sid}
}

// NewExperimentEvent creates a survived experiment event.
func NewExperimentEvent(tick int64, id colony.IndividualID, sid species.ID, typ colony.ExperimentType) Event {
	return Event{Type: EventExperimentPassed, Tick: tick, Individual: id, Species: sid, Detail: typ.String()}
}

// NewAttackEvent creates an attack resolution event.
func NewAttackEvent(tick int64, repelled bool, power, defense int) Event {
	typ := EventAttackSucceeded
	if repelled {
		typ = EventAttackRepelled
	}
	return Event{Type: typ, Tick: tick, Detail: formatPower(power, defense)}
}

func formatChance(chance float64) string {
	return fmt.Sprintf("chance=%.2f", chance)
}

func formatPower(power, defense int) string {
	return fmt.Sprintf("power=%d defense=%d", power, defense)
}
