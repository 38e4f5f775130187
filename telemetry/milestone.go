package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/tardigrade/species"
)

// MilestoneType identifies the type of milestone.
type MilestoneType string

const (
	MilestoneRarity        MilestoneType = "new_highest_rarity"
	MilestoneCollection    MilestoneType = "collection_complete"
	MilestoneColonyWiped   MilestoneType = "colony_wiped"
	MilestoneDefenseStreak MilestoneType = "defense_streak"
)

// Milestone represents an automatically detected moment worth surfacing.
type Milestone struct {
	Type        MilestoneType `csv:"type"`
	Tick        int64         `csv:"tick"`
	Description string        `csv:"description"`
}

// LogMilestone logs the milestone through logger.
func (m Milestone) LogMilestone(logger *slog.Logger) {
	logger.Info("milestone",
		"type", string(m.Type),
		"tick", m.Tick,
		"description", m.Description,
	)
}

// MilestoneDetector watches the event stream for collection and survival milestones.
type MilestoneDetector struct {
	catalog       *species.Catalog
	streakTarget  int
	bestRarity    species.Rarity
	hasBest       bool
	collectionHit bool
	streak        int
	populated     bool
}

// NewMilestoneDetector creates a detector over catalog. streak is the number
// of consecutive repelled attacks that triggers a defense streak milestone.
func NewMilestoneDetector(catalog *species.Catalog, streak int) *MilestoneDetector {
	if streak < 1 {
		streak = 1
	}
	return &MilestoneDetector{catalog: catalog, streakTarget: streak}
}

// Seed primes the detector with the discoveries a session starts with, so
// they do not trigger milestones.
func (md *MilestoneDetector) Seed(discovered []species.ID, colonySize int) {
	for _, id := range discovered {
		md.noteRarity(id)
	}
	md.populated = colonySize > 0
	md.collectionHit = len(discovered) >= md.catalog.Len()
}

// Check analyzes one event plus the colony state after it and returns any
// triggered milestones.
func (md *MilestoneDetector) Check(ev Event, snap ColonySnapshot) []Milestone {
	var out []Milestone

	switch ev.Type {
	case EventDiscoveryNew:
		if m := md.checkRarity(ev); m != nil {
			out = append(out, *m)
		}
		if m := md.checkCollection(ev, snap); m != nil {
			out = append(out, *m)
		}
	case EventBirth:
		// Bred hybrids are discoveries too. Offspring of already known species
		// never exceed the best tier, so only new entries can fire here.
		if m := md.checkRarity(ev); m != nil {
			out = append(out, *m)
		}
		if m := md.checkCollection(ev, snap); m != nil {
			out = append(out, *m)
		}
	case EventAttackRepelled:
		md.streak++
		if md.streak == md.streakTarget {
			out = append(out, Milestone{
				Type:        MilestoneDefenseStreak,
				Tick:        ev.Tick,
				Description: fmt.Sprintf("Repelled %d attacks in a row", md.streak),
			})
		}
	case EventAttackSucceeded:
		md.streak = 0
	}

	if m := md.checkWiped(ev, snap); m != nil {
		out = append(out, *m)
	}
	return out
}

func (md *MilestoneDetector) noteRarity(id species.ID) bool {
	def, ok := md.catalog.Get(id)
	if !ok {
		return false
	}
	if md.hasBest && def.Rarity <= md.bestRarity {
		return false
	}
	md.bestRarity = def.Rarity
	md.hasBest = true
	return true
}

func (md *MilestoneDetector) checkRarity(ev Event) *Milestone {
	if !md.noteRarity(ev.Species) {
		return nil
	}
	def, _ := md.catalog.Get(ev.Species)
	return &Milestone{
		Type:        MilestoneRarity,
		Tick:        ev.Tick,
		Description: fmt.Sprintf("First %s species discovered: %s", def.Rarity, def.Name),
	}
}

func (md *MilestoneDetector) checkCollection(ev Event, snap ColonySnapshot) *Milestone {
	if md.collectionHit || snap.Discovered < md.catalog.Len() {
		return nil
	}
	md.collectionHit = true
	return &Milestone{
		Type:        MilestoneCollection,
		Tick:        ev.Tick,
		Description: fmt.Sprintf("All %d species discovered", md.catalog.Len()),
	}
}

func (md *MilestoneDetector) checkWiped(ev Event, snap ColonySnapshot) *Milestone {
	size := len(snap.Nutrition)
	if size > 0 {
		md.populated = true
		return nil
	}
	if !md.populated {
		return nil
	}
	md.populated = false
	return &Milestone{
		Type:        MilestoneColonyWiped,
		Tick:        ev.Tick,
		Description: fmt.Sprintf("Colony wiped out (last loss: %s)", lossReason(ev)),
	}
}

func lossReason(ev Event) string {
	if ev.Cause != "" {
		return string(ev.Cause)
	}
	return string(ev.Type)
}
