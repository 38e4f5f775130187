package telemetry

import (
	"testing"

	"github.com/pthm-cable/tardigrade/colony"
	"github.com/pthm-cable/tardigrade/random"
	"github.com/pthm-cable/tardigrade/species"
)

func testCatalog(t *testing.T) *species.Catalog {
	t.Helper()
	return species.Build(random.Constant(0.5))
}

func populated(n int) ColonySnapshot {
	return ColonySnapshot{Nutrition: make([]float64, n)}
}

func hasMilestone(ms []Milestone, typ MilestoneType) bool {
	for _, m := range ms {
		if m.Type == typ {
			return true
		}
	}
	return false
}

func TestMilestoneDetector_HighestRarity(t *testing.T) {
	md := NewMilestoneDetector(testCatalog(t), 3)
	md.Seed([]species.ID{1, 2, 6}, 3)

	// 3 is Common, already matched by the seed.
	if ms := md.Check(NewDiscoveryEvent(1, 3, 0, true), populated(3)); hasMilestone(ms, MilestoneRarity) {
		t.Error("Common discovery should not beat Uncommon seed")
	}
	// 16 is Rare.
	if ms := md.Check(NewDiscoveryEvent(2, 16, 0, true), populated(3)); !hasMilestone(ms, MilestoneRarity) {
		t.Error("expected new_highest_rarity for first Rare")
	}
	if ms := md.Check(NewDiscoveryEvent(3, 17, 0, true), populated(3)); hasMilestone(ms, MilestoneRarity) {
		t.Error("second Rare should not trigger again")
	}
	// Repeat discoveries never count.
	if ms := md.Check(NewDiscoveryEvent(4, 40, 0, false), populated(3)); hasMilestone(ms, MilestoneRarity) {
		t.Error("repeat discovery triggered a milestone")
	}
}

func TestMilestoneDetector_HybridBirthRaisesRarity(t *testing.T) {
	md := NewMilestoneDetector(testCatalog(t), 3)
	md.Seed([]species.ID{1, 2, 6}, 3)

	same := &colony.Individual{ID: 7, SpeciesID: 1}
	if ms := md.Check(NewBirthEvent(1, same, false), populated(3)); hasMilestone(ms, MilestoneRarity) {
		t.Error("offspring of a known Common species triggered a milestone")
	}
	// 40 is Legendary.
	hybrid := &colony.Individual{ID: 8, SpeciesID: 40}
	ms := md.Check(NewBirthEvent(2, hybrid, true), populated(3))
	if !hasMilestone(ms, MilestoneRarity) {
		t.Fatal("expected new_highest_rarity for a Legendary hybrid")
	}
	if ms := md.Check(NewDiscoveryEvent(3, 41, 0, true), populated(3)); hasMilestone(ms, MilestoneRarity) {
		t.Error("second Legendary should not trigger again")
	}
}

func TestMilestoneDetector_CollectionComplete(t *testing.T) {
	cat := testCatalog(t)
	md := NewMilestoneDetector(cat, 3)
	md.Seed(nil, 1)

	snap := populated(1)
	snap.Discovered = cat.Len()
	ms := md.Check(NewDiscoveryEvent(9, 50, 0, true), snap)
	if !hasMilestone(ms, MilestoneCollection) {
		t.Fatal("expected collection_complete")
	}
	if ms := md.Check(NewDiscoveryEvent(10, 50, 0, true), snap); hasMilestone(ms, MilestoneCollection) {
		t.Error("collection_complete should trigger once")
	}
}

func TestMilestoneDetector_DefenseStreak(t *testing.T) {
	md := NewMilestoneDetector(testCatalog(t), 3)
	snap := populated(2)

	md.Check(NewAttackEvent(1, true, 30, 50), snap)
	md.Check(NewAttackEvent(2, true, 30, 50), snap)
	md.Check(NewAttackEvent(3, false, 70, 50), snap)
	md.Check(NewAttackEvent(4, true, 30, 50), snap)
	md.Check(NewAttackEvent(5, true, 30, 50), snap)
	ms := md.Check(NewAttackEvent(6, true, 30, 50), snap)

	if !hasMilestone(ms, MilestoneDefenseStreak) {
		t.Error("expected defense_streak after three repelled in a row")
	}
	if ms := md.Check(NewAttackEvent(7, true, 30, 50), snap); hasMilestone(ms, MilestoneDefenseStreak) {
		t.Error("streak should trigger exactly once")
	}
}

func TestMilestoneDetector_ColonyWiped(t *testing.T) {
	md := NewMilestoneDetector(testCatalog(t), 3)
	md.Seed([]species.ID{1}, 1)

	ev := Event{Type: EventDeath, Tick: 12, Cause: CauseAttack}
	ms := md.Check(ev, populated(0))
	if !hasMilestone(ms, MilestoneColonyWiped) {
		t.Fatal("expected colony_wiped")
	}
	if ms[0].Description != "Colony wiped out (last loss: attack)" {
		t.Errorf("description = %q", ms[0].Description)
	}
	if ms := md.Check(ev, populated(0)); hasMilestone(ms, MilestoneColonyWiped) {
		t.Error("an empty colony should not be wiped twice")
	}
	md.Check(NewDiscoveryEvent(13, 1, 7, false), populated(1))
	if ms := md.Check(ev, populated(0)); !hasMilestone(ms, MilestoneColonyWiped) {
		t.Error("repopulated colony should be able to wipe again")
	}
}
