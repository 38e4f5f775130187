package telemetry

import "time"

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks int64
	simPerTick  time.Duration

	// Current window tracking
	windowStartTick int64

	// Event counters for current window
	discoveriesNew    int
	discoveriesRepeat int
	misses            int
	births            int
	hybrids           int
	breedFailures     int
	deaths            map[DeathCause]int
	revivals          int
	experimentsPassed int
	attacksRepelled   int
	attacksSucceeded  int
}

// NewCollector creates a new stats collector.
// windowTicks: how many ticks each stats window spans
// simPerTick: simulated time per tick (used for tick-to-time conversion)
func NewCollector(windowTicks int, simPerTick time.Duration) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: int64(windowTicks),
		simPerTick:  simPerTick,
		deaths:      make(map[DeathCause]int),
	}
}

// Record counts one event in the current window.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventDiscoveryNew:
		c.discoveriesNew++
	case EventDiscoveryRepeat:
		c.discoveriesRepeat++
	case EventMiss:
		c.misses++
	case EventBirth:
		c.births++
		if ev.Detail == "hybrid" {
			c.hybrids++
		}
	case EventBreedFailed:
		c.breedFailures++
	case EventDeath:
		c.deaths[ev.Cause]++
	case EventRevival:
		c.revivals++
	case EventExperimentPassed:
		c.experimentsPassed++
	case EventAttackRepelled:
		c.attacksRepelled++
	case EventAttackSucceeded:
		c.attacksSucceeded++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats from the counters and the colony snapshot,
// then resets counters for the next window.
func (c *Collector) Flush(currentTick int64, snap ColonySnapshot) WindowStats {
	nutMean, nutP10, nutP50, nutP90 := ComputeNutritionStats(snap.Nutrition)
	ageMean, ageStd := ComputeAgeStats(snap.Ages)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimMinutes:      float64(currentTick) * c.simPerTick.Minutes(),

		ColonySize:  len(snap.Nutrition),
		Dormant:     snap.Dormant,
		Defenders:   snap.Defenders,
		Discovered:  snap.Discovered,
		ThreatLevel: snap.ThreatLevel,
		Humidity:    snap.Humidity,
		Temperature: snap.Temperature,

		DiscoveriesNew:    c.discoveriesNew,
		DiscoveriesRepeat: c.discoveriesRepeat,
		Misses:            c.misses,
		Births:            c.births,
		Hybrids:           c.hybrids,
		BreedFailures:     c.breedFailures,
		Revivals:          c.revivals,
		ExperimentsPassed: c.experimentsPassed,
		AttacksRepelled:   c.attacksRepelled,
		AttacksSucceeded:  c.attacksSucceeded,

		DeathsReleased:   c.deaths[CauseReleased],
		DeathsRevival:    c.deaths[CauseRevival],
		DeathsExperiment: c.deaths[CauseExperiment],
		DeathsAttack:     c.deaths[CauseAttack],
		DeathsBreeding:   c.deaths[CauseBreeding],

		NutritionMean: nutMean,
		NutritionP10:  nutP10,
		NutritionP50:  nutP50,
		NutritionP90:  nutP90,
		AgeMean:       ageMean,
		AgeStd:        ageStd,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.discoveriesNew = 0
	c.discoveriesRepeat = 0
	c.misses = 0
	c.births = 0
	c.hybrids = 0
	c.breedFailures = 0
	clear(c.deaths)
	c.revivals = 0
	c.experimentsPassed = 0
	c.attacksRepelled = 0
	c.attacksSucceeded = 0

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int64 {
	return c.windowTicks
}
