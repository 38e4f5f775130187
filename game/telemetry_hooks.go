package game

import (
	"github.com/pthm-cable/tardigrade/colony"
	"github.com/pthm-cable/tardigrade/telemetry"
)

// emit counts an event, writes it out and checks it for milestones.
func (g *Game) emit(ev telemetry.Event) {
	g.collector.Record(ev)
	if err := g.output.WriteEvent(ev); err != nil {
		g.logger.Error("failed to write event", "error", err)
	}

	for _, m := range g.milestones.Check(ev, telemetry.SnapshotOf(g.state)) {
		m.LogMilestone(g.logger)
		if err := g.output.WriteMilestone(m); err != nil {
			g.logger.Error("failed to write milestone", "error", err)
		}
	}
}

// recordDeath closes the individual's lifetime record and emits a death event.
func (g *Game) recordDeath(in *colony.Individual, cause telemetry.DeathCause) {
	if in == nil {
		return
	}
	tick := g.state.Tick
	if r := g.lifetimes.Close(in.ID, tick, cause); r != nil {
		if err := g.output.WriteLifetime(r); err != nil {
			g.logger.Error("failed to write lifetime", "error", err)
		}
	}
	g.logger.Info("death", "individual", uint64(in.ID), "species", int(in.SpeciesID), "cause", string(cause))
	g.emit(telemetry.NewDeathEvent(tick, in, cause))
}

func (g *Game) recordRevival(in *colony.Individual) {
	if in == nil {
		return
	}
	g.lifetimes.RecordRevival(in.ID)
	g.emit(telemetry.NewRevivalEvent(g.state.Tick, in.ID, in.SpeciesID))
}

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.state.Tick) {
		return
	}

	stats := g.collector.Flush(g.state.Tick, telemetry.SnapshotOf(g.state))

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats(g.logger)
	}

	if err := g.output.WriteTelemetry(stats); err != nil {
		g.logger.Error("failed to write telemetry", "error", err)
	}
}
