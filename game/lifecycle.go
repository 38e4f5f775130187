package game

import (
	"context"
	"time"

	"github.com/pthm-cable/tardigrade/systems"
	"github.com/pthm-cable/tardigrade/telemetry"
)

// Tick advances the simulated clock by one step and runs the periodic phases.
func (g *Game) Tick() systems.TickReport {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tickLocked()
}

func (g *Game) tickLocked() systems.TickReport {
	g.now = g.now.Add(g.cfg.Session.SimPerTick)
	rep := g.engine.Tick(g.state, g.now, g.rng)

	if a := rep.Attack; a != nil {
		g.emit(telemetry.NewAttackEvent(rep.Tick, a.Kind == systems.AttackRepelled, a.Power, a.DefenseBonus))
		for _, victim := range a.Casualties {
			g.recordDeath(victim, telemetry.CauseAttack)
		}
		g.logger.Info("attack", "result", *a)
	}

	g.flushTelemetry()
	return rep
}

// Advance runs n ticks back to back on the simulated clock and returns the
// attacks resolved along the way.
func (g *Game) Advance(n int) []systems.AttackResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	var attacks []systems.AttackResult
	for i := 0; i < n; i++ {
		if rep := g.tickLocked(); rep.Attack != nil {
			attacks = append(attacks, *rep.Attack)
		}
	}
	g.logWorldState()
	return attacks
}

// Run ticks once per configured interval until ctx is cancelled.
// onTick, if non-nil, is called after each tick outside the lock.
func (g *Game) Run(ctx context.Context, onTick func(systems.TickReport)) error {
	interval := g.cfg.Session.TickInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return g.stop(ctx)
		case <-ticker.C:
			// A cancel from the previous onTick wins over a pending tick.
			if ctx.Err() != nil {
				return g.stop(ctx)
			}
			rep := g.Tick()
			if onTick != nil {
				onTick(rep)
			}
		}
	}
}

func (g *Game) stop(ctx context.Context) error {
	g.mu.Lock()
	g.logWorldState()
	g.mu.Unlock()
	return ctx.Err()
}
