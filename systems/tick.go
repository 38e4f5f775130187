package systems

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/tardigrade/colony"
	"github.com/pthm-cable/tardigrade/random"
)

// TickReport is what one scheduler tick surfaces.
type TickReport struct {
	Tick        int64
	Environment colony.Environment
	Aged        int
	Attack      *AttackResult // nil unless an attack resolved this tick
}

// LogValue implements slog.LogValuer.
func (r TickReport) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("tick", r.Tick),
		slog.Float64("humidity", r.Environment.Humidity),
		slog.Float64("temperature", r.Environment.Temperature),
		slog.Int("aged", r.Aged),
	}
	if r.Attack != nil {
		attrs = append(attrs, slog.Any("attack", *r.Attack))
	}
	return slog.GroupValue(attrs...)
}

// Tick runs the three periodic phases in order: environment drift,
// aging, attack check.
func (e *Engine) Tick(st *colony.State, now time.Time, src random.Source) TickReport {
	st.Tick++
	return TickReport{
		Tick:        st.Tick,
		Environment: e.DriftEnvironment(st, src),
		Aged:        e.AgeColony(st),
		Attack:      e.CheckAttack(st, now, src),
	}
}
