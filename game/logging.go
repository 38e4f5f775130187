package game

import (
	"log/slog"
)

// reject logs a refused call at debug level and returns err unchanged.
func (g *Game) reject(op string, err error) error {
	g.logger.Debug("call rejected", "op", op, "error", err)
	return err
}

// logWorldState logs a one-line summary of the colony.
func (g *Game) logWorldState() {
	st := g.state
	g.logger.Info("world",
		"tick", st.Tick,
		"now", g.now,
		"colony", st.Len(),
		"dormant", st.DormantCount(),
		"defenders", st.DefenderCount(),
		"discovered", len(st.Discovered),
		slog.Float64("threat", st.ThreatLevel),
		slog.Group("environment",
			slog.Float64("humidity", st.Environment.Humidity),
			slog.Float64("temperature", st.Environment.Temperature),
			slog.String("sunlight", st.Environment.Sunlight.String()),
		),
	)
}
