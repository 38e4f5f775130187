package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/tardigrade/telemetry"
)

// Options configures a game session.
type Options struct {
	Seed      int64     // drives the catalog, every outcome roll and id tiebreaks
	Start     time.Time // simulated clock origin; zero means time.Now()
	OutputDir string    // CSV output directory; empty disables file output
	LogStats  bool      // log each flushed stats window

	// Logger receives session logs. Nil uses slog.Default().
	Logger *slog.Logger

	// StatsCallback is called with each flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}
