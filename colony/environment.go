package colony

// Sunlight is the habitat's light level.
type Sunlight uint8

const (
	SunLow Sunlight = iota
	SunMiddle
	SunHigh
)

// String returns the level's stable key.
func (s Sunlight) String() string {
	switch s {
	case SunLow:
		return "low"
	case SunMiddle:
		return "middle"
	case SunHigh:
		return "high"
	}
	return "unknown"
}

// ParseSunlight resolves a key produced by String.
func ParseSunlight(s string) (Sunlight, bool) {
	switch s {
	case "low":
		return SunLow, true
	case "middle":
		return SunMiddle, true
	case "high":
		return SunHigh, true
	}
	return 0, false
}

// Environment is the colony's current climate.
type Environment struct {
	Humidity    float64 // 0..100
	Temperature float64 // -10..50
	Sunlight    Sunlight
}
