package species

// Ability is a special trait tag carried by a species.
type Ability uint8

const (
	BasicSurvival Ability = iota
	DesiccationTolerance
	ColdTolerance
	Swift
	ExtremeDesiccation
	FreezeTolerance
	Crystallization
	Invisibility
	Gigantism
	Fission
	Regeneration
	Predation
	Cannibalism
	Immortality
	DimensionShift
	TimeStop
)

// String returns the ability's stable key.
func (a Ability) String() string {
	switch a {
	case BasicSurvival:
		return "basic_survival"
	case DesiccationTolerance:
		return "desiccation_tolerance"
	case ColdTolerance:
		return "cold_tolerance"
	case Swift:
		return "swift"
	case ExtremeDesiccation:
		return "extreme_desiccation"
	case FreezeTolerance:
		return "freeze_tolerance"
	case Crystallization:
		return "crystallization"
	case Invisibility:
		return "invisibility"
	case Gigantism:
		return "gigantism"
	case Fission:
		return "fission"
	case Regeneration:
		return "regeneration"
	case Predation:
		return "predation"
	case Cannibalism:
		return "cannibalism"
	case Immortality:
		return "immortality"
	case DimensionShift:
		return "dimension_shift"
	case TimeStop:
		return "time_stop"
	}
	return "unknown"
}

// Predatory reports whether the ability qualifies a holder for defense duty.
func (a Ability) Predatory() bool {
	return a == Predation || a == Cannibalism
}
