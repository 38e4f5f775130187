package colony

// ExperimentType is a resistance lab trial.
type ExperimentType uint8

const (
	Impact ExperimentType = iota
	Heat
	Cold
)

// ExperimentTypes lists every trial.
var ExperimentTypes = []ExperimentType{Impact, Heat, Cold}

// String returns the trial's stable key.
func (e ExperimentType) String() string {
	switch e {
	case Impact:
		return "impact"
	case Heat:
		return "heat"
	case Cold:
		return "cold"
	}
	return "unknown"
}

// ParseExperimentType resolves a key produced by String.
func ParseExperimentType(s string) (ExperimentType, bool) {
	for _, e := range ExperimentTypes {
		if e.String() == s {
			return e, true
		}
	}
	return 0, false
}

// ExperimentLog counts survived trials per individual and type.
// Entries are a history and are kept after the individual leaves the colony.
type ExperimentLog map[IndividualID]map[ExperimentType]int

// Record increments the counter for one survived trial and returns the new count.
func (l ExperimentLog) Record(id IndividualID, typ ExperimentType) int {
	rec, ok := l[id]
	if !ok {
		rec = make(map[ExperimentType]int)
		l[id] = rec
	}
	rec[typ]++
	return rec[typ]
}

// Count returns the survived trials for id and typ.
func (l ExperimentLog) Count(id IndividualID, typ ExperimentType) int {
	return l[id][typ]
}
