package systems

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/tardigrade/colony"
	"github.com/pthm-cable/tardigrade/random"
	"github.com/pthm-cable/tardigrade/species"
)

// ExperimentKind discriminates lab outcomes.
type ExperimentKind uint8

const (
	ExperimentFatal ExperimentKind = iota
	ExperimentSurvived
)

// String returns the outcome's stable key.
func (k ExperimentKind) String() string {
	if k == ExperimentSurvived {
		return "survived"
	}
	return "fatal"
}

// ExperimentResult reports one lab trial.
type ExperimentResult struct {
	Kind       ExperimentKind
	Individual colony.IndividualID
	Species    species.ID
	Type       colony.ExperimentType
	Stat       int
	Threshold  int
	Count      int // survived trials of this type after the roll
}

// LogValue implements slog.LogValuer.
func (r ExperimentResult) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", r.Kind.String()),
		slog.String("type", r.Type.String()),
		slog.Int("stat", r.Stat),
		slog.Int("threshold", r.Threshold),
		slog.Int("count", r.Count),
	)
}

// ExperimentStat maps a trial to the species stat it tests.
func ExperimentStat(def *species.Definition, typ colony.ExperimentType) (int, bool) {
	switch typ {
	case colony.Impact:
		return def.Stats.Mobility, true
	case colony.Heat:
		return def.Stats.HeatResistance, true
	case colony.Cold:
		return def.Stats.ColdResistance, true
	}
	return 0, false
}

// PerformExperiment runs one lethal trial. A threshold in [1, max] is drawn;
// the individual survives iff its stat reaches it, otherwise it is removed.
func (e *Engine) PerformExperiment(st *colony.State, id colony.IndividualID, typ colony.ExperimentType, src random.Source) (ExperimentResult, error) {
	in, err := st.Get(id)
	if err != nil {
		return ExperimentResult{}, fmt.Errorf("experiment: %w", err)
	}
	def, err := e.definition(in)
	if err != nil {
		return ExperimentResult{}, err
	}
	stat, ok := ExperimentStat(def, typ)
	if !ok {
		return ExperimentResult{}, fmt.Errorf("experiment type %d: %w", typ, colony.ErrInvalidSelection)
	}

	res := ExperimentResult{
		Kind:       ExperimentFatal,
		Individual: id,
		Species:    def.ID,
		Type:       typ,
		Stat:       stat,
		Threshold:  random.IntN(src, e.cfg.Experiment.ThresholdMax) + 1,
	}
	if stat >= res.Threshold {
		res.Kind = ExperimentSurvived
		res.Count = st.Experiments.Record(id, typ)
		return res, nil
	}

	res.Count = st.Experiments.Count(id, typ)
	if _, err := st.Remove(id); err != nil {
		return res, err
	}
	return res, nil
}
