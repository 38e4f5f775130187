package systems

import (
	"github.com/pthm-cable/tardigrade/colony"
	"github.com/pthm-cable/tardigrade/random"
)

// DriftEnvironment nudges humidity then temperature by a uniform step
// centred on zero and clamps both to their ranges.
func (e *Engine) DriftEnvironment(st *colony.State, src random.Source) colony.Environment {
	cfg := e.cfg.Environment
	env := &st.Environment
	env.Humidity = clampFloat(env.Humidity+(src.Float64()-0.5)*cfg.HumidityDrift, cfg.HumidityMin, cfg.HumidityMax)
	env.Temperature = clampFloat(env.Temperature+(src.Float64()-0.5)*cfg.TempDrift, cfg.TemperatureMin, cfg.TemperatureMax)
	return *env
}

// AgeColony decays nutrition and advances age for every active individual.
// Dormant individuals are frozen. It returns how many individuals aged.
func (e *Engine) AgeColony(st *colony.State) int {
	decay := e.cfg.Nutrition.DecayPerTick
	n := 0
	for _, in := range st.Colony {
		if in.Dormant {
			continue
		}
		in.Nutrition = clampFloat(in.Nutrition-decay, 0, e.cfg.Nutrition.Max)
		in.Age++
		n++
	}
	return n
}
