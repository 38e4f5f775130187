package systems

import (
	"fmt"

	"github.com/pthm-cable/tardigrade/colony"
)

// Release removes an individual from the colony.
func (e *Engine) Release(st *colony.State, id colony.IndividualID) (*colony.Individual, error) {
	in, err := st.Remove(id)
	if err != nil {
		return nil, fmt.Errorf("release: %w", err)
	}
	return in, nil
}

// Feed adds the configured ration to an individual's nutrition, capped at the maximum.
// It returns the new nutrition.
func (e *Engine) Feed(st *colony.State, id colony.IndividualID) (float64, error) {
	in, err := st.Get(id)
	if err != nil {
		return 0, fmt.Errorf("feed: %w", err)
	}
	cfg := e.cfg.Nutrition
	in.Nutrition = clampFloat(in.Nutrition+cfg.FeedAmount, 0, cfg.Max)
	return in.Nutrition, nil
}
