package random

// Script replays a fixed sequence of draws, cycling once exhausted.
// It makes outcome rolls reproducible in tests and replays.
type Script struct {
	values []float64
	pos    int
	drawn  int
}

// NewScript returns a source that yields values in order.
// An empty script always yields 0.
func NewScript(values ...float64) *Script {
	return &Script{values: values}
}

// Constant returns a source that always yields v.
func Constant(v float64) *Script {
	return NewScript(v)
}

// Float64 returns the next scripted value.
func (s *Script) Float64() float64 {
	s.drawn++
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.pos]
	s.pos = (s.pos + 1) % len(s.values)
	return v
}

// Drawn returns how many values have been consumed.
func (s *Script) Drawn() int {
	return s.drawn
}
