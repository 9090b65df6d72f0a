package metrics

import (
	"math"

	"github.com/san-kum/randwalk/internal/walk"
)

type Metric interface {
	Name() string
	Observe(p walk.Point, step int)
	Value() float64
	Reset()
}

// Default returns the statistics recorded for every run.
func Default() []Metric {
	return []Metric{
		NewFinalDistance(),
		NewMaxRadius(),
		NewMeanRadius(),
		NewRMSRadius(),
		NewPathLength(),
	}
}

// Compute observes every point of st and returns the metric values by name.
func Compute(st *walk.State, ms ...Metric) map[string]float64 {
	if len(ms) == 0 {
		ms = Default()
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for i, p := range st.Points {
			m.Observe(p, i)
		}
		out[m.Name()] = m.Value()
	}
	return out
}

// ExpectedRMS is the root mean square end-to-end distance after n steps with
// lengths uniform in [0, maxLen]: E[L²] = maxLen²/3 per step.
func ExpectedRMS(n int, maxLen float64) float64 {
	if n <= 0 {
		return 0
	}
	return maxLen * math.Sqrt(float64(n)/3)
}
