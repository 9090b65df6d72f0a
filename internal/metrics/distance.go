package metrics

import (
	"math"

	"github.com/san-kum/randwalk/internal/walk"
)

type FinalDistance struct {
	name string
	last float64
}

func NewFinalDistance() *FinalDistance {
	return &FinalDistance{name: "final_distance"}
}

func (f *FinalDistance) Name() string { return f.name }

func (f *FinalDistance) Observe(p walk.Point, step int) { f.last = p.Radius() }

func (f *FinalDistance) Value() float64 { return f.last }

func (f *FinalDistance) Reset() { f.last = 0 }

type MaxRadius struct {
	name string
	max  float64
}

func NewMaxRadius() *MaxRadius {
	return &MaxRadius{name: "max_radius"}
}

func (m *MaxRadius) Name() string { return m.name }

func (m *MaxRadius) Observe(p walk.Point, step int) { m.max = math.Max(m.max, p.Radius()) }

func (m *MaxRadius) Value() float64 { return m.max }

func (m *MaxRadius) Reset() { m.max = 0 }

type MeanRadius struct {
	name    string
	sum     float64
	samples int
}

func NewMeanRadius() *MeanRadius {
	return &MeanRadius{name: "mean_radius"}
}

func (m *MeanRadius) Name() string { return m.name }

func (m *MeanRadius) Observe(p walk.Point, step int) {
	m.sum += p.Radius()
	m.samples++
}

func (m *MeanRadius) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanRadius) Reset() {
	m.sum = 0
	m.samples = 0
}

type RMSRadius struct {
	name    string
	sumSq   float64
	samples int
}

func NewRMSRadius() *RMSRadius {
	return &RMSRadius{name: "rms_radius"}
}

func (r *RMSRadius) Name() string { return r.name }

func (r *RMSRadius) Observe(p walk.Point, step int) {
	r.sumSq += p.X*p.X + p.Y*p.Y
	r.samples++
}

func (r *RMSRadius) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return math.Sqrt(r.sumSq / float64(r.samples))
}

func (r *RMSRadius) Reset() {
	r.sumSq = 0
	r.samples = 0
}
