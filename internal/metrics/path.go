package metrics

import "github.com/san-kum/randwalk/internal/walk"

// PathLength sums the lengths of all steps taken.
type PathLength struct {
	name    string
	prev    walk.Point
	total   float64
	started bool
}

func NewPathLength() *PathLength {
	return &PathLength{name: "path_length"}
}

func (p *PathLength) Name() string { return p.name }

func (p *PathLength) Observe(pt walk.Point, step int) {
	if p.started {
		p.total += pt.Sub(p.prev).Radius()
	}
	p.prev = pt
	p.started = true
}

func (p *PathLength) Value() float64 { return p.total }

func (p *PathLength) Reset() {
	p.prev = walk.Origin
	p.total = 0
	p.started = false
}
