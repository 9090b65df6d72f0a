package view

import (
	"math"

	"github.com/san-kum/randwalk/internal/walk"
)

// DefaultBins is the histogram bin count for the distribution view.
const DefaultBins = 20

// Payload is everything a surface needs for one redraw.
type Payload struct {
	Mode   Mode
	Step   int
	Points []walk.Point
	Radii  []float64
	Bins   int
}

// Build derives the payload for st under mode m. Radii are recomputed over
// the whole sequence every call.
func Build(st *walk.State, m Mode) Payload {
	p := Payload{Mode: m, Step: st.Step()}
	switch m {
	case Distribution:
		p.Radii = st.Radii()
		p.Bins = DefaultBins
	default:
		p.Points = make([]walk.Point, len(st.Points))
		copy(p.Points, st.Points)
	}
	return p
}

// Histogram buckets the payload radii. It returns nil for trajectory payloads.
func (p Payload) Histogram() []Bin {
	if p.Mode != Distribution {
		return nil
	}
	return Histogram(p.Radii, p.Bins)
}

type Bin struct {
	Lo, Hi float64
	Count  int
}

// Histogram splits [min, max] of values into equal-width bins. The last bin
// is closed on the right. A degenerate range is widened to [v-0.5, v+0.5].
func Histogram(values []float64, bins int) []Bin {
	if bins <= 0 {
		bins = DefaultBins
	}

	lo, hi := 0.0, 1.0
	if len(values) > 0 {
		lo, hi = values[0], values[0]
		for _, v := range values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		if lo == hi {
			lo, hi = lo-0.5, hi+0.5
		}
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Lo = lo + float64(i)*width
		out[i].Hi = lo + float64(i+1)*width
	}
	out[bins-1].Hi = hi

	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		out[idx].Count++
	}
	return out
}

// MaxCount returns the tallest bin.
func MaxCount(bins []Bin) int {
	m := 0
	for _, b := range bins {
		if b.Count > m {
			m = b.Count
		}
	}
	return m
}

// Bounds returns the bounding box of pts.
func Bounds(pts []walk.Point) (minX, maxX, minY, maxY float64) {
	if len(pts) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX = pts[0].X, pts[0].X
	minY, maxY = pts[0].Y, pts[0].Y
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return
}
