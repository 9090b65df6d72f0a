package viz

import (
	"math"

	"github.com/san-kum/randwalk/internal/view"
	"github.com/san-kum/randwalk/internal/walk"
)

// projection maps walk coordinates onto canvas dots with one scale for both
// axes, so the path keeps its shape.
type projection struct {
	cx, cy float64
	scale  float64
	w, h   int
}

func newProjection(pts []walk.Point, w, h int) projection {
	minX, maxX, minY, maxY := view.Bounds(pts)
	spanX, spanY := maxX-minX, maxY-minY

	// one dot of border on each side
	scale := 1.0
	if math.Max(spanX, spanY) > 0 {
		scale = math.Min(float64(w-2)/math.Max(spanX, 1e-12), float64(h-2)/math.Max(spanY, 1e-12))
	}
	return projection{
		cx:    (minX + maxX) / 2,
		cy:    (minY + maxY) / 2,
		scale: scale,
		w:     w,
		h:     h,
	}
}

func (p projection) apply(pt walk.Point) (int, int) {
	x := float64(p.w)/2 + (pt.X-p.cx)*p.scale
	y := float64(p.h)/2 - (pt.Y-p.cy)*p.scale
	return int(math.Round(x)), int(math.Round(y))
}

// DrawTrajectory draws pts as connected segments fitted to the canvas.
func DrawTrajectory(c *Canvas, pts []walk.Point) {
	if len(pts) == 0 {
		return
	}
	w, h := c.Dots()
	proj := newProjection(pts, w, h)

	x0, y0 := proj.apply(pts[0])
	c.Set(x0, y0)
	for _, pt := range pts[1:] {
		x1, y1 := proj.apply(pt)
		c.DrawLine(x0, y0, x1, y1)
		x0, y0 = x1, y1
	}
}

// DrawHistogram draws one bar per bin from the bottom edge, scaled so the
// tallest bin fills the canvas height.
func DrawHistogram(c *Canvas, bins []view.Bin) {
	top := view.MaxCount(bins)
	if len(bins) == 0 || top == 0 {
		return
	}
	w, h := c.Dots()

	for i, b := range bins {
		if b.Count == 0 {
			continue
		}
		x0 := i * w / len(bins)
		x1 := (i+1)*w/len(bins) - 2
		if x1 < x0 {
			x1 = x0
		}
		barH := max(b.Count*h/top, 1)
		c.FillRect(x0, h-barH, x1, h-1)
	}
}

// DrawPayload clears c and draws p in its own mode.
func DrawPayload(c *Canvas, p view.Payload) {
	c.Clear()
	if p.Mode == view.Distribution {
		DrawHistogram(c, p.Histogram())
		return
	}
	DrawTrajectory(c, p.Points)
}
