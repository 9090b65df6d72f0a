package export

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/san-kum/randwalk/internal/view"
	"github.com/san-kum/randwalk/internal/walk"
)

const (
	margin     = 40
	background = "fill:#0a0a0a"
	labelStyle = "fill:#888899;font-size:12px;font-family:monospace"
)

// TrajectorySVG draws pts as a connected path.
func TrajectorySVG(w io.Writer, pts []walk.Point, width, height int, strokeColor string) {
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Title("Random walk")
	canvas.Rect(0, 0, width, height, background)

	if len(pts) > 0 {
		f := newFrame(pts, width, height)

		xs := make([]int, len(pts))
		ys := make([]int, len(pts))
		for i, p := range pts {
			xs[i], ys[i] = f.project(p)
		}

		ox, oy := f.project(walk.Origin)
		canvas.Circle(ox, oy, 4, "fill:#ffff00")
		if len(pts) > 1 {
			canvas.Polyline(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:1.5", strokeColor))
		}
		canvas.Circle(xs[len(xs)-1], ys[len(ys)-1], 4, "fill:#ff00ff")
	}

	canvas.Text(margin, height-margin/3, fmt.Sprintf("steps: %d", max(len(pts)-1, 0)), labelStyle)
	canvas.End()
}

// HistogramSVG draws bins as vertical bars.
func HistogramSVG(w io.Writer, bins []view.Bin, width, height int, fillColor string) {
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Title("Distance from origin")
	canvas.Rect(0, 0, width, height, background)

	plotW, plotH := width-2*margin, height-2*margin
	top := view.MaxCount(bins)
	if len(bins) > 0 && top > 0 && plotW > 0 && plotH > 0 {
		barW := plotW / len(bins)
		canvas.Gstyle(fmt.Sprintf("fill:%s;stroke:#000000", fillColor))
		for i, b := range bins {
			h := b.Count * plotH / top
			canvas.Rect(margin+i*barW, margin+plotH-h, barW, h)
		}
		canvas.Gend()

		canvas.Line(margin, margin+plotH, margin+plotW, margin+plotH, "stroke:#444466")
		canvas.Text(margin, height-margin/3, fmt.Sprintf("%.2f", bins[0].Lo), labelStyle)
		canvas.Text(margin+plotW, height-margin/3, fmt.Sprintf("%.2f", bins[len(bins)-1].Hi), "text-anchor:end;"+labelStyle)
		canvas.Text(margin/4, margin, fmt.Sprintf("%d", top), labelStyle)
	}

	canvas.Text(width/2, margin/2, "distance", "text-anchor:middle;"+labelStyle)
	canvas.End()
}

// PayloadSVG renders a payload in its own mode.
func PayloadSVG(w io.Writer, p view.Payload, width, height int) {
	if p.Mode == view.Distribution {
		HistogramSVG(w, p.Histogram(), width, height, "#0077be")
		return
	}
	TrajectorySVG(w, p.Points, width, height, "#00ffff")
}

type frame struct {
	minX, minY     float64
	rangeX, rangeY float64
	width, height  int
}

// newFrame fits pts into the drawable area with 10% padding.
func newFrame(pts []walk.Point, width, height int) frame {
	minX, maxX, minY, maxY := view.Bounds(pts)

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		minX, rangeX = minX-0.5, 1
	}
	if rangeY == 0 {
		minY, rangeY = minY-0.5, 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1

	return frame{
		minX:   minX,
		minY:   minY,
		rangeX: rangeX * 1.2,
		rangeY: rangeY * 1.2,
		width:  width - 2*margin,
		height: height - 2*margin,
	}
}

func (f frame) project(p walk.Point) (int, int) {
	x := margin + int((p.X-f.minX)/f.rangeX*float64(f.width))
	y := margin + f.height - int((p.Y-f.minY)/f.rangeY*float64(f.height))
	return x, y
}
