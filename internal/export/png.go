package export

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/san-kum/randwalk/internal/view"
	"github.com/san-kum/randwalk/internal/walk"
)

// TrajectoryPNG renders pts as a line chart.
func TrajectoryPNG(w io.Writer, pts []walk.Point, width, height int) error {
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
	}

	minX, maxX, minY, maxY := view.Bounds(pts)
	ch := chart.Chart{
		Title:  fmt.Sprintf("Random walk (%d steps)", max(len(pts)-1, 0)),
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{Name: "x", Range: paddedRange(minX, maxX)},
		YAxis: chart.YAxis{Name: "y", Range: paddedRange(minY, maxY)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "path",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: drawing.ColorBlue,
					StrokeWidth: 1.5,
					DotColor:    drawing.ColorRed,
					DotWidth:    2,
				},
			},
		},
	}
	return ch.Render(chart.PNG, w)
}

// HistogramPNG renders bins as a bar chart.
func HistogramPNG(w io.Writer, bins []view.Bin, width, height int) error {
	if view.MaxCount(bins) == 0 {
		return fmt.Errorf("histogram has no samples")
	}

	bars := make([]chart.Value, len(bins))
	for i, b := range bins {
		bars[i] = chart.Value{
			Value: float64(b.Count),
			Label: fmt.Sprintf("%.1f", (b.Lo+b.Hi)/2),
			Style: chart.Style{
				FillColor:   drawing.ColorBlue,
				StrokeColor: drawing.ColorBlack,
				StrokeWidth: 1,
			},
		}
	}

	bc := chart.BarChart{
		Title:  "Distance from origin",
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(view.MaxCount(bins))},
		},
		BarWidth:   max((width-100)/max(len(bins), 1)-4, 4),
		BarSpacing: 4,
		Bars:       bars,
	}
	return bc.Render(chart.PNG, w)
}

func PayloadPNG(w io.Writer, p view.Payload, width, height int) error {
	if p.Mode == view.Distribution {
		return HistogramPNG(w, p.Histogram(), width, height)
	}
	return TrajectoryPNG(w, p.Points, width, height)
}

func paddedRange(lo, hi float64) *chart.ContinuousRange {
	span := hi - lo
	if span == 0 {
		return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	return &chart.ContinuousRange{Min: lo - span*0.1, Max: hi + span*0.1}
}
