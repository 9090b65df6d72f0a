package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/san-kum/randwalk/internal/view"
	"github.com/san-kum/randwalk/internal/walk"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer draws frames as plain ANSI text. Frames arriving faster than
// the frame rate are skipped; Finish always draws the last one.
type LiveRenderer struct {
	out       io.Writer
	frameRate int
	lastFrame time.Time
	now       func() time.Time
	canvas    [][]rune
	last      view.Payload
	pending   bool
	frames    int
}

func NewLiveRenderer(out io.Writer, frameRate int) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		out:       out,
		frameRate: frameRate,
		now:       time.Now,
		canvas:    canvas,
	}
}

// Frames returns how many frames were actually written.
func (r *LiveRenderer) Frames() int { return r.frames }

func (r *LiveRenderer) Render(p view.Payload) error {
	r.last, r.pending = p, true
	if r.frameRate > 0 && !r.lastFrame.IsZero() && r.now().Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return nil
	}
	return r.draw(view.Running)
}

func (r *LiveRenderer) Clear() error {
	r.last, r.pending = view.Payload{}, false
	r.clear()
	_, err := io.WriteString(r.out, clearScreen)
	return err
}

func (r *LiveRenderer) StopAnimation() {}

// Finish draws the latest frame with the final status and restores the
// cursor.
func (r *LiveRenderer) Finish(status view.Status) error {
	if r.pending {
		if err := r.draw(status); err != nil {
			return err
		}
	}
	_, err := io.WriteString(r.out, showCursor)
	return err
}

func (r *LiveRenderer) Start() error {
	_, err := io.WriteString(r.out, hideCursor)
	return err
}

func (r *LiveRenderer) draw(status view.Status) error {
	r.lastFrame = r.now()
	r.pending = false
	r.frames++

	r.clear()
	if r.last.Mode == view.Distribution {
		r.drawHistogram(r.last.Histogram())
	} else {
		r.drawPath(r.last.Points)
	}
	_, err := io.WriteString(r.out, r.frame(status))
	return err
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) line(x1, y1, x2, y2 int, c rune) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		r.set(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// drawPath fits pts into the canvas. Terminal cells are about twice as tall
// as they are wide, so x is stretched by two.
func (r *LiveRenderer) drawPath(pts []walk.Point) {
	if len(pts) == 0 {
		return
	}
	minX, maxX, minY, maxY := view.Bounds(pts)
	span := math.Max((maxX-minX)*2, maxY-minY)
	scale := 1.0
	if span > 0 {
		scale = math.Min(float64(width-2)/math.Max((maxX-minX)*2, 1e-12), float64(height-2)/math.Max(maxY-minY, 1e-12))
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	project := func(p walk.Point) (int, int) {
		x := float64(width)/2 + (p.X-cx)*2*scale
		y := float64(height)/2 - (p.Y-cy)*scale
		return int(math.Round(x)), int(math.Round(y))
	}

	px, py := project(pts[0])
	for _, p := range pts[1:] {
		x, y := project(p)
		r.line(px, py, x, y, '*')
		px, py = x, y
	}

	ox, oy := project(walk.Origin)
	r.set(ox, oy, 'o')
	r.set(px, py, '@')
}

func (r *LiveRenderer) drawHistogram(bins []view.Bin) {
	top := view.MaxCount(bins)
	if len(bins) == 0 || top == 0 {
		return
	}

	bw := max(width/len(bins), 1)
	for i, b := range bins {
		bh := b.Count * (height - 1) / top
		if b.Count > 0 {
			bh = max(bh, 1)
		}
		for x := i * bw; x < (i+1)*bw-1; x++ {
			for y := height - 1; y >= height-bh; y-- {
				r.set(x, y, '#')
			}
		}
	}
}

func (r *LiveRenderer) frame(status view.Status) string {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  randwalk  %s  %s\n", r.last.Mode, status))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	b.WriteString(fmt.Sprintf("  current step: %d", r.last.Step))
	if n := len(r.last.Points); n > 0 {
		end := r.last.Points[n-1]
		b.WriteString(fmt.Sprintf("  x=%.2f y=%.2f r=%.2f", end.X, end.Y, end.Radius()))
	}
	b.WriteString("\n")
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
