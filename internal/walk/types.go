package walk

import (
	"math"
	"strconv"
	"strings"
)

type Point struct {
	X, Y float64
}

// Origin is the first point of every walk.
var Origin = Point{}

func (p Point) Radius() float64 {
	return math.Hypot(p.X, p.Y)
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) IsValid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

type Params struct {
	Steps         int
	MaxStepLength float64
	Seed          uint64
}

func (p Params) Validate() error {
	if p.Steps < 0 {
		return &ParamError{Field: "steps", Value: strconv.Itoa(p.Steps), Err: ErrInvalidStepCount}
	}
	if p.MaxStepLength < 0 || math.IsNaN(p.MaxStepLength) || math.IsInf(p.MaxStepLength, 0) {
		return &ParamError{Field: "max_step_length", Value: strconv.FormatFloat(p.MaxStepLength, 'g', -1, 64), Err: ErrInvalidStepLength}
	}
	return nil
}

// ParseParams validates raw form input. Steps must parse as an integer and
// the maximum step length as a float.
func ParseParams(steps, maxStepLength string) (Params, error) {
	steps, maxStepLength = strings.TrimSpace(steps), strings.TrimSpace(maxStepLength)

	n, err := strconv.Atoi(steps)
	if err != nil {
		return Params{}, &ParamError{Field: "steps", Value: steps, Err: ErrInvalidStepCount}
	}
	l, err := strconv.ParseFloat(maxStepLength, 64)
	if err != nil {
		return Params{}, &ParamError{Field: "max_step_length", Value: maxStepLength, Err: ErrInvalidStepLength}
	}

	p := Params{Steps: n, MaxStepLength: l}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// State is the ordered sequence of visited points. It always holds at least
// the origin.
type State struct {
	Points []Point
}

func NewState() *State {
	return &State{Points: []Point{Origin}}
}

func NewStateWithCapacity(steps int) *State {
	if steps < 0 {
		steps = 0
	}
	pts := make([]Point, 1, steps+1)
	pts[0] = Origin
	return &State{Points: pts}
}

func (s *State) Step() int { return len(s.Points) - 1 }

func (s *State) Last() Point { return s.Points[len(s.Points)-1] }

func (s *State) Append(p Point) { s.Points = append(s.Points, p) }

func (s *State) Clone() *State {
	c := make([]Point, len(s.Points))
	copy(c, s.Points)
	return &State{Points: c}
}

// Radii returns the distance from the origin of every point.
func (s *State) Radii() []float64 {
	r := make([]float64, len(s.Points))
	for i, p := range s.Points {
		r[i] = p.Radius()
	}
	return r
}

// StepLengths returns the displacement magnitude between consecutive points.
func (s *State) StepLengths() []float64 {
	if len(s.Points) < 2 {
		return []float64{}
	}
	l := make([]float64, len(s.Points)-1)
	for i := 1; i < len(s.Points); i++ {
		l[i-1] = s.Points[i].Sub(s.Points[i-1]).Radius()
	}
	return l
}
