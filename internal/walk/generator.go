package walk

import (
	"iter"
	"math"
	"math/rand/v2"
	"time"
)

// Generator produces exactly Params.Steps points after the origin. It is
// single pass: once exhausted it stays exhausted.
type Generator struct {
	params    Params
	seed      uint64
	rng       *rand.Rand
	last      Point
	remaining int
}

func NewGenerator(p Params) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	seed := p.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{
		params:    p,
		seed:      seed,
		rng:       rand.New(rand.NewPCG(seed, seed)),
		last:      Origin,
		remaining: p.Steps,
	}, nil
}

func (g *Generator) Params() Params { return g.params }

// Seed returns the seed actually used, which differs from Params().Seed when
// that was zero.
func (g *Generator) Seed() uint64 { return g.seed }

func (g *Generator) Remaining() int { return g.remaining }

// Next returns the next point of the walk, or false when the walk is done.
func (g *Generator) Next() (Point, bool) {
	if g.remaining <= 0 {
		return Point{}, false
	}
	g.remaining--

	angle := g.rng.Float64() * 2 * math.Pi
	length := g.rng.Float64() * g.params.MaxStepLength

	g.last = Point{
		X: g.last.X + length*math.Cos(angle),
		Y: g.last.Y + length*math.Sin(angle),
	}
	return g.last, true
}

func (g *Generator) Points() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for {
			p, ok := g.Next()
			if !ok || !yield(p) {
				return
			}
		}
	}
}

// Run generates a complete walk.
func Run(p Params) (*State, error) {
	g, err := NewGenerator(p)
	if err != nil {
		return nil, err
	}
	st := NewStateWithCapacity(p.Steps)
	for pt := range g.Points() {
		st.Append(pt)
	}
	return st, nil
}
