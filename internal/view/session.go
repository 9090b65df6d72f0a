package view

import (
	"github.com/san-kum/randwalk/internal/walk"
)

type Status int

const (
	Idle Status = iota
	Running
	Completed
)

func (s Status) String() string {
	switch s {
	case Running:
		return "simulation running"
	case Completed:
		return "simulation complete"
	default:
		return "waiting for start"
	}
}

// RunID identifies one started run. Ticks scheduled for an earlier run carry
// an old id and are ignored.
type RunID uint64

// Session owns the walk state of a single view and at most one active
// generator. It is driven one step per Tick.
type Session struct {
	surface Surface
	mode    Mode
	state   *walk.State
	gen     *walk.Generator
	params  walk.Params
	seed    uint64
	status  Status
	id      RunID
	lastID  RunID
	hasData bool
}

func NewSession(s Surface, m Mode) *Session {
	return &Session{
		surface: s,
		mode:    m,
		state:   walk.NewState(),
		status:  Idle,
	}
}

func (s *Session) Status() Status { return s.status }
func (s *Session) Mode() Mode     { return s.mode }
func (s *Session) Step() int      { return s.state.Step() }
func (s *Session) RunID() RunID   { return s.id }

// Params returns the parameters of the most recent run.
func (s *Session) Params() walk.Params { return s.params }

// Seed returns the effective seed of the most recent run.
func (s *Session) Seed() uint64 { return s.seed }

// State returns a copy of the current walk.
func (s *Session) State() *walk.State { return s.state.Clone() }

// Remaining returns the steps left in the active run.
func (s *Session) Remaining() int {
	if s.gen == nil {
		return 0
	}
	return s.gen.Remaining()
}

// Start validates p and begins a new run. An active run is stopped first.
// On a validation error nothing changes.
func (s *Session) Start(p walk.Params) (RunID, error) {
	gen, err := walk.NewGenerator(p)
	if err != nil {
		return 0, err
	}

	s.Stop()

	s.lastID++
	s.id = s.lastID
	s.params = p
	s.seed = gen.Seed()
	s.state = walk.NewStateWithCapacity(p.Steps)
	s.gen = gen
	s.hasData = true
	s.status = Running
	if gen.Remaining() == 0 {
		s.gen = nil
		s.status = Completed
	}

	return s.id, s.render()
}

// Tick advances the run identified by id by exactly one step and renders
// it. It reports whether a step was taken.
func (s *Session) Tick(id RunID) (bool, error) {
	if s.lastID == 0 {
		return false, ErrNoRun
	}
	if id != s.id || s.status != Running || s.gen == nil {
		return false, nil
	}

	p, ok := s.gen.Next()
	if !ok {
		s.gen = nil
		s.status = Completed
		return false, nil
	}
	s.state.Append(p)
	if s.gen.Remaining() == 0 {
		s.gen = nil
		s.status = Completed
	}
	return true, s.render()
}

// SetMode switches the visualization and re-renders the existing data
// without advancing the walk.
func (s *Session) SetMode(m Mode) error {
	s.mode = m
	if !s.hasData {
		return nil
	}
	return s.render()
}

// Stop halts the active run. Data already generated is kept.
func (s *Session) Stop() {
	if s.status != Running {
		return
	}
	s.gen = nil
	s.status = Idle
	s.id = 0
	s.surface.StopAnimation()
}

// Reset stops any run and returns to Idle with only the origin.
func (s *Session) Reset() error {
	s.Stop()
	s.gen = nil
	s.id = 0
	s.state = walk.NewState()
	s.status = Idle
	s.hasData = false
	return s.surface.Clear()
}

// Payload derives the current frame without rendering it.
func (s *Session) Payload() Payload {
	return Build(s.state, s.mode)
}

func (s *Session) render() error {
	return s.surface.Render(s.Payload())
}
