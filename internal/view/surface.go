package view

// Surface draws payloads. Implementations live outside this package.
type Surface interface {
	Render(p Payload) error
	Clear() error
	// StopAnimation is called when the active run is halted before it
	// completes.
	StopAnimation()
}

// Recorder is an in-memory Surface that keeps every frame it is handed.
type Recorder struct {
	Frames []Payload
	Clears int
	Stops  int
	Limit  int
}

// NewRecorder keeps at most limit frames; zero keeps all of them.
func NewRecorder(limit int) *Recorder {
	return &Recorder{Limit: limit}
}

func (r *Recorder) Render(p Payload) error {
	r.Frames = append(r.Frames, p)
	if r.Limit > 0 && len(r.Frames) > r.Limit {
		r.Frames = r.Frames[len(r.Frames)-r.Limit:]
	}
	return nil
}

func (r *Recorder) Clear() error {
	r.Clears++
	r.Frames = r.Frames[:0]
	return nil
}

func (r *Recorder) StopAnimation() { r.Stops++ }

// Last returns the most recent frame.
func (r *Recorder) Last() (Payload, bool) {
	if len(r.Frames) == 0 {
		return Payload{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}

// Multi fans every call out to several surfaces and returns the first error.
type Multi []Surface

func (m Multi) Render(p Payload) error {
	var first error
	for _, s := range m {
		if err := s.Render(p); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m Multi) Clear() error {
	var first error
	for _, s := range m {
		if err := s.Clear(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m Multi) StopAnimation() {
	for _, s := range m {
		s.StopAnimation()
	}
}
