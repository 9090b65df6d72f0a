package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/randwalk/internal/metrics"
	"github.com/san-kum/randwalk/internal/view"
	"github.com/san-kum/randwalk/internal/walk"
)

const (
	canvasWidth  = 60
	canvasHeight = 22
	chartWidth   = 30
)

// tickMsg advances the run it was scheduled for. seq changes on every pause
// so a resumed run never ends up with two tick chains.
type tickMsg struct {
	id  view.RunID
	seq int
}

// screen is the Surface the session renders into. View reads it back.
type screen struct {
	frame   view.Payload
	canvas  *Canvas
	blank   bool
	stopped int
}

func newScreen(w, h int) *screen {
	return &screen{canvas: NewCanvas(w, h), blank: true}
}

func (s *screen) Render(p view.Payload) error {
	s.frame = p
	s.blank = false
	DrawPayload(s.canvas, p)
	return nil
}

func (s *screen) Clear() error {
	s.frame = view.Payload{}
	s.blank = true
	s.canvas.Clear()
	return nil
}

func (s *screen) StopAnimation() { s.stopped++ }

func (s *screen) resize(w, h int) {
	s.canvas = NewCanvas(w, h)
	if !s.blank {
		DrawPayload(s.canvas, s.frame)
	}
}

type Options struct {
	Params walk.Params
	Mode   view.Mode
	FPS    int
	Theme  string
}

// Model animates one walk at a time, one step per tick.
type Model struct {
	sess     *view.Session
	screen   *screen
	params   walk.Params
	interval time.Duration
	theme    Theme
	styles   styles
	paused   bool
	seq      int
	showHelp bool
	err      error
	quitting bool
}

// NewModel starts the first run immediately; invalid parameters are
// reported here rather than on the first tick.
func NewModel(opts Options) (Model, error) {
	theme, err := LookupTheme(opts.Theme)
	if opts.Theme == "" {
		err = nil
	}
	if err != nil {
		return Model{}, err
	}

	scr := newScreen(canvasWidth, canvasHeight)
	m := Model{
		sess:     view.NewSession(scr, opts.Mode),
		screen:   scr,
		params:   opts.Params,
		interval: frameInterval(opts.FPS),
		theme:    theme,
		styles:   newStyles(theme),
	}
	if _, err := m.sess.Start(opts.Params); err != nil {
		return Model{}, err
	}
	return m, nil
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}

// Session exposes the underlying session, mainly for tests and the CLI.
func (m Model) Session() *view.Session { return m.sess }

func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	if m.sess.Status() != view.Running {
		return nil
	}
	msg := tickMsg{id: m.sess.RunID(), seq: m.seq}
	if m.interval == 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return msg })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		w := max(msg.Width-50, 10)
		h := max(msg.Height-6, 5)
		m.screen.resize(min(w, 120), min(h, 40))
	case tickMsg:
		if msg.id != m.sess.RunID() || msg.seq != m.seq || m.paused {
			return m, nil
		}
		if _, err := m.sess.Tick(msg.id); err != nil {
			m.err = err
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.sess.Stop()
		m.quitting = true
		return m, tea.Quit
	case " ":
		if m.sess.Status() != view.Running {
			return m, nil
		}
		m.paused = !m.paused
		m.seq++
		if !m.paused {
			return m, m.tick()
		}
	case "s":
		m.paused = false
		m.seq++
		if _, err := m.sess.Start(m.params); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		return m, m.tick()
	case "r":
		m.paused = false
		m.seq++
		m.err = m.sess.Reset()
	case "m":
		m.err = m.sess.SetMode(m.sess.Mode().Next())
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.styles = newStyles(m.theme)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m Model) statusLine() string {
	switch {
	case m.paused:
		return m.styles.paused.Render("paused")
	case m.sess.Status() == view.Running:
		return m.styles.running.Render(m.sess.Status().String())
	default:
		return m.styles.value.Render(m.sess.Status().String())
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	art := m.styles.path
	if m.sess.Mode() == view.Distribution {
		art = m.styles.bars
	}
	canvasView := m.styles.canvas.Render(art.Render(m.screen.canvas.String()))

	st := m.sess.State()
	var s strings.Builder
	s.WriteString(m.styles.header.Render("RANDOM WALK") + "\n")
	s.WriteString(m.statusLine() + "\n")
	s.WriteString(m.styles.value.Render(fmt.Sprintf("current step: %d", st.Step())) + "\n\n")

	s.WriteString(m.styles.muted.Render(ProgressBar(st.Step(), m.params.Steps, chartWidth)) + "\n")

	if radii := st.Radii(); len(radii) > 1 {
		chart := asciigraph.Plot(radii, asciigraph.Height(5), asciigraph.Width(chartWidth), asciigraph.Caption("distance"))
		s.WriteString(m.styles.graph.Render(chart) + "\n")
	}

	stats := metrics.Compute(st)
	s.WriteString(m.row("Mode", m.sess.Mode().String()))
	s.WriteString(m.row("Steps", fmt.Sprintf("%d", m.params.Steps)))
	s.WriteString(m.row("Max step", fmt.Sprintf("%.3f", m.params.MaxStepLength)))
	if m.sess.Seed() != 0 {
		s.WriteString(m.row("Seed", fmt.Sprintf("%d", m.sess.Seed())))
	}
	s.WriteString(m.row("Distance", fmt.Sprintf("%.3f", stats["final_distance"])))
	s.WriteString(m.row("Max radius", fmt.Sprintf("%.3f", stats["max_radius"])))
	s.WriteString(m.row("Expected RMS", fmt.Sprintf("%.3f", metrics.ExpectedRMS(st.Step(), m.params.MaxStepLength))))
	s.WriteString(m.row("Theme", m.theme.Name))

	if m.err != nil {
		s.WriteString("\n" + m.styles.err.Render(m.err.Error()) + "\n")
	}
	s.WriteString(m.styles.help.Render("SP:Pause S:Start R:Reset\nM:Mode T:Theme ?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

func (m Model) row(label, value string) string {
	return m.styles.label.Render(label) + m.styles.value.Render(value) + "\n"
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  S        - Start a new walk         ║
║  R        - Reset to the origin      ║
║  M        - Trajectory/Distribution  ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// RunLive animates a walk with opts until the user quits.
func RunLive(opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
