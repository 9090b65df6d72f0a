package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/randwalk/internal/view"
	"github.com/san-kum/randwalk/internal/walk"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Bold(true)
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)
	keyCap  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

const (
	fieldSteps = iota
	fieldMaxStep
	fieldMode
	fieldCount
)

var fieldNames = [fieldCount]string{"steps", "max step", "mode"}

const (
	stateForm = iota
	stateSim
)

// Form collects walk parameters and, once they validate, hands over to a
// live Model.
type Form struct {
	state   int
	cursor  int
	steps   string
	maxStep string
	mode    view.Mode
	base    Options
	err     error
	live    Model
}

// NewForm pre-fills the fields from opts. Seed, FPS and theme are passed
// through to every run started from the form.
func NewForm(opts Options) Form {
	return Form{
		state:   stateForm,
		steps:   strconv.Itoa(opts.Params.Steps),
		maxStep: strconv.FormatFloat(opts.Params.MaxStepLength, 'g', -1, 64),
		mode:    opts.Mode,
		base:    opts,
	}
}

func (f Form) Init() tea.Cmd { return nil }

func (f Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if f.state == stateSim {
		next, cmd := f.live.Update(msg)
		f.live = next.(Model)
		return f, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}
	switch key.String() {
	case "ctrl+c", "esc":
		return f, tea.Quit
	case "up", "shift+tab":
		f.cursor = (f.cursor + fieldCount - 1) % fieldCount
	case "down", "tab":
		f.cursor = (f.cursor + 1) % fieldCount
	case "left", "right", " ":
		if f.cursor == fieldMode {
			f.mode = f.mode.Next()
		}
	case "backspace":
		if buf := f.field(); buf != nil && len(*buf) > 0 {
			*buf = (*buf)[:len(*buf)-1]
		}
	case "enter":
		return f.start()
	default:
		if buf := f.field(); buf != nil && len(key.Runes) == 1 {
			c := key.Runes[0]
			if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
				*buf += string(c)
			}
		}
	}
	return f, nil
}

func (f *Form) field() *string {
	switch f.cursor {
	case fieldSteps:
		return &f.steps
	case fieldMaxStep:
		return &f.maxStep
	}
	return nil
}

// start validates the raw field text. On failure the form stays up with
// the error shown under the fields.
func (f Form) start() (tea.Model, tea.Cmd) {
	p, err := walk.ParseParams(f.steps, f.maxStep)
	if err != nil {
		f.err = err
		return f, nil
	}
	p.Seed = f.base.Params.Seed

	opts := f.base
	opts.Params = p
	opts.Mode = f.mode
	live, err := NewModel(opts)
	if err != nil {
		f.err = err
		return f, nil
	}

	f.err = nil
	f.live = live
	f.state = stateSim
	return f, live.Init()
}

// Err returns the last validation error shown on the form.
func (f Form) Err() error { return f.err }

func (f Form) View() string {
	if f.state == stateSim {
		return f.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + cyan.Render("RANDWALK") + "\n    " + dim.Render("2d random walk generator") + "\n    " + dim.Render("─────────────────────────") + "\n\n")

	values := [fieldCount]string{f.steps, f.maxStep, f.mode.String()}
	for i, name := range fieldNames {
		val := values[i]
		if i == f.cursor && i != fieldMode {
			val += "_"
		}
		if i == f.cursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", cyan.Render("▸"), white.Render(fmt.Sprintf("%-10s", name)), magenta.Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", dim.Render(fmt.Sprintf("  %-10s", name)), dimmer.Render(val)))
		}
	}

	if f.err != nil {
		b.WriteString("\n    " + red.Render(f.err.Error()) + "\n")
	}

	b.WriteString("\n    " + keyCap.Render("↑/↓") + dim.Render(" select  ") + keyCap.Render("←/→") + dim.Render(" mode  ") + keyCap.Render("enter") + dim.Render(" start  ") + keyCap.Render("esc") + dim.Render(" quit") + "\n")
	return b.String()
}

// RunInteractive shows the parameter form, then the animation.
func RunInteractive(opts Options) error {
	_, err := tea.NewProgram(NewForm(opts), tea.WithAltScreen()).Run()
	return err
}
