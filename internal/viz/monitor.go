package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gaitsim/internal/sim"
)

const (
	canvasWidth     = 60
	canvasHeight    = 22
	historyCapacity = 600
	maxStepsFrame   = 4096
	visibleChannels = 12
	frameRate       = 30
)

type TickMsg time.Time

// Builder creates a fresh session. The monitor calls it again on reset.
type Builder func() (*sim.Session, error)

type MonitorOptions struct {
	StepsPerFrame int
	AbortOnLimits bool
	Theme         string
}

// Monitor is a bubbletea model that steps a session and draws it.
type Monitor struct {
	name  string
	build Builder
	opts  MonitorOptions

	session  *sim.Session
	channels []string
	history  [][]float64
	selected int

	stepsPerFrame int
	running       bool
	abort         string
	err           error

	canvas   *Canvas
	camera   *Camera
	theme    Theme
	showHelp bool
}

// NewMonitor builds the first session and frames the camera on the model.
func NewMonitor(name string, build Builder, opts MonitorOptions) (Monitor, error) {
	if opts.StepsPerFrame <= 0 {
		opts.StepsPerFrame = 10
	}
	m := Monitor{
		name:          name,
		build:         build,
		opts:          opts,
		stepsPerFrame: opts.StepsPerFrame,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		camera:        NewCamera(),
		theme:         GetTheme(opts.Theme),
	}
	if err := m.reset(); err != nil {
		return Monitor{}, err
	}
	if scene, err := SceneOf(m.session.Model()); err == nil {
		m.camera.Fit(scene.Points())
	}
	return m, nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Monitor) Init() tea.Cmd { return tick() }

func (m Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.err == nil && m.abort == "" {
				m.running = !m.running
			}
		case "s":
			if !m.running {
				m.advance(1)
			}
		case "r":
			if err := m.reset(); err != nil {
				m.err = err
			}
		case "tab":
			m.cycleChannel(1)
		case "shift+tab":
			m.cycleChannel(-1)
		case "up", "k":
			m.stepsPerFrame = min(maxStepsFrame, m.stepsPerFrame*2)
		case "down", "j":
			m.stepsPerFrame = max(1, m.stepsPerFrame/2)
		case "x":
			m.camera.Rotate(0.1, 0)
		case "X":
			m.camera.Rotate(-0.1, 0)
		case "y":
			m.camera.Rotate(0, 0.1)
		case "Y":
			m.camera.Rotate(0, -0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "t":
			m.theme = m.theme.Next()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.advance(m.stepsPerFrame)
		}
		return m, tick()
	}
	return m, nil
}

func (m *Monitor) reset() error {
	s, err := m.build()
	if err != nil {
		return err
	}
	m.session = s
	m.channels = s.Model().Channels()
	m.history = make([][]float64, len(m.channels))
	m.selected = min(m.selected, max(0, len(m.channels)-1))
	m.running = true
	m.abort = ""
	m.err = nil
	m.record()
	return nil
}

// advance steps the session n times and records one sample. A step error
// or, with AbortOnLimits, an exceeded limit stops the monitor.
func (m *Monitor) advance(n int) {
	if m.err != nil || m.abort != "" {
		return
	}
	for i := 0; i < n; i++ {
		if err := m.session.Step(); err != nil {
			m.err = err
			m.running = false
			break
		}
		if reason, ok := m.session.Abort(); ok && m.opts.AbortOnLimits {
			m.abort = reason
			m.running = false
			break
		}
	}
	m.record()
}

func (m *Monitor) record() {
	sample := m.session.Sample()
	for i, v := range sample.Values {
		if i >= len(m.history) {
			break
		}
		h := append(m.history[i], v)
		if len(h) > historyCapacity {
			h = h[len(h)-historyCapacity:]
		}
		m.history[i] = h
	}
}

func (m *Monitor) cycleChannel(dir int) {
	if len(m.channels) == 0 {
		return
	}
	m.selected = (m.selected + dir + len(m.channels)) % len(m.channels)
}

// Channel returns the selected channel and its recorded history.
func (m Monitor) Channel() (string, []float64) {
	if len(m.channels) == 0 {
		return "", nil
	}
	return m.channels[m.selected], m.history[m.selected]
}

func (m Monitor) Session() *sim.Session { return m.session }
func (m Monitor) Running() bool         { return m.running }
func (m Monitor) StepsPerFrame() int    { return m.stepsPerFrame }

// Status is a one-line description of the monitor state.
func (m Monitor) Status() string {
	switch {
	case m.err != nil:
		return "ERROR: " + m.err.Error()
	case m.abort != "":
		return "ABORTED: " + m.abort
	case m.running:
		return "RUNNING"
	}
	return "PAUSED"
}

func (m Monitor) statusStyle(st styles) lipgloss.Style {
	switch {
	case m.err != nil, m.abort != "":
		return st.failed
	case m.running:
		return st.running
	}
	return st.paused
}

func (m Monitor) drawCanvas() string {
	m.canvas.Clear()
	scene, err := SceneOf(m.session.Model())
	if err == nil {
		Render(m.canvas, scene, m.camera)
	}
	return m.canvas.String()
}

func (m Monitor) View() string {
	st := m.theme.styles()
	canvasView := st.canvas.Render(m.drawCanvas())

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(m.statusStyle(st).Render(m.Status()) + "\n\n")
	s.WriteString(st.label.Render("Time") + st.value.Render(fmt.Sprintf("%.4fs", m.session.Time())) + "\n")
	s.WriteString(st.label.Render("Steps") + st.value.Render(fmt.Sprintf("%d", m.session.Steps())) + "\n")
	s.WriteString(st.label.Render("Steps/frame") + st.value.Render(fmt.Sprintf("%d", m.stepsPerFrame)) + "\n\n")

	name, hist := m.Channel()
	if len(hist) > 1 {
		chart := asciigraph.Plot(hist, asciigraph.Height(6), asciigraph.Width(40), asciigraph.Caption(name))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	first := max(0, min(m.selected-visibleChannels/2, len(m.channels)-visibleChannels))
	last := min(len(m.channels), first+visibleChannels)
	for i := first; i < last; i++ {
		v := 0.0
		if h := m.history[i]; len(h) > 0 {
			v = h[len(h)-1]
		}
		line := fmt.Sprintf("%-32s %12.5g", m.channels[i], v)
		if i == m.selected {
			s.WriteString(st.active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.value.Render(line) + "\n")
		}
	}
	s.WriteString(st.help.Render("\nspace pause  s step  r reset  tab channel  ? help  q quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
  Space      pause or resume
  S          single step while paused
  R          rebuild the model and restart
  Tab        next channel (Shift+Tab previous)
  Up/Down    double or halve steps per frame
  X/Y        rotate the view (Shift reverses)
  +/-        zoom
  T          cycle themes
  ?          toggle this help
  Q          quit
`

// Run shows m full screen until the user quits.
func Run(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
