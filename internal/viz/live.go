package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/sorenkar/compliant/internal/sim"
	"github.com/sorenkar/compliant/internal/state"
)

const (
	canvasWidth     = 60
	canvasHeight    = 22
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model is the live bouncing-ball view. Each frame it advances the
// simulation by enough steps to track wall-clock time, then redraws.
type Model struct {
	simulator *sim.Simulator
	scn       *sim.Scenario
	st        *state.State

	sample  sim.Sample
	history []float64 // dissipated energy, for the chart
	running bool
	err     error

	canvas *Canvas
}

func NewModel(scn *sim.Scenario) Model {
	simulator := sim.New(scn)
	return Model{
		simulator: simulator,
		scn:       scn,
		st:        scn.InitialState(),
		history:   make([]float64, 0, historyCapacity),
		running:   true,
		canvas:    NewCanvas(canvasWidth, canvasHeight),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.st = m.scn.InitialState()
			m.history = m.history[:0]
			m.err = nil
			m.running = true
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.advance()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// advance runs one frame's worth of physics steps in wall-clock time.
func (m *Model) advance() {
	dt := m.scn.Cfg.Dt
	steps := int(1.0/60.0/dt + 0.5)
	if steps < 1 {
		steps = 1
	}
	for i := 0; i < steps; i++ {
		if err := m.simulator.Step(m.st, dt); err != nil {
			m.err = err
			return
		}
	}
	smp, err := m.simulator.Measure(m.st)
	if err != nil {
		m.err = err
		return
	}
	m.sample = smp
	m.history = append(m.history, smp.Dissipated)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("COMPLIANT BOUNCE") + "\n")
	if m.err != nil {
		s.WriteString(fmt.Sprintf("ERROR: %v\n", m.err))
	} else if m.running {
		s.WriteString("RUNNING\n\n")
	} else {
		s.WriteString("PAUSED\n\n")
	}

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Dissipated"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	smp := m.sample
	row := func(label, format string, v float64) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(fmt.Sprintf(format, v)) + "\n")
	}
	row("Time", "%.2fs", smp.Time)
	row("Height", "%.3fm", smp.Height)
	row("Depth", "%.4fm", smp.Depth)
	s.WriteString("\nENERGY\n")
	row("Kinetic", "%.3fJ", smp.Kinetic)
	row("Gravity", "%.3fJ", smp.Gravitational)
	row("Contact", "%.3fJ", smp.ContactPE)
	row("Dissipated", "%.3fJ", smp.Dissipated)
	row("Total", "%.3fJ", smp.Total())

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// draw paints the ground and the ball. Vertical scale fits the drop
// height with headroom; the ball flattens against the ground by its
// current penetration.
func (m Model) draw() {
	m.canvas.Clear()
	cw, ch := canvasWidth*2, canvasHeight*4
	groundY := ch - 8
	m.canvas.DrawLine(0, groundY, cw-1, groundY)
	for x := 0; x < cw; x += 6 {
		m.canvas.DrawLine(x, groundY, x-3, groundY+3)
	}

	top := m.scn.Cfg.Ball.Height + 2*m.scn.Cfg.Ball.Radius
	scale := float64(groundY-4) / top
	r := m.scn.Cfg.Ball.Radius * scale
	if r < 2 {
		r = 2
	}

	cx := cw / 2
	cy := groundY - int((m.sample.Height-m.sample.Depth/2)*scale)
	m.canvas.FillCircle(cx, cy, r)
}
