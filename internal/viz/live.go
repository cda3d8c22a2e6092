package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/aerolab/flutterlab/internal/atmosphere"
	"github.com/aerolab/flutterlab/internal/damping"
	"github.com/aerolab/flutterlab/internal/flutter"
	"github.com/aerolab/flutterlab/internal/modal"
	"github.com/aerolab/flutterlab/internal/panel"
	"github.com/aerolab/flutterlab/internal/solver"
)

const (
	graphWidth  = 80
	graphHeight = 12
)

// TickMsg advances the sweep by one velocity sample.
type TickMsg time.Time

// Model is the bubbletea model for the live sweep.
type Model struct {
	s     *solver.Solver
	p     panel.Properties
	fl    atmosphere.Flow
	ev    *damping.Evaluator
	modes modal.State
	opts  solver.Options

	velocities []float64
	trace      []float64 // first-mode damping, streamed
	idx        int
	crossed    bool
	crossedAt  float64

	result *flutter.Result
	err    error
	done   bool
}

// NewModel prepares the sweep state; evaluation happens tick by tick.
func NewModel(s *solver.Solver, p panel.Properties, fl atmosphere.Flow, opts solver.Options, points int) (Model, error) {
	modes, err := s.Modes(p)
	if err != nil {
		return Model{}, err
	}
	ev, _, err := s.Evaluator(opts.Method, fl)
	if err != nil {
		return Model{}, err
	}
	if points < 2 {
		return Model{}, fmt.Errorf("%w: sweep needs at least 2 points, got %d", flutter.ErrInvalidInput, points)
	}

	velocities := make([]float64, points)
	step := (opts.VMax - opts.VMin) / float64(points-1)
	for i := range velocities {
		velocities[i] = opts.VMin + float64(i)*step
	}

	return Model{
		s:          s,
		p:          p,
		fl:         fl,
		ev:         ev,
		modes:      modes,
		opts:       opts,
		velocities: velocities,
	}, nil
}

func tick() tea.Cmd {
	return tea.Tick(30*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case TickMsg:
		if m.done {
			return m, nil
		}
		if m.idx >= len(m.velocities) {
			res, err := m.s.Analyze(m.p, m.fl, m.opts)
			m.result, m.err = res, err
			m.done = true
			return m, nil
		}

		v := m.velocities[m.idx]
		s, err := m.ev.TotalDamping(m.p, m.fl, m.modes.Modes[0], v)
		if err != nil {
			m.err = err
			m.done = true
			return m, nil
		}
		if !m.crossed && s.Damping < 0 {
			m.crossed = true
			m.crossedAt = v
		}
		m.trace = append(m.trace, s.Damping)
		m.idx++
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("flutterlab live damping sweep"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("panel") +
		valueStyle.Render(fmt.Sprintf("%.0fx%.0fx%.1f mm %s (%v)",
			m.p.Length*1000, m.p.Width*1000, m.p.Thickness*1000, m.p.Material.Name, m.p.Boundary)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("flow") +
		valueStyle.Render(fmt.Sprintf("Mach %.2f at %.0f m", m.fl.Mach, m.fl.Altitude)))
	b.WriteString("\n")

	if len(m.trace) >= 2 {
		graph := asciigraph.Plot(m.trace,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption(fmt.Sprintf("mode %v total damping vs velocity", m.modes.Modes[0].Mode)),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	if m.idx < len(m.velocities) {
		b.WriteString(labelStyle.Render("sweeping") +
			valueStyle.Render(fmt.Sprintf("%.0f m/s (%d/%d)", m.velocities[m.idx], m.idx, len(m.velocities))))
		b.WriteString("\n")
	}
	if m.crossed {
		b.WriteString(unstableSty.Render(fmt.Sprintf("damping crossed zero near %.0f m/s", m.crossedAt)))
		b.WriteString("\n")
	}

	if m.done {
		switch {
		case m.err != nil:
			b.WriteString(unstableSty.Render("error: " + m.err.Error()))
		case m.result.Found:
			b.WriteString(unstableSty.Render(fmt.Sprintf("flutter: %.1f m/s, %.1f Hz, mode %v (+%.0f%%/-%.0f%%)",
				m.result.Speed, m.result.FrequencyHz, m.result.Mode,
				m.result.UncertaintyUp, m.result.UncertaintyDown)))
		default:
			b.WriteString(stableStyle.Render("no flutter in the searched range"))
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("q: quit"))
	return b.String()
}

// RunSweep drives the live view to completion.
func RunSweep(s *solver.Solver, p panel.Properties, fl atmosphere.Flow, opts solver.Options, points int) error {
	m, err := NewModel(s, p, fl, opts, points)
	if err != nil {
		return err
	}
	prog := tea.NewProgram(m)
	_, err = prog.Run()
	return err
}
