// Package tui is an interactive terminal explorer for conical shock
// solutions: adjust the free-stream Mach number, cone half-angle and
// gamma, re-solve, and see the flow profile immediately.
package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/wrosendoeng/coneflow/internal/flow"
	"github.com/wrosendoeng/coneflow/internal/shooting"
	"github.com/wrosendoeng/coneflow/internal/sweep"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type param struct {
	name  string
	value float64
	step  float64
	min   float64
	max   float64
}

type model struct {
	params  []param
	cursor  int
	editing bool
	editBuf string

	result *shooting.Result
	errMsg string

	width  int
	height int
}

func NewModel() *model {
	return &model{
		params: []param{
			{name: "mach", value: 3.0, step: 0.1, min: 1.01, max: 25},
			{name: "cone angle (deg)", value: 10.0, step: 0.5, min: 0.5, max: 55},
			{name: "gamma", value: 1.4, step: 0.01, min: 1.01, max: 2},
		},
		width:  80,
		height: 24,
	}
}

// Run starts the explorer and blocks until quit.
func Run() error {
	_, err := tea.NewProgram(NewModel(), tea.WithAltScreen()).Run()
	return err
}

func (m *model) Init() tea.Cmd {
	m.solve()
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%f", &val); err == nil {
				m.setParam(m.cursor, val)
				m.solve()
			}
			m.editing = false
			m.editBuf = ""
		case "escape":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c", "escape":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.params)-1 {
			m.cursor++
		}
	case "left", "h":
		p := m.params[m.cursor]
		m.setParam(m.cursor, p.value-p.step)
		m.solve()
	case "right", "l":
		p := m.params[m.cursor]
		m.setParam(m.cursor, p.value+p.step)
		m.solve()
	case "enter", " ":
		m.editing = true
		m.editBuf = fmt.Sprintf("%.3f", m.params[m.cursor].value)
	}
	return m, nil
}

func (m *model) setParam(i int, val float64) {
	p := &m.params[i]
	p.value = math.Max(p.min, math.Min(p.max, val))
}

func (m *model) solve() {
	var (
		mach  = m.params[0].value
		cone  = m.params[1].value * math.Pi / 180
		gamma = m.params[2].value
	)

	solver := shooting.NewSolver(mach, gamma)
	res, err := solver.Solve(cone, sweep.GuessShockAngle(mach, cone))
	if err != nil {
		m.result = nil
		m.errMsg = err.Error()
		return
	}
	m.result = &res
	m.errMsg = ""
}

func (m *model) View() string {
	var sb strings.Builder

	sb.WriteString(cyan.Render("coneflow") + dim.Render("  conical shock explorer") + "\n\n")

	for i, p := range m.params {
		cursor := "  "
		style := white
		if i == m.cursor {
			cursor = magenta.Render("> ")
			style = magenta
		}
		val := fmt.Sprintf("%8.3f", p.value)
		if m.editing && i == m.cursor {
			val = yellow.Render(m.editBuf + "_")
		}
		sb.WriteString(fmt.Sprintf("%s%-18s %s\n", cursor, style.Render(p.name), val))
	}
	sb.WriteString("\n")

	if m.errMsg != "" {
		sb.WriteString(red.Render("no attached solution: ") + dim.Render(m.errMsg) + "\n")
	} else if m.result != nil {
		sb.WriteString(m.summary())
		sb.WriteString(m.chart())
	}

	sb.WriteString(dim.Render("\n arrows adjust | enter edit | q quit\n"))
	return sb.String()
}

func (m *model) summary() string {
	r := m.result
	deg := func(rad float64) string { return fmt.Sprintf("%.3f°", rad*180/math.Pi) }
	rows := []string{
		fmt.Sprintf("  %s %s", dim.Render("shock angle     "), green.Render(deg(r.ShockAngle))),
		fmt.Sprintf("  %s %s", dim.Render("deflection      "), white.Render(deg(r.Shock.Deflection))),
		fmt.Sprintf("  %s %s", dim.Render("post-shock Mach "), white.Render(fmt.Sprintf("%.4f", r.Shock.MachDownstream))),
		fmt.Sprintf("  %s %s", dim.Render("surface Mach    "), white.Render(fmt.Sprintf("%.4f", r.Surface.Mach))),
		fmt.Sprintf("  %s %s", dim.Render("surface Cp      "), white.Render(fmt.Sprintf("%.5f", r.Surface.PressureCoeff))),
		fmt.Sprintf("  %s %s", dim.Render("iterations      "), yellow.Render(fmt.Sprintf("%d", r.Iterations))),
	}
	return strings.Join(rows, "\n") + "\n\n"
}

func (m *model) chart() string {
	tr := m.result.Trace
	if tr == nil || tr.Len() == 0 {
		return ""
	}

	data := make([]float64, tr.Len())
	for i, s := range tr.States {
		data[i] = -s[flow.VT]
	}

	w := m.width - 12
	if w > 70 {
		w = 70
	}
	if w < 20 {
		w = 20
	}
	return asciigraph.Plot(data,
		asciigraph.Height(8),
		asciigraph.Width(w),
		asciigraph.Caption("|Vtheta| from shock to cone surface"),
	) + "\n"
}
