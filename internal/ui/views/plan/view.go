package plan

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	plandto "examprep/internal/modules/plan/dto"
	"examprep/internal/ui/theme"
)

type Port interface {
	PlanFor(ctx context.Context, date time.Time) (plandto.PlanOutput, error)
}

type LoadedMsg struct {
	Plan plandto.PlanOutput
	Err  error
}

// Model is the study-plan card for the selected date.
type Model struct {
	port  Port
	plan  plandto.PlanOutput
	err   error
	width int
}

func New(port Port) Model {
	return Model{port: port}
}

func (m Model) Load(date time.Time) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.PlanFor(context.Background(), date)
		return LoadedMsg{Plan: out, Err: err}
	}
}

// Plan returns the last loaded plan; the header reads its countdown.
func (m Model) Plan() plandto.PlanOutput { return m.plan }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.plan = msg.Plan
		}
	}
	return m, nil
}

func (m Model) View() string {
	w := m.width
	if w < 30 {
		w = 44
	}
	if m.err != nil {
		return theme.Card.Width(w - 2).Render(theme.Bad.Render("plan: " + m.err.Error()))
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("学习计划") + "  " + theme.Muted.Render(m.plan.DateKey) + "\n")
	sb.WriteString(theme.PhaseBadge.Render(m.plan.Phase) + "\n\n")
	sb.WriteString(theme.Focus.Render(theme.Muted.Render("核心重点") + "\n" + lipgloss.NewStyle().Bold(true).Render(m.plan.Focus)) + "\n\n")
	inner := w - 8
	for i, task := range m.plan.Tasks {
		num := theme.Hot.Render(fmt.Sprintf("%d.", i+1))
		sb.WriteString(num + " " + lipgloss.NewStyle().Width(inner).Render(task) + "\n")
	}
	return theme.Card.Width(w - 2).Render(strings.TrimRight(sb.String(), "\n"))
}
