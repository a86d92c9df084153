package schedule

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	plandto "examprep/internal/modules/plan/dto"
)

type fakePort struct{}

func (fakePort) Schedule(context.Context) ([]plandto.RangeOutput, error) {
	return []plandto.RangeOutput{
		{Start: "2026-01-12", End: "2026-01-31", Phase: "第一阶段", Focus: "腹部", Tasks: []string{"肝", "胆"}},
		{Start: "2026-04-11", End: "2026-04-11", Phase: "考试日", Focus: "冷静", Tasks: []string{"带准考证"}},
	}, nil
}

func TestScheduleShowsSelectedPhase(t *testing.T) {
	t.Parallel()
	m := New(fakePort{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = m.Update(m.loadCmd()())
	if m.loading {
		t.Fatalf("expected loaded schedule")
	}
	detail := m.renderDetail()
	for _, want := range []string{"第一阶段", "2026-01-12 → 2026-01-31", "1.", "胆"} {
		if !strings.Contains(detail, want) {
			t.Fatalf("expected %q in detail:\n%s", want, detail)
		}
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if !strings.Contains(m.renderDetail(), "考试日") {
		t.Fatalf("detail should follow the selection:\n%s", m.renderDetail())
	}
}
