package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"examprep/internal/ui/theme"
)

// HoursSubmitMsg is emitted when the user confirms the entered hours.
type HoursSubmitMsg struct{ Input string }

// HoursCancelMsg is emitted when the user presses esc.
type HoursCancelMsg struct{}

var (
	hoursStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// HoursInput is the study-hours field of the check-in card, backed by
// bubbles/textinput.
type HoursInput struct {
	input   textinput.Model
	focused bool
	hint    string
}

func NewHoursInput(minimumHours float64) HoursInput {
	ti := textinput.New()
	ti.Placeholder = "输入..."
	ti.CharLimit = 6
	ti.Width = 8
	return HoursInput{input: ti, hint: hoursHint(minimumHours)}
}

func hoursHint(minimum float64) string {
	return "* 需满 " + FormatHours(minimum) + " 小时才能点亮爱心"
}

func (h HoursInput) Focused() bool { return h.focused }

// Focus clears any previous entry and returns the cursor blink command.
func (h *HoursInput) Focus() tea.Cmd {
	h.focused = true
	h.input.SetValue("")
	return h.input.Focus()
}

func (h *HoursInput) Blur() {
	h.focused = false
	h.input.Blur()
}

func (h HoursInput) Value() string { return h.input.Value() }

func (h HoursInput) Update(msg tea.Msg) (HoursInput, tea.Cmd) {
	if !h.focused {
		return h, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			h.Blur()
			return h, func() tea.Msg { return HoursCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(h.input.Value())
			h.Blur()
			return h, func() tea.Msg { return HoursSubmitMsg{Input: val} }
		}
	}
	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	return h, cmd
}

func (h HoursInput) View() string {
	var sb strings.Builder
	sb.WriteString("本日学习时长 (小时)\n")
	sb.WriteString(hoursStyle.Render(h.input.View()+" Hours") + "\n")
	sb.WriteString(hintStyle.Render(h.hint))
	return sb.String()
}
