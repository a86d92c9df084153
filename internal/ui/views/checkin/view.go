package checkin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	checkindto "examprep/internal/modules/checkin/dto"
	"examprep/internal/platform/datemath"
	apperrors "examprep/internal/platform/errors"
	"examprep/internal/ui/components"
	"examprep/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Submit(ctx context.Context, dateKey, hours string) (checkindto.SubmitOutput, error)
	Status(ctx context.Context, selected time.Time) (checkindto.StatusOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// StatusLoadedMsg carries the ledger status for the selected date. The app
// model also reads it to refresh the header.
type StatusLoadedMsg struct {
	Status checkindto.StatusOutput
	Err    error
}

// SubmittedMsg is sent once a check-in has gone through the ledger.
type SubmittedMsg struct {
	Out checkindto.SubmitOutput
	Err error
}

type delayElapsedMsg struct {
	dateKey string
	hours   string
}

// ─── state ───────────────────────────────────────────────────────────────────

type state int

const (
	stateLoading state = iota
	stateFuture
	stateCheckedIn
	stateForm
	stateSubmitting
)

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the check-in card for the selected date.
type Model struct {
	port     Port
	delay    time.Duration
	minimum  float64
	hours    components.HoursInput
	spinner  spinner.Model
	state    state
	selected time.Time
	status   checkindto.StatusOutput
	notice   string
	width    int
}

// New builds the card for date; Init loads its status.
func New(port Port, minimumHours float64, delay time.Duration, date time.Time) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{
		port:     port,
		delay:    delay,
		minimum:  minimumHours,
		hours:    components.NewHoursInput(minimumHours),
		spinner:  sp,
		selected: date,
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadStatusCmd(m.selected)
}

// Select loads the card for date, dropping any half-typed entry.
func (m *Model) Select(date time.Time) tea.Cmd {
	m.hours.Blur()
	m.notice = ""
	m.selected = date
	if m.state != stateSubmitting {
		m.state = stateLoading
	}
	return m.loadStatusCmd(date)
}

// Editing reports whether the hours field has focus; global keys yield then.
func (m Model) Editing() bool { return m.hours.Focused() }

// Busy reports whether a submission is in flight.
func (m Model) Busy() bool { return m.state == stateSubmitting }

// StartEntry focuses the hours field when the selected date accepts a
// check-in.
func (m *Model) StartEntry() tea.Cmd {
	if m.state != stateForm {
		return nil
	}
	m.notice = ""
	return m.hours.Focus()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case StatusLoadedMsg:
		if m.state == stateSubmitting {
			return m, nil
		}
		if msg.Err != nil {
			m.notice = msg.Err.Error()
			m.state = stateForm
			return m, nil
		}
		if msg.Status.SelectedKey != datemath.FormatDateKey(m.selected) {
			return m, nil
		}
		m.status = msg.Status
		m.state = stateFor(msg.Status)

	case components.HoursSubmitMsg:
		m.hours.Blur()
		m.state = stateSubmitting
		dateKey, hours := datemath.FormatDateKey(m.selected), msg.Input
		return m, tea.Batch(m.spinner.Tick, tea.Tick(m.delay, func(time.Time) tea.Msg {
			return delayElapsedMsg{dateKey: dateKey, hours: hours}
		}))

	case components.HoursCancelMsg:
		m.notice = ""

	case delayElapsedMsg:
		return m, m.submitCmd(msg.dateKey, msg.hours)

	case SubmittedMsg:
		m.state = stateForm
		switch {
		case msg.Err != nil:
			m.notice = m.submitNotice(msg.Err)
		case msg.Out.Warning != "":
			m.notice = msg.Out.Warning
		case !msg.Out.Created:
			m.notice = "这一天已经打过卡了"
		default:
			m.notice = ""
		}
		return m, m.loadStatusCmd(m.selected)

	case spinner.TickMsg:
		if m.state != stateSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.hours.Focused() {
		var cmd tea.Cmd
		m.hours, cmd = m.hours.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	title := theme.Title.Render(datemath.FormatDateKey(m.selected) + " 打卡")
	if m.state == stateFuture {
		title += "  " + theme.Muted.Render("未来日期")
	}
	sb.WriteString(title + "\n\n")

	switch m.state {
	case stateLoading:
		sb.WriteString(theme.Muted.Render("…"))
	case stateFuture:
		sb.WriteString("⏳ 时间还没到，请耐心等待这一天！\n")
		sb.WriteString(theme.Muted.Render("您可以先查看下方的学习计划预习。"))
	case stateCheckedIn:
		rec := m.status.SelectedRecord
		sb.WriteString(theme.Good.Render("♥ 已完成打卡") + "\n")
		sb.WriteString(lipgloss.NewStyle().Italic(true).Render(fmt.Sprintf("“%s”", rec.Quote)) + "\n")
		sb.WriteString(theme.Muted.Render("学习时长: " + components.FormatHours(rec.Hours) + " 小时"))
	case stateSubmitting:
		sb.WriteString(m.spinner.View() + " 生成鼓励中...")
	default:
		sb.WriteString(m.hours.View() + "\n")
		if !m.hours.Focused() {
			sb.WriteString(theme.Muted.Render("enter: 确认打卡"))
		}
	}
	if m.notice != "" {
		sb.WriteString("\n" + theme.Bad.Render(m.notice))
	}

	w := m.width
	if w < 30 {
		w = 44
	}
	return theme.Card.Width(w - 2).Render(sb.String())
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func stateFor(status checkindto.StatusOutput) state {
	switch {
	case status.SelectedIsFuture:
		return stateFuture
	case status.SelectedCheckedIn:
		return stateCheckedIn
	default:
		return stateForm
	}
}

func (m Model) submitNotice(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrBelowMinimumHours):
		return "罗丹医生，每天至少要学习" + components.FormatHours(m.minimum) + "小时才能打卡哦！加油！"
	case errors.Is(err, apperrors.ErrFutureDate):
		return "时间还没到，请耐心等待这一天！"
	default:
		return err.Error()
	}
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) loadStatusCmd(date time.Time) tea.Cmd {
	return func() tea.Msg {
		status, err := m.port.Status(context.Background(), date)
		return StatusLoadedMsg{Status: status, Err: err}
	}
}

func (m Model) submitCmd(dateKey, hours string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Submit(context.Background(), dateKey, hours)
		return SubmittedMsg{Out: out, Err: err}
	}
}
