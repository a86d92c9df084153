package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	checkindto "examprep/internal/modules/checkin/dto"
	plandto "examprep/internal/modules/plan/dto"
	"examprep/internal/platform/clock"
	"examprep/internal/platform/config"
	"examprep/internal/platform/datemath"
	"examprep/internal/ui/components"
	"examprep/internal/ui/theme"
	checkinview "examprep/internal/ui/views/checkin"
	historyview "examprep/internal/ui/views/history"
	planview "examprep/internal/ui/views/plan"
	scheduleview "examprep/internal/ui/views/schedule"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type planPort interface {
	PlanFor(ctx context.Context, date time.Time) (plandto.PlanOutput, error)
	Schedule(ctx context.Context) ([]plandto.RangeOutput, error)
}

type checkinPort interface {
	Submit(ctx context.Context, dateKey, hours string) (checkindto.SubmitOutput, error)
	Status(ctx context.Context, selected time.Time) (checkindto.StatusOutput, error)
	List(ctx context.Context) ([]checkindto.RecordOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabToday tabID = iota
	tabSchedule
	tabHistory
	tabCount
)

var tabLabels = [tabCount]string{"打卡", "计划", "记录"}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab       key.Binding
	Help      key.Binding
	Quit      key.Binding
	CheckIn   key.Binding
	PrevDay   key.Binding
	NextDay   key.Binding
	PrevWeek  key.Binding
	NextWeek  key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		CheckIn:   key.NewBinding(key.WithKeys("enter", "c"), key.WithHelp("enter", "check in")),
		PrevDay:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "day")),
		NextDay:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("←/→", "day")),
		PrevWeek:  key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "week")),
		NextWeek:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↑/↓", "week")),
		PrevMonth: key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "month")),
		NextMonth: key.NewBinding(key.WithKeys("]"), key.WithHelp("[/]", "month")),
		Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.CheckIn, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevDay, k.PrevWeek, k.PrevMonth, k.Today},
		{k.CheckIn, k.Tab},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns the calendar selection, the
// header stats and tab routing; the cards and lists are sub-views.
type Model struct {
	clock    clock.Clock
	examDate time.Time

	checkinCard  checkinview.Model
	planCard     planview.Model
	scheduleView scheduleview.Model
	historyView  historyview.Model

	selected     time.Time
	displayYear  int
	displayMonth time.Month
	checkedIn    map[string]bool
	status       checkindto.StatusOutput

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	message   string
	width     int
	height    int
}

func NewModel(clk clock.Clock, cfg config.Config, plan planPort, checkin checkinPort) Model {
	today := datemath.StartOfDay(clk.Now())
	return Model{
		clock:        clk,
		examDate:     cfg.ExamDate,
		checkinCard:  checkinview.New(checkin, cfg.MinimumHours, cfg.CheckInDelay, today),
		planCard:     planview.New(plan),
		scheduleView: scheduleview.New(plan),
		historyView:  historyview.New(checkin),
		selected:     today,
		displayYear:  today.Year(),
		displayMonth: today.Month(),
		checkedIn:    map[string]bool{},
		activeTab:    tabToday,
		keys:         defaultKeys(),
		help:         help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.scheduleView.Init(),
		m.historyView.Init(),
		m.planCard.Load(m.selected),
		m.checkinCard.Init(),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case historyview.LoadedMsg:
		if msg.Err == nil {
			m.checkedIn = make(map[string]bool, len(msg.Records))
			for _, rec := range msg.Records {
				m.checkedIn[rec.Date] = true
			}
		}
		var cmd tea.Cmd
		m.historyView, cmd = m.historyView.Update(msg)
		return m, cmd

	case checkinview.StatusLoadedMsg:
		if msg.Err == nil {
			m.status = msg.Status
		}

	case checkinview.SubmittedMsg:
		switch {
		case msg.Err != nil:
			m.message = "check-in failed: " + msg.Err.Error()
		case msg.Out.Created:
			m.message = "checked in " + msg.Out.Record.Date
		}
		cmds = append(cmds, m.historyView.Reload())

	case planview.LoadedMsg:
		var cmd tea.Cmd
		m.planCard, cmd = m.planCard.Update(msg)
		return m, cmd

	case scheduleview.LoadedMsg:
		var cmd tea.Cmd
		m.scheduleView, cmd = m.scheduleView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.activeTab == tabToday && m.checkinCard.Editing() {
			break
		}
		if m.subViewFiltering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case msg.String() == "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		}
		if m.activeTab == tabToday {
			return m.updateToday(msg)
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabToday:
		m.checkinCard, tabCmd = m.checkinCard.Update(msg)
	case tabSchedule:
		m.scheduleView, tabCmd = m.scheduleView.Update(msg)
	case tabHistory:
		m.historyView, tabCmd = m.historyView.Update(msg)
	}
	if _, isKey := msg.(tea.KeyMsg); !isKey && m.activeTab != tabToday {
		// Non-key messages (ticks, submit results) still belong to the card.
		var cardCmd tea.Cmd
		m.checkinCard, cardCmd = m.checkinCard.Update(msg)
		cmds = append(cmds, cardCmd)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) updateToday(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.CheckIn):
		cmd := m.checkinCard.StartEntry()
		return m, cmd
	case key.Matches(msg, m.keys.PrevDay):
		return m.selectDate(datemath.AddDays(m.selected, -1))
	case key.Matches(msg, m.keys.NextDay):
		return m.selectDate(datemath.AddDays(m.selected, 1))
	case key.Matches(msg, m.keys.PrevWeek):
		return m.selectDate(datemath.AddDays(m.selected, -7))
	case key.Matches(msg, m.keys.NextWeek):
		return m.selectDate(datemath.AddDays(m.selected, 7))
	case key.Matches(msg, m.keys.PrevMonth):
		m.shiftMonth(-1)
	case key.Matches(msg, m.keys.NextMonth):
		m.shiftMonth(1)
	case key.Matches(msg, m.keys.Today):
		return m.selectDate(datemath.StartOfDay(m.clock.Now()))
	}
	return m, nil
}

// selectDate moves the selection and pulls the calendar along when the new
// date falls in another month.
func (m Model) selectDate(date time.Time) (tea.Model, tea.Cmd) {
	m.selected = date
	m.displayYear, m.displayMonth = date.Year(), date.Month()
	m.message = ""
	cardCmd := m.checkinCard.Select(date)
	return m, tea.Batch(m.planCard.Load(date), cardCmd)
}

func (m *Model) shiftMonth(delta int) {
	first := time.Date(m.displayYear, m.displayMonth, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	m.displayYear, m.displayMonth = first.Year(), first.Month()
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()

	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.activeTab == tabToday:
		content = m.renderToday()
	case m.activeTab == tabSchedule:
		content = m.scheduleView.View()
	case m.activeTab == tabHistory:
		content = m.historyView.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, tabBar, content, statusBar)
}

func (m Model) renderHeader() string {
	title := theme.Title.Render("罗丹备战主治")
	goal := theme.Muted.Render(fmt.Sprintf("目标：超声医学中级职称 (%d月%d日)", int(m.examDate.Month()), m.examDate.Day()))
	left := lipgloss.JoinVertical(lipgloss.Left, title, goal)

	stats := fmt.Sprintf("%s %s   %s %s",
		theme.Muted.Render("已打卡天数"), theme.Hot.Render(fmt.Sprintf("%d", m.status.TotalCheckIns)),
		theme.Muted.Render("当前连续"), theme.Hot.Render(fmt.Sprintf("%d 天", m.status.Streak)))
	right := lipgloss.JoinVertical(lipgloss.Right, countdownLabel(m.planCard.Plan().DaysUntilExam), stats)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), right)
}

func countdownLabel(days int) string {
	switch {
	case days > 0:
		return theme.Muted.Render("距离考试 ") + theme.Hot.Render(fmt.Sprintf("%d", days)) + theme.Muted.Render(" 天")
	case days == 0:
		return theme.Hot.Render("⚠️ 就在今天")
	default:
		return theme.Muted.Render("考试已过 ") + theme.Hot.Render(fmt.Sprintf("%d", -days)) + theme.Muted.Render(" 天")
	}
}

func (m Model) renderToday() string {
	calendar := theme.Card.Render(components.RenderMonth(components.MonthView{
		Year:      m.displayYear,
		Month:     m.displayMonth,
		Selected:  m.selected,
		Today:     m.clock.Now(),
		ExamDate:  m.examDate,
		CheckedIn: m.checkedIn,
	}))
	cards := lipgloss.JoinVertical(lipgloss.Left, m.checkinCard.View(), m.planCard.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, calendar, " ", cards)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	bar := strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func (m Model) renderStatusBar() string {
	left := m.message
	if left == "" {
		left = theme.Muted.Render("罗丹，相信自己，你一定能行！")
	}
	right := theme.Muted.Render("?:help  tab:switch  enter:check in  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabSchedule:
		return m.scheduleView.Filtering()
	case tabHistory:
		return m.historyView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	cardW := m.width - 40
	if cardW < 30 {
		cardW = 30
	}
	m.checkinCard, _ = m.checkinCard.Update(tea.WindowSizeMsg{Width: cardW})
	m.planCard, _ = m.planCard.Update(tea.WindowSizeMsg{Width: cardW})
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 6}
	m.scheduleView, _ = m.scheduleView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
}
