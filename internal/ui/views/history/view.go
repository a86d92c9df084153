package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	checkindto "examprep/internal/modules/checkin/dto"
	"examprep/internal/ui/components"
	"examprep/internal/ui/theme"
)

type Port interface {
	List(ctx context.Context) ([]checkindto.RecordOutput, error)
}

type LoadedMsg struct {
	Records []checkindto.RecordOutput
	Err     error
}

type recordItem struct {
	rec checkindto.RecordOutput
}

func (i recordItem) Title() string       { return i.rec.Date }
func (i recordItem) Description() string { return components.FormatHours(i.rec.Hours) + " 小时" }
func (i recordItem) FilterValue() string { return i.rec.Date }

// Model lists past check-ins newest first, with the captured quote beside
// the selection.
type Model struct {
	port   Port
	list   list.Model
	detail viewport.Model
	hours  float64
	width  int
	height int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "打卡记录"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)

	return Model{port: port, list: l, detail: vp}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload re-reads the ledger; the app calls it after every check-in.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		records, err := m.port.List(context.Background())
		return LoadedMsg{Records: records, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		if msg.Err != nil {
			m.list.Title = "打卡记录 — " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.Records))
		m.hours = 0
		for i := len(msg.Records) - 1; i >= 0; i-- {
			items = append(items, recordItem{rec: msg.Records[i]})
			m.hours += msg.Records[i].Hours
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.detail.SetContent(m.renderDetail())
		return m, tea.Batch(cmds...)
	}

	var lCmd tea.Cmd
	prev := m.list.Index()
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	if m.list.Index() != prev {
		m.detail.SetContent(m.renderDetail())
	}
	var vCmd tea.Cmd
	m.detail, vCmd = m.detail.Update(msg)
	cmds = append(cmds, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(recordItem)
	if !ok {
		return theme.Muted.Render("还没有打卡记录")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(item.rec.Date) + "\n\n")
	sb.WriteString(lipgloss.NewStyle().Italic(true).Render("“"+item.rec.Quote+"”") + "\n\n")
	sb.WriteString(theme.Muted.Render("学习时长: ") + components.FormatHours(item.rec.Hours) + " 小时\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("累计 %d 天 / %s 小时", len(m.list.Items()), components.FormatHours(m.hours))))
	return sb.String()
}
