package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"examprep/internal/platform/datemath"
	"examprep/internal/ui/theme"
)

var weekdayLabels = [7]string{"日", "一", "二", "三", "四", "五", "六"}

// MonthGrid lays out a month in Sunday-first weeks. Blank cells are 0.
func MonthGrid(year int, month time.Month) [][7]int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	offset := int(first.Weekday())

	var weeks [][7]int
	var week [7]int
	col := offset
	for day := 1; day <= days; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = [7]int{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// MonthView describes what a rendered month should highlight.
type MonthView struct {
	Year      int
	Month     time.Month
	Selected  time.Time
	Today     time.Time
	ExamDate  time.Time
	CheckedIn map[string]bool
}

var (
	cellStyle     = lipgloss.NewStyle().Width(5).Align(lipgloss.Center)
	selectedCell  = cellStyle.Foreground(theme.Base).Background(theme.Lavender).Bold(true)
	examCell      = cellStyle.Foreground(theme.Red).Bold(true)
	todayCell     = cellStyle.Foreground(theme.Sapphire).Bold(true)
	checkedCell   = cellStyle.Foreground(theme.Green)
	weekdayHeader = cellStyle.Foreground(theme.Subtext0)
)

// RenderMonth draws the month grid. Checked-in days carry a heart, the exam
// day an exclamation mark.
func RenderMonth(v MonthView) string {
	var sb strings.Builder
	title := fmt.Sprintf("%d年 %d月", v.Year, int(v.Month))
	sb.WriteString(lipgloss.PlaceHorizontal(35, lipgloss.Center, theme.Title.Render(title)) + "\n")

	header := make([]string, 0, 7)
	for _, label := range weekdayLabels {
		header = append(header, weekdayHeader.Render(label))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...) + "\n")

	loc := v.Selected.Location()
	for _, week := range MonthGrid(v.Year, v.Month) {
		cells := make([]string, 0, 7)
		for _, day := range week {
			if day == 0 {
				cells = append(cells, cellStyle.Render(""))
				continue
			}
			cells = append(cells, v.renderDay(datemath.Date(v.Year, v.Month, day, loc)))
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (v MonthView) renderDay(date time.Time) string {
	key := datemath.FormatDateKey(date)
	label := fmt.Sprintf("%d", date.Day())
	isExam := !v.ExamDate.IsZero() && datemath.IsSameCalendarDay(date, v.ExamDate)
	switch {
	case v.CheckedIn[key]:
		label += "♥"
	case isExam:
		label += "!"
	}

	switch {
	case datemath.IsSameCalendarDay(date, v.Selected):
		return selectedCell.Render(label)
	case isExam:
		return examCell.Render(label)
	case datemath.IsSameCalendarDay(date, v.Today):
		return todayCell.Render(label)
	case v.CheckedIn[key]:
		return checkedCell.Render(label)
	default:
		return cellStyle.Render(label)
	}
}
