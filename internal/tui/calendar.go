package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/PocheonLim/TeamPlaner/internal/plan"
)

// calendarModel is a cursor-driven month calendar. It owns the
// selected day and shows a marker count per day (todos scheduled on
// that date).
type calendarModel struct {
	selected  time.Time // midnight, local
	marks     map[string]int
	weekStart time.Weekday
}

func newCalendarModel(selected time.Time) calendarModel {
	return calendarModel{
		selected:  selected,
		marks:     map[string]int{},
		weekStart: time.Monday,
	}
}

func (c *calendarModel) setMarks(marks map[string]int) {
	c.marks = marks
}

func (c *calendarModel) setWeekStart(day string) {
	if day == "sunday" {
		c.weekStart = time.Sunday
	} else {
		c.weekStart = time.Monday
	}
}

func (c *calendarModel) moveDays(n int) {
	c.selected = c.selected.AddDate(0, 0, n)
}

func (c *calendarModel) prevMonth() {
	c.selected = c.selected.AddDate(0, -1, 0)
}

func (c *calendarModel) nextMonth() {
	c.selected = c.selected.AddDate(0, 1, 0)
}

// selectedKey returns the canonical date key of the cursor.
func (c calendarModel) selectedKey() string {
	return plan.DateKey(c.selected)
}

// leadingBlanks is the number of empty cells before day 1 of the
// selected month.
func (c calendarModel) leadingBlanks() int {
	first := time.Date(c.selected.Year(), c.selected.Month(), 1, 0, 0, 0, 0, time.Local)
	return (int(first.Weekday()) - int(c.weekStart) + 7) % 7
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, -1).Day()
}

func (c calendarModel) view() string {
	var rows []string

	heading := titleStyle.Render(c.selected.Format("January 2006"))
	rows = append(rows, heading)

	var names []string
	for i := 0; i < 7; i++ {
		day := time.Weekday((int(c.weekStart) + i) % 7)
		names = append(names, mutedStyle.Render(fmt.Sprintf("%3s", day.String()[:2])))
	}
	rows = append(rows, strings.Join(names, " "))

	todayKey := plan.DateKey(today())
	total := daysIn(c.selected.Year(), c.selected.Month())

	cells := make([]string, 0, 7)
	for i := 0; i < c.leadingBlanks(); i++ {
		cells = append(cells, calDimStyle.Render("  ·"))
	}
	for day := 1; day <= total; day++ {
		date := time.Date(c.selected.Year(), c.selected.Month(), day, 0, 0, 0, 0, time.Local)
		key := plan.DateKey(date)
		label := fmt.Sprintf("%3d", day)

		style := normalItemStyle
		switch {
		case day == c.selected.Day():
			style = calSelectedStyle
		case key == todayKey:
			style = calTodayStyle
		case c.marks[key] > 0:
			style = calMarkedStyle
		}
		cells = append(cells, style.Render(label))

		if len(cells) == 7 {
			rows = append(rows, strings.Join(cells, " "))
			cells = cells[:0]
		}
	}
	if len(cells) > 0 {
		for len(cells) < 7 {
			cells = append(cells, calDimStyle.Render("  ·"))
		}
		rows = append(rows, strings.Join(cells, " "))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("←→↑↓: move  [ ]: month"))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
