package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/PocheonLim/TeamPlaner/internal/plan"
	"github.com/PocheonLim/TeamPlaner/internal/store"
)

// scheduleModel is the calendar + day plan view.
type scheduleModel struct {
	todos  *plan.TodoService
	store  *store.Store
	width  int
	height int

	cal    calendarModel
	day    []plan.Todo
	cursor int

	formActive bool
	form       *huh.Form
	formTitle  *string

	confirming bool
	confirmID  int64
}

func newScheduleModel(todos *plan.TodoService, s *store.Store) scheduleModel {
	title := ""
	m := scheduleModel{
		todos:     todos,
		store:     s,
		cal:       newCalendarModel(today()),
		formTitle: &title,
	}
	if ws, err := s.GetSetting("week_start"); err == nil {
		m.cal.setWeekStart(ws)
	}
	m.refresh()
	return m
}

func (m *scheduleModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// refresh re-derives the day view and calendar marks from the
// collection.
func (m *scheduleModel) refresh() {
	m.day = m.todos.ByDate(m.cal.selectedKey())
	if m.cursor >= len(m.day) {
		m.cursor = max(0, len(m.day)-1)
	}

	marks := map[string]int{}
	for _, t := range m.todos.All() {
		marks[t.Date]++
	}
	m.cal.setMarks(marks)
}

func (m scheduleModel) update(msg tea.Msg) (scheduleModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirming {
		return m.updateConfirm(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, keys.Left):
		m.cal.moveDays(-1)
		m.refresh()
	case key.Matches(keyMsg, keys.Right):
		m.cal.moveDays(1)
		m.refresh()
	case key.Matches(keyMsg, keys.PrevMon):
		m.cal.prevMonth()
		m.refresh()
	case key.Matches(keyMsg, keys.NextMon):
		m.cal.nextMonth()
		m.refresh()

	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(m.day)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, keys.New):
		return m.showAddForm()

	case key.Matches(keyMsg, keys.Toggle):
		if m.cursor < len(m.day) {
			if err := m.todos.Toggle(m.day[m.cursor].ID); err != nil {
				return m, errStatus(err)
			}
			m.refresh()
		}

	case key.Matches(keyMsg, keys.Delete):
		if m.cursor < len(m.day) {
			id := m.day[m.cursor].ID
			if m.confirmDeletes() {
				m.confirming = true
				m.confirmID = id
				return m, nil
			}
			return m.deleteTodo(id)
		}

	case key.Matches(keyMsg, keys.MoveUp):
		if m.cursor > 0 && m.cursor < len(m.day) {
			from, to := m.day[m.cursor].ID, m.day[m.cursor-1].ID
			if err := m.todos.Reorder(m.cal.selectedKey(), from, to); err != nil {
				return m, errStatus(err)
			}
			m.cursor--
			m.refresh()
		}

	case key.Matches(keyMsg, keys.MoveDown):
		if m.cursor >= 0 && m.cursor < len(m.day)-1 {
			from, to := m.day[m.cursor].ID, m.day[m.cursor+1].ID
			if err := m.todos.Reorder(m.cal.selectedKey(), from, to); err != nil {
				return m, errStatus(err)
			}
			m.cursor++
			m.refresh()
		}
	}

	return m, nil
}

func (m scheduleModel) updateConfirm(msg tea.KeyMsg) (scheduleModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirming = false
		return m.deleteTodo(m.confirmID)
	case "n", "N", "esc":
		m.confirming = false
	}
	return m, nil
}

func (m scheduleModel) deleteTodo(id int64) (scheduleModel, tea.Cmd) {
	if err := m.todos.Delete(id); err != nil {
		return m, errStatus(err)
	}
	m.refresh()
	return m, func() tea.Msg { return statusMsg{text: "Plan deleted"} }
}

func (m scheduleModel) confirmDeletes() bool {
	v, err := m.store.GetSetting("confirm_delete")
	if err != nil {
		return true
	}
	return v != "no"
}

func (m scheduleModel) showAddForm() (scheduleModel, tea.Cmd) {
	*m.formTitle = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New plan for " + dayHeading(m.cal.selectedKey())).
				Placeholder("What needs doing?").
				Value(m.formTitle),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m scheduleModel) updateForm(msg tea.Msg) (scheduleModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		if strings.TrimSpace(*m.formTitle) != "" {
			if _, err := m.todos.Add(*m.formTitle, m.cal.selectedKey()); err != nil {
				return m, errStatus(err)
			}
		}
		m.refresh()
		return m, nil
	}

	return m, cmd
}

func (m scheduleModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Plan")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	calPanel := panelStyle.Render(m.cal.view())
	listPanel := m.renderDayList(w - lipgloss.Width(calPanel) - 2)

	return lipgloss.JoinHorizontal(lipgloss.Top, calPanel, " ", listPanel)
}

func (m scheduleModel) renderDayList(w int) string {
	if w < 24 {
		w = 24
	}

	title := titleStyle.Render(dayHeading(m.cal.selectedKey()) + " Plan")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	if m.confirming {
		rows = append(rows, warningStyle.Render("Delete this plan? (y/n)"))
		rows = append(rows, "")
	}

	if len(m.day) == 0 {
		rows = append(rows, mutedStyle.Render("Nothing planned. Press n to add."))
	}

	for i, todo := range m.day {
		check := "☐"
		style := normalItemStyle
		if todo.Completed {
			check = "☑"
			style = completedItemStyle
		}
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
			if !todo.Completed {
				style = selectedItemStyle
			}
		}
		rows = append(rows, fmt.Sprintf("%s%s %s", cursor, check, style.Render(todo.Title)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  space: toggle  d: delete  K/J: move"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
