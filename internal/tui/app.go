package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/PocheonLim/TeamPlaner/internal/auth"
	"github.com/PocheonLim/TeamPlaner/internal/export"
	"github.com/PocheonLim/TeamPlaner/internal/plan"
	"github.com/PocheonLim/TeamPlaner/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store    *store.Store
	auth     *auth.Local
	todos    *plan.TodoService
	workouts *plan.WorkoutService
	notes    *plan.NoteService

	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	login    loginModel
	schedule scheduleModel
	diary    diaryModel
	noteView notesModel
	settings settingsModel

	help   help.Model
	status string
}

func NewApp(s *store.Store, a *auth.Local, todos *plan.TodoService, workouts *plan.WorkoutService, notes *plan.NoteService) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		auth:       a,
		todos:      todos,
		workouts:   workouts,
		notes:      notes,
		activeView: viewSchedule,
		login:      newLoginModel(a),
		schedule:   newScheduleModel(todos, s),
		diary:      newDiaryModel(workouts, s),
		noteView:   newNotesModel(notes),
		settings:   newSettingsModel(s, a),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return a.login.init()
}

func (a App) loggedIn() bool {
	return a.auth.CurrentUser() != nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.login.setSize(a.width, contentHeight)
		a.schedule.setSize(a.width, contentHeight)
		a.diary.setSize(a.width, contentHeight)
		a.noteView.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case loggedInMsg:
		a.activeView = viewSchedule
		a.schedule.refresh()
		a.diary.refresh()
		a.status = "Signed in as " + a.auth.CurrentUser().Username
		return a, nil

	case loggedOutMsg:
		a.login = newLoginModel(a.auth)
		a.login.setSize(a.width, a.height-4)
		a.status = "Signed out"
		return a, a.login.init()

	case statusMsg:
		a.status = msg.text
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// Quit always works, even on the login screen.
		if keyMsg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loggedIn() {
			var cmd tea.Cmd
			a.login, cmd = a.login.update(keyMsg)
			return a, cmd
		}

		if a.exportPicking {
			return a.updateExportPicker(keyMsg)
		}

		// If a child view is capturing input (form or editor),
		// delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(keyMsg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(keyMsg, keys.Quit):
			return a, tea.Quit
		case key.Matches(keyMsg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(keyMsg, keys.Tab1):
			a.activeView = viewSchedule
			a.schedule.refresh()
			return a, nil
		case key.Matches(keyMsg, keys.Tab2):
			a.activeView = viewDiary
			a.diary.refresh()
			return a, nil
		case key.Matches(keyMsg, keys.Tab3):
			a.activeView = viewNotes
			return a, nil
		case key.Matches(keyMsg, keys.Tab4):
			a.activeView = viewSettings
			a.settings.refresh()
			return a, nil
		case key.Matches(keyMsg, keys.Tab):
			a.activeView = (a.activeView + 1) % 4
			a.refreshCurrentView()
			return a, nil
		}
	}

	if !a.loggedIn() {
		var cmd tea.Cmd
		a.login, cmd = a.login.update(msg)
		return a, cmd
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewSchedule:
		a.schedule, cmd = a.schedule.update(msg)
	case viewDiary:
		a.diary, cmd = a.diary.update(msg)
	case viewNotes:
		a.noteView, cmd = a.noteView.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewSchedule:
		return a.schedule.formActive
	case viewDiary:
		return a.diary.formActive
	case viewNotes:
		return a.noteView.editing
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a *App) refreshCurrentView() {
	switch a.activeView {
	case viewSchedule:
		a.schedule.refresh()
	case viewDiary:
		a.diary.refresh()
	case viewSettings:
		a.settings.refresh()
	}
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	if !a.loggedIn() {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.login.view())
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewSchedule:
		content = a.schedule.view()
	case viewDiary:
		content = a.diary.view()
	case viewNotes:
		content = a.noteView.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("teamplaner")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	user := ""
	if u := a.auth.CurrentUser(); u != nil {
		user = successStyle.Render(" ● " + u.Username)
	}

	left := footerStyle.Render(helpView)
	right := user + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var exportFormats = []string{"Todos CSV", "Workouts CSV", "JSON snapshot", "Notes HTML"}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		var err error
		switch format {
		case 0:
			path = filepath.Join(home, fmt.Sprintf("teamplaner-todos-%s.csv", dateStr))
			err = export.TodosToCSV(a.todos.All(), path)
		case 1:
			path = filepath.Join(home, fmt.Sprintf("teamplaner-workouts-%s.csv", dateStr))
			err = export.WorkoutsToCSV(a.workouts.All(), path)
		case 2:
			path = filepath.Join(home, fmt.Sprintf("teamplaner-snapshot-%s.json", dateStr))
			err = export.ToJSON(a.todos.All(), a.workouts.All(), a.notes.Book(), path)
		case 3:
			path = filepath.Join(home, fmt.Sprintf("teamplaner-notes-%s.html", dateStr))
			err = export.NotesToHTML(a.notes.Book(), a.notes.RenderHTML, path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
