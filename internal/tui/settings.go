package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/PocheonLim/TeamPlaner/internal/auth"
	"github.com/PocheonLim/TeamPlaner/internal/plan"
	"github.com/PocheonLim/TeamPlaner/internal/store"
)

type settingsModel struct {
	store  *store.Store
	auth   *auth.Local
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	weekStart       *string
	defaultExercise *string
	confirmDelete   *string
}

func newSettingsModel(s *store.Store, a *auth.Local) settingsModel {
	ws, de, cd := "", "", ""
	m := settingsModel{
		store:           s,
		auth:            a,
		weekStart:       &ws,
		defaultExercise: &de,
		confirmDelete:   &cd,
	}
	m.refresh()
	return m
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *settingsModel) refresh() {
	settings, _ := m.store.GetAllSettings()
	m.settings = settings
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Enter), key.Matches(keyMsg, keys.New):
		return m.showForm()
	case key.Matches(keyMsg, keys.Logout):
		m.auth.Logout()
		return m, func() tea.Msg { return loggedOutMsg{} }
	}
	return m, nil
}

func (m settingsModel) showForm() (settingsModel, tea.Cmd) {
	*m.weekStart = m.getVal("week_start", "monday")
	*m.defaultExercise = m.getVal("default_exercise", "squat")
	*m.confirmDelete = m.getVal("confirm_delete", "yes")

	exerciseOptions := make([]huh.Option[string], len(plan.ExerciseKeys))
	for i, ex := range plan.ExerciseKeys {
		exerciseOptions[i] = huh.NewOption(plan.ExerciseLabel(ex), ex)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Week starts on").
				Options(
					huh.NewOption("Monday", "monday"),
					huh.NewOption("Sunday", "sunday"),
				).Value(m.weekStart),
			huh.NewSelect[string]().Title("Default exercise").
				Options(exerciseOptions...).Value(m.defaultExercise),
			huh.NewSelect[string]().Title("Confirm before delete").
				Options(
					huh.NewOption("Yes", "yes"),
					huh.NewOption("No", "no"),
				).Value(m.confirmDelete),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
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
		m.store.SetSetting("week_start", *m.weekStart)
		m.store.SetSetting("default_exercise", *m.defaultExercise)
		m.store.SetSetting("confirm_delete", *m.confirmDelete)
		m.refresh()
		return m, func() tea.Msg { return statusMsg{text: "Settings saved"} }
	}

	return m, cmd
}

func (m settingsModel) getVal(k, fallback string) string {
	v, err := m.store.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	title := titleStyle.Render("Settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	if user := m.auth.CurrentUser(); user != nil {
		profile := fmt.Sprintf("  %s %s", highlightStyle.Render(user.Username), mutedStyle.Render("<"+user.Email+">"))
		rows = append(rows, profile)
		rows = append(rows, "")
	}

	for _, setting := range m.settings {
		label := lipgloss.NewStyle().Width(20).Render(setting.Key)
		value := highlightStyle.Render(setting.Value)
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit  x: log out"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
