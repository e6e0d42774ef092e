package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/PocheonLim/TeamPlaner/internal/plan"
	"github.com/PocheonLim/TeamPlaner/internal/store"
)

// diaryModel is the workout diary: entry form, the day's records and
// the 7-day progress chart for the selected exercise.
type diaryModel struct {
	workouts *plan.WorkoutService
	store    *store.Store
	width    int
	height   int

	date     string
	day      []plan.WorkoutRecord
	cursor   int
	exercise string // chart exercise

	chart barchart.Model

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formExercise *string
	formWeight   *string
	formReps     *string
	formMemo     *string

	confirming bool
	confirmID  int64
}

func newDiaryModel(workouts *plan.WorkoutService, s *store.Store) diaryModel {
	exercise, weight, reps, memo := "", "", "", ""
	m := diaryModel{
		workouts:     workouts,
		store:        s,
		date:         plan.DateKey(today()),
		chart:        barchart.New(60, 12),
		formExercise: &exercise,
		formWeight:   &weight,
		formReps:     &reps,
		formMemo:     &memo,
	}
	if ex, err := s.GetSetting("default_exercise"); err == nil {
		m.exercise = ex
	}
	m.refresh()
	return m
}

func (m *diaryModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.buildChart()
}

// refresh re-derives the day view and chart from the collection.
func (m *diaryModel) refresh() {
	m.day = m.workouts.ByDate(m.date)
	if m.cursor >= len(m.day) {
		m.cursor = max(0, len(m.day)-1)
	}
	m.buildChart()
}

func (m *diaryModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if m.height > 34 {
		chartHeight = 14
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, p := range m.workouts.ChartSeries(m.exercise, today()) {
		values := []barchart.BarValue{{
			Name:  plan.ExerciseLabel(m.exercise),
			Value: p.Volume,
			Style: lipgloss.NewStyle().Foreground(colorAccent),
		}}
		bars = append(bars, barchart.BarData{Label: p.Date, Values: values})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m diaryModel) update(msg tea.Msg) (diaryModel, tea.Cmd) {
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
		d, err := plan.ParseDateKey(m.date)
		if err == nil {
			m.date = plan.DateKey(d.AddDate(0, 0, -1))
			m.refresh()
		}
	case key.Matches(keyMsg, keys.Right):
		d, err := plan.ParseDateKey(m.date)
		if err == nil {
			m.date = plan.DateKey(d.AddDate(0, 0, 1))
			m.refresh()
		}

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

	case key.Matches(keyMsg, keys.Delete):
		if m.cursor < len(m.day) {
			id := m.day[m.cursor].ID
			if m.confirmDeletes() {
				m.confirming = true
				m.confirmID = id
				return m, nil
			}
			return m.deleteRecord(id)
		}

	case key.Matches(keyMsg, keys.Preview):
		m.cycleExercise()
	}

	return m, nil
}

// cycleExercise steps the chart through the exercise catalog.
func (m *diaryModel) cycleExercise() {
	for i, ex := range plan.ExerciseKeys {
		if ex == m.exercise {
			m.exercise = plan.ExerciseKeys[(i+1)%len(plan.ExerciseKeys)]
			m.buildChart()
			return
		}
	}
	m.exercise = plan.ExerciseKeys[0]
	m.buildChart()
}

func (m diaryModel) updateConfirm(msg tea.KeyMsg) (diaryModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirming = false
		return m.deleteRecord(m.confirmID)
	case "n", "N", "esc":
		m.confirming = false
	}
	return m, nil
}

func (m diaryModel) deleteRecord(id int64) (diaryModel, tea.Cmd) {
	if err := m.workouts.Delete(id); err != nil {
		return m, errStatus(err)
	}
	m.refresh()
	return m, func() tea.Msg { return statusMsg{text: "Record deleted"} }
}

func (m diaryModel) confirmDeletes() bool {
	v, err := m.store.GetSetting("confirm_delete")
	if err != nil {
		return true
	}
	return v != "no"
}

func (m diaryModel) showAddForm() (diaryModel, tea.Cmd) {
	*m.formExercise = m.exercise
	if *m.formExercise == "" {
		*m.formExercise = plan.ExerciseKeys[0]
	}
	*m.formWeight = ""
	*m.formReps = ""
	*m.formMemo = ""

	options := make([]huh.Option[string], len(plan.ExerciseKeys))
	for i, ex := range plan.ExerciseKeys {
		options[i] = huh.NewOption(plan.ExerciseLabel(ex), ex)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Exercise").Options(options...).Value(m.formExercise),
			huh.NewInput().Title("Weight (kg)").Value(m.formWeight),
			huh.NewInput().Title("Reps").Value(m.formReps),
			huh.NewInput().Title("Memo").Placeholder("Anything notable?").Value(m.formMemo),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m diaryModel) updateForm(msg tea.Msg) (diaryModel, tea.Cmd) {
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
		form := plan.WorkoutForm{
			Exercise: *m.formExercise,
			Weight:   *m.formWeight,
			Reps:     *m.formReps,
			Memo:     *m.formMemo,
		}
		if _, err := m.workouts.Add(form, m.date); err != nil {
			return m, errStatus(err)
		}
		// The chart follows the exercise just recorded.
		m.exercise = *m.formExercise
		m.refresh()
		return m, func() tea.Msg { return statusMsg{text: "Workout recorded"} }
	}

	return m, cmd
}

func (m diaryModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Workout — " + dayHeading(m.date))
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	recordsPanel := m.renderRecords(w)
	chartPanel := m.renderChart(w)

	return lipgloss.JoinVertical(lipgloss.Left, recordsPanel, chartPanel)
}

func (m diaryModel) renderRecords(w int) string {
	title := titleStyle.Render("Workout Diary — " + dayHeading(m.date))

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	if m.confirming {
		rows = append(rows, warningStyle.Render("Delete this record? (y/n)"))
		rows = append(rows, "")
	}

	if len(m.day) == 0 {
		rows = append(rows, mutedStyle.Render("No records for this day. Press n to add one."))
	}

	for i, r := range m.day {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		weight, reps := 0.0, 0
		if len(r.Sets) > 0 {
			weight = r.Sets[0].Weight
			reps = r.Sets[0].Reps
		}
		line := fmt.Sprintf("%s%-16s %gkg × %d", cursor, plan.ExerciseLabel(r.Exercise), weight, reps)
		if r.Memo != "" {
			line += mutedStyle.Render("  — " + r.Memo)
		}
		rows = append(rows, style.Render(line))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  d: delete  ←/→: day  p: chart exercise"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m diaryModel) renderChart(w int) string {
	if m.exercise == "" {
		return panelStyle.Width(w).Render(
			mutedStyle.Render("Press p to pick an exercise for the progress chart"),
		)
	}

	title := titleStyle.Render(plan.ExerciseLabel(m.exercise) + " — last 7 days")

	// Memo line for the most recent non-empty memo in the series.
	memo := ""
	for _, p := range m.workouts.ChartSeries(m.exercise, today()) {
		if p.Memo != "" {
			memo = p.Date + ": " + p.Memo
		}
	}

	rows := []string{title, "", m.chart.View()}
	if memo != "" {
		rows = append(rows, "", mutedStyle.Render(memo))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
