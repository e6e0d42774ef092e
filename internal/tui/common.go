package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/PocheonLim/TeamPlaner/internal/plan"
)

// viewState represents the currently active view.
type viewState int

const (
	viewSchedule viewState = iota
	viewDiary
	viewNotes
	viewSettings
)

var viewNames = []string{"Schedule", "Diary", "Notes", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type loggedInMsg struct{}

type loggedOutMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func errStatus(err error) func() tea.Msg {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
	}
}

// dayHeading renders a date key as "Mon, Jun 03 2024". Unparseable
// keys are shown raw.
func dayHeading(date string) string {
	d, err := plan.ParseDateKey(date)
	if err != nil {
		return date
	}
	return d.Format("Mon, Jan 02 2006")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// today returns the current day truncated to midnight local time.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}
