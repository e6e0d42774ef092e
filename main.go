package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/PocheonLim/TeamPlaner/internal/auth"
	"github.com/PocheonLim/TeamPlaner/internal/plan"
	"github.com/PocheonLim/TeamPlaner/internal/store"
	"github.com/PocheonLim/TeamPlaner/internal/tui"
)

func main() {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving data directory: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	session := auth.NewLocal()

	todos, err := plan.NewTodoService(s, session)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading todos: %v\n", err)
		os.Exit(1)
	}

	workouts, err := plan.NewWorkoutService(s, session)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading workout records: %v\n", err)
		os.Exit(1)
	}

	notes, err := plan.NewNoteService(s, session)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading notes: %v\n", err)
		os.Exit(1)
	}

	app := tui.NewApp(s, session, todos, workouts, notes)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
