package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/PocheonLim/TeamPlaner/internal/plan"
)

type jsonExport struct {
	ExportedAt   string               `json:"exported_at"`
	TodoCount    int                  `json:"todo_count"`
	WorkoutCount int                  `json:"workout_count"`
	NoteCount    int                  `json:"note_count"`
	Todos        []plan.Todo          `json:"todos"`
	Workouts     []plan.WorkoutRecord `json:"workouts"`
	Notes        plan.NoteBook        `json:"notes"`
}

// ToJSON writes a full snapshot of all three collections.
func ToJSON(todos []plan.Todo, workouts []plan.WorkoutRecord, notes plan.NoteBook, path string) error {
	export := jsonExport{
		ExportedAt:   time.Now().UTC().Format(time.RFC3339),
		TodoCount:    len(todos),
		WorkoutCount: len(workouts),
		NoteCount:    len(notes),
		Todos:        todos,
		Workouts:     workouts,
		Notes:        notes,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
