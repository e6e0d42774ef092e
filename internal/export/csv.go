package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/PocheonLim/TeamPlaner/internal/plan"
)

func TodosToCSV(todos []plan.Todo, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Date", "Title", "Completed", "Position"}); err != nil {
		return err
	}

	for _, t := range todos {
		row := []string{
			strconv.FormatInt(t.ID, 10),
			t.Date,
			t.Title,
			strconv.FormatBool(t.Completed),
			strconv.Itoa(t.Position),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func WorkoutsToCSV(records []plan.WorkoutRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Date", "Exercise", "Weight", "Reps", "Volume", "Memo"}); err != nil {
		return err
	}

	for _, r := range records {
		// The form flow writes one set per record; flatten the first.
		weight, reps := 0.0, 0
		if len(r.Sets) > 0 {
			weight = r.Sets[0].Weight
			reps = r.Sets[0].Reps
		}
		row := []string{
			strconv.FormatInt(r.ID, 10),
			r.Date,
			plan.ExerciseLabel(r.Exercise),
			strconv.FormatFloat(weight, 'f', -1, 64),
			strconv.Itoa(reps),
			strconv.FormatFloat(r.Volume(), 'f', -1, 64),
			r.Memo,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
