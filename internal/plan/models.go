package plan

import "time"

// Todo is one schedule item. Position is its sequence within the day;
// ordering is always per day, never across the whole collection.
type Todo struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Position  int    `json:"position"`
}

type WorkoutSet struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

// WorkoutRecord is one diary entry. Records are created and deleted,
// never edited. The form flow writes exactly one set per record.
type WorkoutRecord struct {
	ID       int64        `json:"id"`
	Date     string       `json:"date"`
	Exercise string       `json:"exercise"`
	Sets     []WorkoutSet `json:"sets"`
	Memo     string       `json:"memo,omitempty"`
}

// Volume is the total weight moved: Σ weight×reps over all sets.
func (r WorkoutRecord) Volume() float64 {
	var v float64
	for _, set := range r.Sets {
		v += set.Weight * float64(set.Reps)
	}
	return v
}

// WorkoutForm carries raw form input. Weight and Reps arrive as
// strings and are coerced by the factory.
type WorkoutForm struct {
	Exercise string
	Weight   string
	Reps     string
	Memo     string
}

// NoteBook maps a date key to that day's note content, one entry per
// date, overwritten on every editor change.
type NoteBook map[string]string

// ChartPoint is one day of the 7-day progress series.
type ChartPoint struct {
	Date   string
	Volume float64
	Memo   string
}

// Exercise catalog shown in the diary form.
var ExerciseKeys = []string{"squat", "deadlift", "benchPress", "overhead"}

var exerciseLabels = map[string]string{
	"squat":      "Squat",
	"deadlift":   "Deadlift",
	"benchPress": "Bench Press",
	"overhead":   "Overhead Press",
}

// ExerciseLabel returns the display name for an exercise key. Unknown
// keys fall back to the key itself.
func ExerciseLabel(key string) string {
	if label, ok := exerciseLabels[key]; ok {
		return label
	}
	return key
}

const dateLayout = "2006-01-02"

// DateKey formats a time as the canonical YYYY-MM-DD bucket key. Every
// write and read path goes through this one formatter so a record can
// never be hidden by a formatting mismatch.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDateKey parses a canonical date key back to a time.
func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(dateLayout, key)
}
