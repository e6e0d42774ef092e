package plan

import (
	"fmt"
	"strconv"
	"strings"
)

// IDGen hands out collection-unique identifiers. Injected into the
// factory so id assignment is deterministic in tests and free of
// wall-clock collisions.
type IDGen interface {
	Next() int64
}

type seqGen struct {
	last int64
}

// NewSeq returns a monotonic IDGen that continues after seed. Seeding
// with the highest id already in a loaded collection keeps new ids
// unique against persisted records.
func NewSeq(seed int64) IDGen {
	return &seqGen{last: seed}
}

func (g *seqGen) Next() int64 {
	g.last++
	return g.last
}

// MaxTodoID returns the highest id in a todo collection, 0 when empty.
func MaxTodoID(todos []Todo) int64 {
	var max int64
	for _, t := range todos {
		if t.ID > max {
			max = t.ID
		}
	}
	return max
}

// MaxRecordID returns the highest id in a workout collection.
func MaxRecordID(records []WorkoutRecord) int64 {
	var max int64
	for _, r := range records {
		if r.ID > max {
			max = r.ID
		}
	}
	return max
}

// Factory constructs new records with generated ids.
type Factory struct {
	ids IDGen
}

func NewFactory(ids IDGen) *Factory {
	return &Factory{ids: ids}
}

// NewTodo builds a todo for the given day. Position is the todo's
// sequence within that day, assigned by the caller.
func (f *Factory) NewTodo(title, date string, position int) (Todo, error) {
	if strings.TrimSpace(title) == "" {
		return Todo{}, ErrEmptyTitle
	}
	return Todo{
		ID:       f.ids.Next(),
		Title:    title,
		Date:     date,
		Position: position,
	}, nil
}

// NewWorkoutRecord wraps submitted form input into a record with one
// set. Weight and reps are coerced from their input strings; anything
// non-numeric or negative is a validation failure.
func (f *Factory) NewWorkoutRecord(form WorkoutForm, date string) (WorkoutRecord, error) {
	if form.Exercise == "" {
		return WorkoutRecord{}, ErrNoExercise
	}
	weight, err := strconv.ParseFloat(strings.TrimSpace(form.Weight), 64)
	if err != nil || weight < 0 {
		return WorkoutRecord{}, fmt.Errorf("weight %q: %w", form.Weight, ErrBadNumber)
	}
	reps, err := strconv.Atoi(strings.TrimSpace(form.Reps))
	if err != nil || reps < 0 {
		return WorkoutRecord{}, fmt.Errorf("reps %q: %w", form.Reps, ErrBadNumber)
	}
	return WorkoutRecord{
		ID:       f.ids.Next(),
		Date:     date,
		Exercise: form.Exercise,
		Sets:     []WorkoutSet{{Weight: weight, Reps: reps}},
		Memo:     form.Memo,
	}, nil
}
