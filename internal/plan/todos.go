package plan

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/PocheonLim/TeamPlaner/internal/auth"
	"github.com/PocheonLim/TeamPlaner/internal/store"
)

// TodoService owns the todo collection in memory. Every mutation
// recomputes the collection and writes it back through a
// full-collection replace, then views re-derive from the result.
type TodoService struct {
	store   *store.Store
	session auth.Provider
	factory *Factory

	todos []Todo
}

// NewTodoService loads the persisted collection. A slot that is absent
// or fails to parse yields the empty collection.
func NewTodoService(s *store.Store, session auth.Provider) (*TodoService, error) {
	raw, ok, err := s.Load(store.SlotTodos)
	if err != nil {
		return nil, fmt.Errorf("load todos: %w", err)
	}

	var todos []Todo
	if ok {
		if err := json.Unmarshal(raw, &todos); err != nil {
			// Corrupted slot: fail soft to empty rather than crash.
			todos = nil
		}
	}

	return &TodoService{
		store:   s,
		session: session,
		factory: NewFactory(NewSeq(MaxTodoID(todos))),
		todos:   todos,
	}, nil
}

// All returns the full collection in storage order.
func (ts *TodoService) All() []Todo {
	return ts.todos
}

// ByDate returns the day's todos ordered by their per-day position.
func (ts *TodoService) ByDate(date string) []Todo {
	var day []Todo
	for _, t := range ts.todos {
		if t.Date == date {
			day = append(day, t)
		}
	}
	sort.SliceStable(day, func(i, j int) bool { return day[i].Position < day[j].Position })
	return day
}

// Add appends a new todo at the end of the day's sequence.
func (ts *TodoService) Add(title, date string) (*Todo, error) {
	if ts.session.CurrentUser() == nil {
		return nil, ErrUnauthenticated
	}

	position := 0
	for _, t := range ts.todos {
		if t.Date == date && t.Position >= position {
			position = t.Position + 1
		}
	}

	todo, err := ts.factory.NewTodo(title, date, position)
	if err != nil {
		return nil, err
	}

	ts.todos = append(ts.todos, todo)
	if err := ts.persist(); err != nil {
		return nil, err
	}
	return &todo, nil
}

// Delete removes the todo with the given id. An absent id is a no-op.
func (ts *TodoService) Delete(id int64) error {
	if ts.session.CurrentUser() == nil {
		return ErrUnauthenticated
	}

	kept := ts.todos[:0:0]
	for _, t := range ts.todos {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(ts.todos) {
		return nil
	}
	ts.todos = kept
	return ts.persist()
}

// Toggle flips the completed flag on the matching todo. An absent id
// is a no-op; toggling twice restores the original collection.
func (ts *TodoService) Toggle(id int64) error {
	if ts.session.CurrentUser() == nil {
		return ErrUnauthenticated
	}

	for i := range ts.todos {
		if ts.todos[i].ID == id {
			ts.todos[i].Completed = !ts.todos[i].Completed
			return ts.persist()
		}
	}
	return nil
}

// Reorder moves fromID to toID's place within one day's sequence,
// classic move semantics. Only positions inside that day are
// rewritten, so the relative order of every other day is untouched.
func (ts *TodoService) Reorder(date string, fromID, toID int64) error {
	if ts.session.CurrentUser() == nil {
		return ErrUnauthenticated
	}
	if fromID == toID {
		return nil
	}

	day := ts.ByDate(date)
	from, to := -1, -1
	for i, t := range day {
		if t.ID == fromID {
			from = i
		}
		if t.ID == toID {
			to = i
		}
	}
	if from < 0 || to < 0 {
		return nil
	}

	moved := day[from]
	day = append(day[:from], day[from+1:]...)
	day = append(day[:to], append([]Todo{moved}, day[to:]...)...)

	// Renumber the day and fold the new positions back into the
	// collection.
	positions := make(map[int64]int, len(day))
	for i, t := range day {
		positions[t.ID] = i
	}
	for i := range ts.todos {
		if p, ok := positions[ts.todos[i].ID]; ok {
			ts.todos[i].Position = p
		}
	}
	return ts.persist()
}

func (ts *TodoService) persist() error {
	raw, err := json.Marshal(ts.todos)
	if err != nil {
		return fmt.Errorf("marshal todos: %w", err)
	}
	return ts.store.Save(store.SlotTodos, raw)
}
