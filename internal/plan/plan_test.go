package plan

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/PocheonLim/TeamPlaner/internal/auth"
	"github.com/PocheonLim/TeamPlaner/internal/store"
)

// stubSession is a Provider with a switchable user.
type stubSession struct {
	user *auth.User
}

func (s *stubSession) CurrentUser() *auth.User { return s.user }

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func loggedIn() *stubSession {
	return &stubSession{user: &auth.User{ID: 1, Username: "demo", Email: "demo@example.com"}}
}

func newTodoService(t *testing.T, s *store.Store, session auth.Provider) *TodoService {
	t.Helper()
	ts, err := NewTodoService(s, session)
	if err != nil {
		t.Fatalf("new todo service: %v", err)
	}
	return ts
}

func newWorkoutService(t *testing.T, s *store.Store, session auth.Provider) *WorkoutService {
	t.Helper()
	ws, err := NewWorkoutService(s, session)
	if err != nil {
		t.Fatalf("new workout service: %v", err)
	}
	return ws
}

// ============================================================
// Date keys
// ============================================================

func TestDateKey(t *testing.T) {
	d := time.Date(2024, 6, 1, 23, 59, 0, 0, time.Local)
	if got := DateKey(d); got != "2024-06-01" {
		t.Fatalf("expected 2024-06-01, got %q", got)
	}
}

func TestParseDateKeyRoundTrip(t *testing.T) {
	parsed, err := ParseDateKey("2024-06-01")
	if err != nil {
		t.Fatal(err)
	}
	if DateKey(parsed) != "2024-06-01" {
		t.Fatalf("round trip broke: %q", DateKey(parsed))
	}
}

// ============================================================
// Factory
// ============================================================

func TestSeqGenMonotonic(t *testing.T) {
	gen := NewSeq(41)
	first := gen.Next()
	second := gen.Next()
	if first != 42 || second != 43 {
		t.Fatalf("expected 42, 43, got %d, %d", first, second)
	}
}

func TestSeqGenUniqueUnderRapidCalls(t *testing.T) {
	gen := NewSeq(0)
	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		id := gen.Next()
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
}

func TestNewTodoEmptyTitle(t *testing.T) {
	f := NewFactory(NewSeq(0))
	if _, err := f.NewTodo("   ", "2024-06-01", 0); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
}

func TestNewWorkoutRecordCoercion(t *testing.T) {
	f := NewFactory(NewSeq(0))
	r, err := f.NewWorkoutRecord(WorkoutForm{Exercise: "squat", Weight: "102.5", Reps: "5"}, "2024-06-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Sets) != 1 {
		t.Fatalf("expected exactly one set, got %d", len(r.Sets))
	}
	if r.Sets[0].Weight != 102.5 || r.Sets[0].Reps != 5 {
		t.Fatalf("unexpected set: %+v", r.Sets[0])
	}
}

func TestNewWorkoutRecordBadInput(t *testing.T) {
	f := NewFactory(NewSeq(0))

	cases := []WorkoutForm{
		{Exercise: "squat", Weight: "heavy", Reps: "5"},
		{Exercise: "squat", Weight: "100", Reps: "five"},
		{Exercise: "squat", Weight: "-100", Reps: "5"},
		{Exercise: "squat", Weight: "100", Reps: "-5"},
	}
	for _, form := range cases {
		if _, err := f.NewWorkoutRecord(form, "2024-06-01"); !errors.Is(err, ErrBadNumber) {
			t.Fatalf("form %+v: expected ErrBadNumber, got %v", form, err)
		}
	}

	if _, err := f.NewWorkoutRecord(WorkoutForm{Weight: "100", Reps: "5"}, "2024-06-01"); !errors.Is(err, ErrNoExercise) {
		t.Fatalf("expected ErrNoExercise, got %v", err)
	}
}

func TestRecordVolume(t *testing.T) {
	r := WorkoutRecord{Sets: []WorkoutSet{{Weight: 100, Reps: 5}, {Weight: 90, Reps: 8}}}
	if r.Volume() != 1220 {
		t.Fatalf("expected 1220, got %v", r.Volume())
	}
}

// ============================================================
// Todos
// ============================================================

func TestAddTodo(t *testing.T) {
	ts := newTodoService(t, newTestStore(t), loggedIn())

	todo, err := ts.Add("run", "2024-06-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(ts.All()) != 1 {
		t.Fatalf("expected 1 todo, got %d", len(ts.All()))
	}
	if todo.ID == 0 {
		t.Fatal("expected non-zero id")
	}
	if todo.Completed {
		t.Fatal("new todo should not be completed")
	}

	day := ts.ByDate("2024-06-01")
	if len(day) != 1 || day[0].Title != "run" {
		t.Fatalf("unexpected day view: %+v", day)
	}
}

func TestAddTodoGrowsByOne(t *testing.T) {
	ts := newTodoService(t, newTestStore(t), loggedIn())

	for i := 0; i < 5; i++ {
		before := len(ts.All())
		todo, err := ts.Add("item", "2024-06-01")
		if err != nil {
			t.Fatal(err)
		}
		if len(ts.All()) != before+1 {
			t.Fatalf("size should grow by exactly 1, got %d -> %d", before, len(ts.All()))
		}
		found := false
		for _, existing := range ts.All() {
			if existing.ID == todo.ID {
				found = true
			}
		}
		if !found {
			t.Fatal("added todo not in collection")
		}
	}
}

func TestAddTodoUnauthenticated(t *testing.T) {
	ts := newTodoService(t, newTestStore(t), &stubSession{})

	_, err := ts.Add("run", "2024-06-01")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if len(ts.All()) != 0 {
		t.Fatal("unauthenticated add must not apply")
	}
}

func TestDeleteTodo(t *testing.T) {
	ts := newTodoService(t, newTestStore(t), loggedIn())
	a, _ := ts.Add("a", "2024-06-01")
	ts.Add("b", "2024-06-01")

	if err := ts.Delete(a.ID); err != nil {
		t.Fatal(err)
	}
	if len(ts.All()) != 1 {
		t.Fatalf("expected exactly one removal, got %d left", len(ts.All()))
	}
	if ts.All()[0].Title != "b" {
		t.Fatal("wrong todo removed")
	}
}

func TestDeleteAbsentTodo(t *testing.T) {
	ts := newTodoService(t, newTestStore(t), loggedIn())
	ts.Add("a", "2024-06-01")

	before := append([]Todo(nil), ts.All()...)
	if err := ts.Delete(999); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(before, ts.All()) {
		t.Fatal("deleting an absent id must leave the collection unchanged")
	}
}

func TestToggleTodoTwiceIsIdentity(t *testing.T) {
	ts := newTodoService(t, newTestStore(t), loggedIn())
	todo, _ := ts.Add("a", "2024-06-01")

	before := append([]Todo(nil), ts.All()...)

	ts.Toggle(todo.ID)
	if !ts.All()[0].Completed {
		t.Fatal("first toggle should complete the todo")
	}
	ts.Toggle(todo.ID)
	if !reflect.DeepEqual(before, ts.All()) {
		t.Fatal("double toggle should be identity")
	}
}

func TestToggleAbsentTodo(t *testing.T) {
	ts := newTodoService(t, newTestStore(t), loggedIn())
	ts.Add("a", "2024-06-01")

	before := append([]Todo(nil), ts.All()...)
	if err := ts.Toggle(999); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(before, ts.All()) {
		t.Fatal("toggling an absent id must be a no-op")
	}
}

func TestByDateFilter(t *testing.T) {
	ts := newTodoService(t, newTestStore(t), loggedIn())
	ts.Add("a", "2024-06-01")
	ts.Add("b", "2024-06-02")
	ts.Add("c", "2024-06-01")

	day := ts.ByDate("2024-06-01")
	if len(day) != 2 {
		t.Fatalf("expected 2 todos for the day, got %d", len(day))
	}
	for _, todo := range day {
		if todo.Date != "2024-06-01" {
			t.Fatalf("wrong-day record leaked into filter: %+v", todo)
		}
	}
	if day[0].Title != "a" || day[1].Title != "c" {
		t.Fatalf("day order wrong: %s, %s", day[0].Title, day[1].Title)
	}
}

func TestReorderWithinDay(t *testing.T) {
	ts := newTodoService(t, newTestStore(t), loggedIn())
	a, _ := ts.Add("a", "2024-06-01")
	ts.Add("b", "2024-06-01")
	c, _ := ts.Add("c", "2024-06-01")

	// Drag a onto c: a moves to the end.
	if err := ts.Reorder("2024-06-01", a.ID, c.ID); err != nil {
		t.Fatal(err)
	}

	day := ts.ByDate("2024-06-01")
	got := []string{day[0].Title, day[1].Title, day[2].Title}
	want := []string{"b", "c", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestReorderDoesNotTouchOtherDays(t *testing.T) {
	ts := newTodoService(t, newTestStore(t), loggedIn())
	ts.Add("mon-1", "2024-06-03")
	a, _ := ts.Add("tue-1", "2024-06-04")
	ts.Add("mon-2", "2024-06-03")
	b, _ := ts.Add("tue-2", "2024-06-04")

	otherBefore := ts.ByDate("2024-06-03")

	if err := ts.Reorder("2024-06-04", b.ID, a.ID); err != nil {
		t.Fatal(err)
	}

	tue := ts.ByDate("2024-06-04")
	if tue[0].Title != "tue-2" || tue[1].Title != "tue-1" {
		t.Fatalf("reorder within day failed: %+v", tue)
	}

	otherAfter := ts.ByDate("2024-06-03")
	if !reflect.DeepEqual(otherBefore, otherAfter) {
		t.Fatalf("reorder leaked into another day: %+v -> %+v", otherBefore, otherAfter)
	}
}

func TestReorderAbsentIDs(t *testing.T) {
	ts := newTodoService(t, newTestStore(t), loggedIn())
	a, _ := ts.Add("a", "2024-06-01")

	before := append([]Todo(nil), ts.All()...)
	if err := ts.Reorder("2024-06-01", a.ID, 999); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(before, ts.All()) {
		t.Fatal("reorder with an absent target must be a no-op")
	}
}

func TestTodosRoundTrip(t *testing.T) {
	s := newTestStore(t)
	session := loggedIn()

	ts := newTodoService(t, s, session)
	ts.Add("run", "2024-06-01")
	ts.Add("read", "2024-06-02")
	ts.Toggle(ts.All()[0].ID)

	reloaded := newTodoService(t, s, session)
	if !reflect.DeepEqual(ts.All(), reloaded.All()) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", ts.All(), reloaded.All())
	}
}

func TestTodosCorruptedSlotFailsSoft(t *testing.T) {
	s := newTestStore(t)
	s.Save(store.SlotTodos, []byte(`{not json`))

	ts := newTodoService(t, s, loggedIn())
	if len(ts.All()) != 0 {
		t.Fatal("corrupted slot should load as the empty collection")
	}

	// And the service must still be usable.
	if _, err := ts.Add("fresh start", "2024-06-01"); err != nil {
		t.Fatal(err)
	}
}

func TestTodoIDsContinueAfterReload(t *testing.T) {
	s := newTestStore(t)
	session := loggedIn()

	ts := newTodoService(t, s, session)
	first, _ := ts.Add("a", "2024-06-01")

	reloaded := newTodoService(t, s, session)
	second, err := reloaded.Add("b", "2024-06-01")
	if err != nil {
		t.Fatal(err)
	}
	if second.ID <= first.ID {
		t.Fatalf("id %d should continue past persisted max %d", second.ID, first.ID)
	}
}

// ============================================================
// Workouts
// ============================================================

func TestAddWorkoutRecord(t *testing.T) {
	ws := newWorkoutService(t, newTestStore(t), loggedIn())

	r, err := ws.Add(WorkoutForm{Exercise: "squat", Weight: "100", Reps: "5", Memo: "felt strong"}, "2024-06-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(ws.All()) != 1 {
		t.Fatalf("expected 1 record, got %d", len(ws.All()))
	}
	if r.Volume() != 500 {
		t.Fatalf("expected volume 500, got %v", r.Volume())
	}
}

func TestAddWorkoutUnauthenticated(t *testing.T) {
	ws := newWorkoutService(t, newTestStore(t), &stubSession{})

	_, err := ws.Add(WorkoutForm{Exercise: "squat", Weight: "100", Reps: "5"}, "2024-06-01")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestDeleteWorkoutRecord(t *testing.T) {
	ws := newWorkoutService(t, newTestStore(t), loggedIn())
	a, _ := ws.Add(WorkoutForm{Exercise: "squat", Weight: "100", Reps: "5"}, "2024-06-01")
	ws.Add(WorkoutForm{Exercise: "deadlift", Weight: "140", Reps: "3"}, "2024-06-01")

	if err := ws.Delete(a.ID); err != nil {
		t.Fatal(err)
	}
	if len(ws.All()) != 1 || ws.All()[0].Exercise != "deadlift" {
		t.Fatalf("wrong record removed: %+v", ws.All())
	}

	// Absent id: no-op.
	if err := ws.Delete(999); err != nil {
		t.Fatal(err)
	}
	if len(ws.All()) != 1 {
		t.Fatal("deleting an absent id changed the collection")
	}
}

func TestWorkoutsByDate(t *testing.T) {
	ws := newWorkoutService(t, newTestStore(t), loggedIn())
	ws.Add(WorkoutForm{Exercise: "squat", Weight: "100", Reps: "5"}, "2024-06-01")
	ws.Add(WorkoutForm{Exercise: "squat", Weight: "105", Reps: "5"}, "2024-06-02")

	day := ws.ByDate("2024-06-01")
	if len(day) != 1 || day[0].Date != "2024-06-01" {
		t.Fatalf("unexpected day view: %+v", day)
	}
}

func TestWorkoutsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	session := loggedIn()

	ws := newWorkoutService(t, s, session)
	ws.Add(WorkoutForm{Exercise: "squat", Weight: "102.5", Reps: "5", Memo: "pr"}, "2024-06-01")

	reloaded := newWorkoutService(t, s, session)
	if !reflect.DeepEqual(ws.All(), reloaded.All()) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", ws.All(), reloaded.All())
	}
}

// ============================================================
// Chart series
// ============================================================

func TestChartSeriesShape(t *testing.T) {
	today := time.Date(2024, 6, 7, 12, 0, 0, 0, time.Local)

	points := ChartSeries(nil, "squat", today)
	if len(points) != 7 {
		t.Fatalf("expected exactly 7 points, got %d", len(points))
	}
	for _, p := range points {
		if p.Volume != 0 {
			t.Fatalf("empty collection should yield zero volume, got %+v", p)
		}
	}
	if points[0].Date != "06/01" || points[6].Date != "06/07" {
		t.Fatalf("expected ascending chronological labels, got %s .. %s", points[0].Date, points[6].Date)
	}
}

func TestChartSeriesConsecutiveDays(t *testing.T) {
	today := time.Date(2024, 6, 7, 12, 0, 0, 0, time.Local)
	records := []WorkoutRecord{
		{ID: 1, Date: "2024-06-05", Exercise: "squat", Sets: []WorkoutSet{{Weight: 100, Reps: 5}}},
		{ID: 2, Date: "2024-06-06", Exercise: "squat", Sets: []WorkoutSet{{Weight: 110, Reps: 5}}, Memo: "pr"},
	}

	points := ChartSeries(records, "squat", today)
	if points[4].Volume != 500 {
		t.Fatalf("expected 500 at offset -2, got %v", points[4].Volume)
	}
	if points[5].Volume != 550 || points[5].Memo != "pr" {
		t.Fatalf("expected 550/pr at offset -1, got %+v", points[5])
	}
	for i, p := range points {
		if i != 4 && i != 5 && p.Volume != 0 {
			t.Fatalf("expected zero volume at index %d, got %v", i, p.Volume)
		}
	}
}

func TestChartSeriesIgnoresOtherExercises(t *testing.T) {
	today := time.Date(2024, 6, 7, 12, 0, 0, 0, time.Local)
	records := []WorkoutRecord{
		{ID: 1, Date: "2024-06-07", Exercise: "deadlift", Sets: []WorkoutSet{{Weight: 140, Reps: 3}}},
	}

	points := ChartSeries(records, "squat", today)
	if points[6].Volume != 0 {
		t.Fatal("other exercises must not contribute volume")
	}
}

func TestChartSeriesFirstMatchWins(t *testing.T) {
	today := time.Date(2024, 6, 7, 12, 0, 0, 0, time.Local)
	records := []WorkoutRecord{
		{ID: 1, Date: "2024-06-07", Exercise: "squat", Sets: []WorkoutSet{{Weight: 100, Reps: 5}}},
		{ID: 2, Date: "2024-06-07", Exercise: "squat", Sets: []WorkoutSet{{Weight: 200, Reps: 5}}},
	}

	points := ChartSeries(records, "squat", today)
	if points[6].Volume != 500 {
		t.Fatalf("first record in storage order should win, got %v", points[6].Volume)
	}
}

func TestChartSeriesNoExercise(t *testing.T) {
	if points := ChartSeries(nil, "", time.Now()); points != nil {
		t.Fatalf("empty exercise should yield no series, got %d points", len(points))
	}
}

// ============================================================
// Notes
// ============================================================

func TestSetAndGetNote(t *testing.T) {
	s := newTestStore(t)
	ns, err := NewNoteService(s, loggedIn())
	if err != nil {
		t.Fatal(err)
	}

	if ns.NoteFor("2024-06-01") != "" {
		t.Fatal("unset date should yield an empty note")
	}

	if err := ns.SetNote("2024-06-01", "leg day went well"); err != nil {
		t.Fatal(err)
	}
	if ns.NoteFor("2024-06-01") != "leg day went well" {
		t.Fatal("note content lost")
	}

	// Overwrite, one entry per date.
	ns.SetNote("2024-06-01", "rewritten")
	if ns.NoteFor("2024-06-01") != "rewritten" {
		t.Fatal("note should be overwritten in place")
	}
	if len(ns.Dates()) != 1 {
		t.Fatalf("expected a single date entry, got %d", len(ns.Dates()))
	}
}

func TestSetNoteUnauthenticated(t *testing.T) {
	s := newTestStore(t)
	ns, _ := NewNoteService(s, &stubSession{})

	if err := ns.SetNote("2024-06-01", "x"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestNotesRoundTrip(t *testing.T) {
	s := newTestStore(t)
	session := loggedIn()

	ns, _ := NewNoteService(s, session)
	ns.SetNote("2024-06-01", "**bold** plans")

	reloaded, _ := NewNoteService(s, session)
	if reloaded.NoteFor("2024-06-01") != "**bold** plans" {
		t.Fatal("note did not survive reload")
	}
}

func TestNotesCorruptedSlotFailsSoft(t *testing.T) {
	s := newTestStore(t)
	s.Save(store.SlotNotes, []byte(`[whoops`))

	ns, err := NewNoteService(s, loggedIn())
	if err != nil {
		t.Fatal(err)
	}
	if len(ns.Dates()) != 0 {
		t.Fatal("corrupted slot should load as an empty note book")
	}
}

func TestRenderHTML(t *testing.T) {
	ns, _ := NewNoteService(newTestStore(t), loggedIn())

	html := ns.RenderHTML("**bold** and *italic*")
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Fatalf("expected bold markup, got %q", html)
	}
	if !strings.Contains(html, "<em>italic</em>") {
		t.Fatalf("expected italic markup, got %q", html)
	}
}
