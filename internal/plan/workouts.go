package plan

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/PocheonLim/TeamPlaner/internal/auth"
	"github.com/PocheonLim/TeamPlaner/internal/store"
)

// WorkoutService owns the workout record collection in memory and
// persists it as a unit after every mutation.
type WorkoutService struct {
	store   *store.Store
	session auth.Provider
	factory *Factory

	records []WorkoutRecord
}

// NewWorkoutService loads the persisted collection, failing soft to
// empty on an absent or corrupted slot.
func NewWorkoutService(s *store.Store, session auth.Provider) (*WorkoutService, error) {
	raw, ok, err := s.Load(store.SlotWorkouts)
	if err != nil {
		return nil, fmt.Errorf("load workout records: %w", err)
	}

	var records []WorkoutRecord
	if ok {
		if err := json.Unmarshal(raw, &records); err != nil {
			records = nil
		}
	}

	return &WorkoutService{
		store:   s,
		session: session,
		factory: NewFactory(NewSeq(MaxRecordID(records))),
		records: records,
	}, nil
}

// All returns the full collection in storage order.
func (ws *WorkoutService) All() []WorkoutRecord {
	return ws.records
}

// ByDate returns the day's records, order preserving.
func (ws *WorkoutService) ByDate(date string) []WorkoutRecord {
	var day []WorkoutRecord
	for _, r := range ws.records {
		if r.Date == date {
			day = append(day, r)
		}
	}
	return day
}

// Add appends a record built from the submitted form. Append only, no
// dedup: two records for the same exercise and day can coexist.
func (ws *WorkoutService) Add(form WorkoutForm, date string) (*WorkoutRecord, error) {
	if ws.session.CurrentUser() == nil {
		return nil, ErrUnauthenticated
	}

	record, err := ws.factory.NewWorkoutRecord(form, date)
	if err != nil {
		return nil, err
	}

	ws.records = append(ws.records, record)
	if err := ws.persist(); err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes the record with the given id. An absent id is a
// no-op. There is no edit operation; records are replaced by deleting
// and re-adding.
func (ws *WorkoutService) Delete(id int64) error {
	if ws.session.CurrentUser() == nil {
		return ErrUnauthenticated
	}

	kept := ws.records[:0:0]
	for _, r := range ws.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(ws.records) {
		return nil
	}
	ws.records = kept
	return ws.persist()
}

// ChartSeries derives the 7-day progress series for an exercise,
// ending at today.
func (ws *WorkoutService) ChartSeries(exercise string, today time.Time) []ChartPoint {
	return ChartSeries(ws.records, exercise, today)
}

func (ws *WorkoutService) persist() error {
	raw, err := json.Marshal(ws.records)
	if err != nil {
		return fmt.Errorf("marshal workout records: %w", err)
	}
	return ws.store.Save(store.SlotWorkouts, raw)
}

// ChartSeries computes one point per day for the 7 days ending at
// today, chronologically ascending. Days without a matching record
// carry zero volume; when a day has several records for the exercise
// the first in storage order wins.
func ChartSeries(records []WorkoutRecord, exercise string, today time.Time) []ChartPoint {
	if exercise == "" {
		return nil
	}

	points := make([]ChartPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		key := DateKey(day)

		point := ChartPoint{Date: day.Format("01/02")}
		for _, r := range records {
			if r.Date == key && r.Exercise == exercise {
				point.Volume = r.Volume()
				point.Memo = r.Memo
				break
			}
		}
		points = append(points, point)
	}
	return points
}
