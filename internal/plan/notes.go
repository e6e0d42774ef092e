package plan

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/yuin/goldmark"

	"github.com/PocheonLim/TeamPlaner/internal/auth"
	"github.com/PocheonLim/TeamPlaner/internal/store"
)

// Editor is the narrow capability surface of whatever rich-text widget
// the presentation layer uses. The core never depends on a concrete
// editor implementation.
type Editor interface {
	Content() string
	SetContent(content string)
	IsActive(mark string) bool
	Toggle(mark string)
}

// Mark names understood by Editor implementations.
const (
	MarkBold        = "bold"
	MarkItalic      = "italic"
	MarkBulletList  = "bulletList"
	MarkOrderedList = "orderedList"
)

// NoteService owns the daily-note map: one note per date key,
// overwritten on every editor change, never explicitly deleted.
type NoteService struct {
	store   *store.Store
	session auth.Provider
	md      goldmark.Markdown

	notes NoteBook
}

// NewNoteService loads the persisted note map, failing soft to empty
// on an absent or corrupted slot.
func NewNoteService(s *store.Store, session auth.Provider) (*NoteService, error) {
	raw, ok, err := s.Load(store.SlotNotes)
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}

	notes := NoteBook{}
	if ok {
		if err := json.Unmarshal(raw, &notes); err != nil {
			notes = NoteBook{}
		}
	}

	return &NoteService{
		store:   s,
		session: session,
		md:      goldmark.New(),
		notes:   notes,
	}, nil
}

// NoteFor returns the note content for a date, empty string when none
// has been written.
func (ns *NoteService) NoteFor(date string) string {
	return ns.notes[date]
}

// SetNote overwrites the note for a date and re-persists the map.
func (ns *NoteService) SetNote(date, content string) error {
	if ns.session.CurrentUser() == nil {
		return ErrUnauthenticated
	}

	ns.notes[date] = content
	return ns.persist()
}

// RenderHTML converts note content to HTML for preview and export.
// Content that fails to convert is returned as is.
func (ns *NoteService) RenderHTML(content string) string {
	var buf bytes.Buffer
	if err := ns.md.Convert([]byte(content), &buf); err != nil {
		return content
	}
	return buf.String()
}

// Book returns the full date-to-content map, read only.
func (ns *NoteService) Book() NoteBook {
	return ns.notes
}

// Dates returns every date key that has a note.
func (ns *NoteService) Dates() []string {
	dates := make([]string, 0, len(ns.notes))
	for date := range ns.notes {
		dates = append(dates, date)
	}
	return dates
}

func (ns *NoteService) persist() error {
	raw, err := json.Marshal(ns.notes)
	if err != nil {
		return fmt.Errorf("marshal notes: %w", err)
	}
	return ns.store.Save(store.SlotNotes, raw)
}
