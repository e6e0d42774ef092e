package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/PocheonLim/TeamPlaner/internal/plan"
)

// notesModel is the daily note view: one note per day, edited in
// place and autosaved when leaving the editor or switching days.
type notesModel struct {
	notes  *plan.NoteService
	width  int
	height int

	date    string
	editor  *markEditor
	editing bool
	preview bool
}

func newNotesModel(notes *plan.NoteService) notesModel {
	m := notesModel{
		notes:  notes,
		date:   plan.DateKey(today()),
		editor: newMarkEditor(),
	}
	m.editor.SetContent(notes.NoteFor(m.date))
	return m
}

func (m *notesModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.editor.ta.SetWidth(max(w-10, 20))
	m.editor.ta.SetHeight(max(h-10, 5))
}

// save writes the editor content through to the note book.
func (m *notesModel) save() error {
	return m.notes.SetNote(m.date, m.editor.Content())
}

func (m *notesModel) switchDay(offset int) error {
	if err := m.save(); err != nil {
		return err
	}
	d, err := plan.ParseDateKey(m.date)
	if err != nil {
		return err
	}
	m.date = plan.DateKey(d.AddDate(0, 0, offset))
	m.editor.SetContent(m.notes.NoteFor(m.date))
	return nil
}

func (m notesModel) update(msg tea.Msg) (notesModel, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)

	if m.editing {
		if isKey {
			switch keyMsg.String() {
			case "esc":
				m.editing = false
				m.editor.ta.Blur()
				if err := m.save(); err != nil {
					return m, errStatus(err)
				}
				return m, func() tea.Msg { return statusMsg{text: "Note saved"} }
			case "ctrl+b":
				m.editor.Toggle(plan.MarkBold)
				return m, nil
			case "ctrl+t":
				m.editor.Toggle(plan.MarkItalic)
				return m, nil
			case "ctrl+l":
				m.editor.Toggle(plan.MarkBulletList)
				return m, nil
			case "ctrl+o":
				m.editor.Toggle(plan.MarkOrderedList)
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.editor.ta, cmd = m.editor.ta.Update(msg)
		return m, cmd
	}

	if !isKey {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Left):
		if err := m.switchDay(-1); err != nil {
			return m, errStatus(err)
		}
	case key.Matches(keyMsg, keys.Right):
		if err := m.switchDay(1); err != nil {
			return m, errStatus(err)
		}
	case key.Matches(keyMsg, keys.Enter):
		m.editing = true
		m.preview = false
		return m, m.editor.ta.Focus()
	case key.Matches(keyMsg, keys.Preview):
		m.preview = !m.preview
	}

	return m, nil
}

func (m notesModel) view() string {
	w := m.width - 4

	title := titleStyle.Render("Daily Note — " + dayHeading(m.date))

	marks := m.renderMarkBar()

	var body string
	switch {
	case m.preview:
		body = m.notes.RenderHTML(m.editor.Content())
		if strings.TrimSpace(body) == "" {
			body = mutedStyle.Render("Nothing written yet.")
		}
	case m.editing:
		body = m.editor.ta.View()
	default:
		content := m.editor.Content()
		if strings.TrimSpace(content) == "" {
			body = mutedStyle.Render("Nothing written yet. Press enter to write.")
		} else {
			body = content
		}
	}

	hint := mutedStyle.Render("  enter: edit  esc: save  p: preview  ←/→: day  ^b/^t/^l/^o: marks")

	style := panelStyle
	if m.editing {
		style = activePanelStyle
	}
	return style.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, marks, "", body, "", hint),
	)
}

// renderMarkBar shows which inline marks are currently open.
func (m notesModel) renderMarkBar() string {
	if !m.editing {
		return ""
	}
	var parts []string
	for _, mark := range []string{plan.MarkBold, plan.MarkItalic} {
		style := mutedStyle
		if m.editor.IsActive(mark) {
			style = accentStyle
		}
		parts = append(parts, style.Render(mark))
	}
	return "  " + strings.Join(parts, "  ")
}
