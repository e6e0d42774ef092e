package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"

	"github.com/PocheonLim/TeamPlaner/internal/plan"
)

// markDelims maps inline editor marks to the markdown delimiters the
// note format uses.
var markDelims = map[string]string{
	plan.MarkBold:   "**",
	plan.MarkItalic: "*",
}

// markEditor adapts a textarea to the narrow editor capability the
// notes service expects. Inline marks work like a typewriter ribbon:
// toggling a mark opens its delimiter at the cursor and toggling it
// again closes it.
type markEditor struct {
	ta     textarea.Model
	active map[string]bool
}

func newMarkEditor() *markEditor {
	ta := textarea.New()
	ta.Placeholder = "How was the day?"
	ta.ShowLineNumbers = false
	return &markEditor{
		ta:     ta,
		active: map[string]bool{},
	}
}

func (e *markEditor) Content() string {
	return e.ta.Value()
}

func (e *markEditor) SetContent(content string) {
	e.ta.SetValue(content)
	e.active = map[string]bool{}
}

func (e *markEditor) IsActive(mark string) bool {
	return e.active[mark]
}

func (e *markEditor) Toggle(mark string) {
	switch mark {
	case plan.MarkBold, plan.MarkItalic:
		e.ta.InsertString(markDelims[mark])
		e.active[mark] = !e.active[mark]
	case plan.MarkBulletList:
		e.insertLinePrefix("- ")
	case plan.MarkOrderedList:
		e.insertLinePrefix("1. ")
	}
}

// insertLinePrefix starts a list item, on the current line if the
// content ends with a line break, otherwise on a fresh line.
func (e *markEditor) insertLinePrefix(prefix string) {
	value := e.ta.Value()
	if value != "" && !strings.HasSuffix(value, "\n") {
		e.ta.InsertString("\n")
	}
	e.ta.InsertString(prefix)
}
