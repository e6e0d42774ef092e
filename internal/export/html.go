package export

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/PocheonLim/TeamPlaner/internal/plan"
)

// NotesToHTML writes the note book as one standalone HTML document,
// dates ascending. render converts note content to HTML; pass the
// note service's RenderHTML.
func NotesToHTML(notes plan.NoteBook, render func(string) string, path string) error {
	dates := make([]string, 0, len(notes))
	for date := range notes {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>Daily Notes</title>\n</head>\n<body>\n")
	for _, date := range dates {
		fmt.Fprintf(&b, "<section>\n<h2>%s</h2>\n%s</section>\n", date, render(notes[date]))
	}
	b.WriteString("</body>\n</html>\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write html file: %w", err)
	}
	return nil
}
