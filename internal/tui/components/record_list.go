// Package components contains the building blocks of the ledger browser.
package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/pocket/internal/cli"
	"github.com/Veraticus/pocket/internal/model"
	"github.com/Veraticus/pocket/internal/search"
	"github.com/Veraticus/pocket/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// RecordListModel shows search matches with a movable cursor.
type RecordListModel struct {
	theme    themes.Theme
	settings model.Settings
	matches  []search.Match
	width    int
	height   int
	cursor   int
	offset   int
}

// NewRecordList creates a list sized to width x height rows.
func NewRecordList(theme themes.Theme, width, height int) RecordListModel {
	return RecordListModel{
		theme:    theme,
		width:    width,
		height:   max(height, 1),
		settings: model.DefaultSettings(),
	}
}

// SetMatches replaces the rows. The cursor stays on the same record when it
// is still present.
func (l *RecordListModel) SetMatches(matches []search.Match, settings model.Settings) {
	selectedID := ""
	if sel, ok := l.Selected(); ok {
		selectedID = sel.ID
	}

	l.matches = matches
	l.settings = settings
	l.cursor = 0
	for i, m := range matches {
		if m.Record.ID == selectedID {
			l.cursor = i
			break
		}
	}
	l.clamp()
}

// SetSize updates the visible area.
func (l *RecordListModel) SetSize(width, height int) {
	l.width = width
	l.height = max(height, 1)
	l.clamp()
}

// Len returns the number of rows.
func (l RecordListModel) Len() int {
	return len(l.matches)
}

// Cursor returns the selected row index.
func (l RecordListModel) Cursor() int {
	return l.cursor
}

// Selected returns the record under the cursor.
func (l RecordListModel) Selected() (model.Record, bool) {
	if l.cursor < 0 || l.cursor >= len(l.matches) {
		return model.Record{}, false
	}
	return l.matches[l.cursor].Record, true
}

// Move shifts the cursor by delta rows.
func (l *RecordListModel) Move(delta int) {
	l.cursor += delta
	l.clamp()
}

// Page moves the cursor by one screen.
func (l *RecordListModel) Page(direction int) {
	l.Move(direction * l.height)
}

func (l *RecordListModel) clamp() {
	if l.cursor >= len(l.matches) {
		l.cursor = len(l.matches) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.height {
		l.offset = l.cursor - l.height + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// View renders the visible rows.
func (l RecordListModel) View() string {
	if len(l.matches) == 0 {
		return l.theme.Subtitle.Render("No records match.")
	}

	mark := func(s string) string { return l.theme.Match.Render(s) }
	descWidth := max(l.width-48, 12)

	var b strings.Builder
	end := min(l.offset+l.height, len(l.matches))
	for i := l.offset; i < end; i++ {
		m := l.matches[i]
		description := search.Highlight(truncate(m.Record.Description, descWidth, m.Description), m.Description, mark)
		category := search.Highlight(m.Record.Category, m.Category, mark)

		row := fmt.Sprintf("%s  %s  %s %s  %s",
			m.Record.Date,
			pad(description, descWidth),
			themes.GetCategoryIcon(m.Record.Category),
			pad(category, 14),
			cli.FormatMoney(m.Record.Amount, l.settings.BaseCurrency),
		)
		if i == l.cursor {
			row = l.theme.Selected.Render("› " + row)
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// truncate shortens s to width runes unless that would cut a highlighted span.
func truncate(s string, width int, spans []search.Span) string {
	if lipgloss.Width(s) <= width || len(spans) > 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
