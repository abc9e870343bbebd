package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	cursorStyle      = lipgloss.NewStyle().Reverse(true)
	statusStyle      = lipgloss.NewStyle().Reverse(true)
	statusErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#CC0000"))
	statusOKStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#00CC66"))
)

// ModelView renders the TUI model's view as a string.
func ModelView(m model) string {
	if m.session.Quitting() {
		return ""
	}
	if m.err != nil {
		return fmt.Sprintf("internal error: %v\n", m.err)
	}

	frame, err := m.session.Frame()
	if err != nil {
		return fmt.Sprintf("internal error: %v\n", err)
	}

	var b strings.Builder
	for y := 0; y < textHeight(m.height); y++ {
		var row string
		if y < len(frame.Lines) {
			row = displayBytes(frame.Lines[y])
		}
		if y == frame.CursorY {
			row = withCursor(row, frame.CursorX)
		}
		b.WriteString(row)
		b.WriteByte('\n')
	}
	b.WriteString(statusBar(m))
	return b.String()
}

// displayBytes maps each byte to exactly one cell so screen columns match
// document columns. Control and non-ASCII bytes show as '?'.
func displayBytes(line []byte) string {
	out := make([]byte, len(line))
	for i, c := range line {
		if c < 32 || c > 126 {
			c = '?'
		}
		out[i] = c
	}
	return string(out)
}

func withCursor(row string, x int) string {
	if x < 0 {
		return row
	}
	if x >= len(row) {
		return row + strings.Repeat(" ", x-len(row)) + cursorStyle.Render(" ")
	}
	return row[:x] + cursorStyle.Render(row[x:x+1]) + row[x+1:]
}

// statusBar renders the bottom line: file name, modified flag, the current
// message or key help, and the cursor position.
func statusBar(m model) string {
	width := max(m.width, 1)
	c := m.session.Cursor()
	doc := m.session.Document()

	name := m.session.Name()
	if m.session.Dirty() {
		name += " [+]"
	}
	left := " " + name + " "
	right := fmt.Sprintf(" %d:%d  %d lines ", c.Row+1, c.Col+1, doc.Len())

	style := statusStyle
	mid := ""
	if st, ok := m.session.Status(); ok {
		mid = st.Text
		if st.IsErr {
			style = statusErrorStyle
		} else {
			style = statusOKStyle
		}
	} else {
		h := m.help
		h.Width = max(width-runewidth.StringWidth(left)-runewidth.StringWidth(right), 0)
		mid = h.ShortHelpView(m.keys.ShortHelp())
	}

	room := width - runewidth.StringWidth(right)
	if room < 1 {
		return style.Render(runewidth.FillRight(runewidth.Truncate(right, width, ""), width))
	}
	text := runewidth.Truncate(left+mid, room, "…")
	text = runewidth.FillRight(text, room) + right
	return style.Render(text)
}
