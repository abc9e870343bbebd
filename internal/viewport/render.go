package viewport

import "fmt"

// Frame is what a display needs to draw one screen: the visible slice of each
// line and the cursor in screen coordinates.
type Frame struct {
	Lines   [][]byte
	CursorX int
	CursorY int
}

// Render cuts the visible window out of doc. The cursor is expected to have
// been clamped against doc and size already.
//
// Lines starting at RowOff are included until the window is full or the
// document ends. Each line is cut to [ColOff, ColOff+Width); a line shorter
// than ColOff renders empty.
func Render(doc Lines, c Cursor, size Size) (Frame, error) {
	size = size.normalized()
	f := Frame{
		CursorX: c.Col - c.ColOff,
		CursorY: c.Row - c.RowOff,
	}
	for i := 0; i < size.Height && c.RowOff+i < doc.Len(); i++ {
		line, err := doc.Line(c.RowOff + i)
		if err != nil {
			return Frame{}, fmt.Errorf("render row %d: %w", c.RowOff+i, err)
		}
		f.Lines = append(f.Lines, cut(line, c.ColOff, size.Width))
	}
	return f, nil
}

func cut(line []byte, off, width int) []byte {
	if off >= len(line) {
		return []byte{}
	}
	end := off + width
	if end > len(line) {
		end = len(line)
	}
	out := make([]byte, end-off)
	copy(out, line[off:end])
	return out
}
