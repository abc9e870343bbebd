// Package viewport keeps the cursor and scroll offsets consistent with the
// shape of a document and the size of the visible window.
package viewport

import (
	"errors"
	"fmt"
)

// ErrEmptyDocument is returned when clamping against a document with no lines.
var ErrEmptyDocument = errors.New("document has no lines")

// Document is the shape of a line-addressed document.
type Document interface {
	Len() int
	LineLen(i int) (int, error)
}

// Lines is a Document whose content can be read for rendering.
type Lines interface {
	Document
	Line(i int) ([]byte, error)
}

// Size is the visible text area in cells. Non-positive dimensions count as 1.
type Size struct {
	Width  int
	Height int
}

func (s Size) normalized() Size {
	if s.Width < 1 {
		s.Width = 1
	}
	if s.Height < 1 {
		s.Height = 1
	}
	return s
}

// Cursor is the edit position together with the first visible row and column.
type Cursor struct {
	Row    int // cy
	Col    int // cx, may equal the line length
	RowOff int
	ColOff int
}

func (c *Cursor) MoveUp()    { c.Row-- }
func (c *Cursor) MoveDown()  { c.Row++ }
func (c *Cursor) MoveLeft()  { c.Col-- }
func (c *Cursor) MoveRight() { c.Col++ }

// Clamp forces c back into the document and scrolls the offsets so that the
// cursor is visible.
//
// The row is clamped before the column because the column bound depends on the
// line the cursor ends up on. Offsets are adjusted only after both coordinates
// are valid.
func Clamp(c Cursor, doc Document, size Size) (Cursor, error) {
	n := doc.Len()
	if n == 0 {
		return c, ErrEmptyDocument
	}
	size = size.normalized()

	c.Row = clamp(c.Row, 0, n-1)
	lineLen, err := doc.LineLen(c.Row)
	if err != nil {
		return c, fmt.Errorf("clamp row %d: %w", c.Row, err)
	}
	c.Col = clamp(c.Col, 0, lineLen)

	c.RowOff = scroll(c.RowOff, c.Row, size.Height)
	c.ColOff = scroll(c.ColOff, c.Col, size.Width)
	return c, nil
}

// scroll returns the offset that keeps pos within [off, off+span).
func scroll(off, pos, span int) int {
	if off < 0 {
		off = 0
	}
	if pos < off {
		return pos
	}
	if pos >= off+span {
		return pos - span + 1
	}
	return off
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
