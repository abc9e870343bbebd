// Package edit implements the character and line level edit commands.
//
// Every function validates the cursor before touching the store, so a call
// either completes or leaves both the store and the cursor unchanged. The
// cursor must be clamped against the store before the call.
package edit

import (
	"fmt"

	"lined/internal/linestore"
	"lined/internal/viewport"
)

// InsertChar inserts ch before the cursor and advances the cursor.
func InsertChar(s *linestore.Store, c *viewport.Cursor, ch byte) error {
	if err := s.InsertByte(c.Row, c.Col, ch); err != nil {
		return fmt.Errorf("insert char: %w", err)
	}
	c.Col++
	return nil
}

// InsertNewline splits the current line at the cursor and moves the cursor
// to the start of the new line.
func InsertNewline(s *linestore.Store, c *viewport.Cursor) error {
	if err := s.Split(c.Row, c.Col); err != nil {
		return fmt.Errorf("insert newline: %w", err)
	}
	c.Row++
	c.Col = 0
	return nil
}

// Backspace deletes the byte before the cursor. At the start of a line it
// joins the line onto the previous one; at the start of the document it does
// nothing.
func Backspace(s *linestore.Store, c *viewport.Cursor) error {
	lineLen, err := s.LineLen(c.Row)
	if err != nil {
		return fmt.Errorf("backspace: %w", err)
	}
	if c.Col < 0 || c.Col > lineLen {
		return fmt.Errorf("backspace: column %d outside line of %d: %w", c.Col, lineLen, linestore.ErrOutOfRange)
	}

	if c.Col > 0 {
		if err := s.DeleteByte(c.Row, c.Col-1); err != nil {
			return fmt.Errorf("backspace: %w", err)
		}
		c.Col--
		return nil
	}
	if c.Row == 0 {
		return nil
	}

	prevLen, err := s.LineLen(c.Row - 1)
	if err != nil {
		return fmt.Errorf("backspace: %w", err)
	}
	if err := s.Join(c.Row - 1); err != nil {
		return fmt.Errorf("backspace: %w", err)
	}
	c.Row--
	c.Col = prevLen
	return nil
}

// DeleteAtCursor deletes the byte under the cursor. At the end of a line it
// pulls the next line up; at the end of the document it does nothing.
func DeleteAtCursor(s *linestore.Store, c *viewport.Cursor) error {
	lineLen, err := s.LineLen(c.Row)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	switch {
	case c.Col < 0 || c.Col > lineLen:
		return fmt.Errorf("delete: column %d outside line of %d: %w", c.Col, lineLen, linestore.ErrOutOfRange)
	case c.Col < lineLen:
		if err := s.DeleteByte(c.Row, c.Col); err != nil {
			return fmt.Errorf("delete: %w", err)
		}
	case c.Row+1 < s.Len():
		if err := s.Join(c.Row); err != nil {
			return fmt.Errorf("delete: %w", err)
		}
	}
	return nil
}
