package linestore

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfRange is returned when a line index or column lies outside the store.
var ErrOutOfRange = errors.New("index out of range")

// Store is an ordered, growable sequence of text lines.
//
// Each line is an owned byte slice without a trailing newline. The store never
// hands out a slice it keeps writing to: content passed in is copied, and the
// right half of a split is moved into a fresh slice.
type Store struct {
	lines [][]byte
	n     int
}

// New returns an empty store with room for capacityHint lines.
// The caller must seed at least one line before editing.
func New(capacityHint int) *Store {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &Store{lines: make([][]byte, capacityHint)}
}

// NewFromLines builds a store holding a copy of lines. With no lines the
// store holds a single empty line.
func NewFromLines(lines ...string) *Store {
	s := New(len(lines))
	for _, l := range lines {
		s.Append([]byte(l))
	}
	if s.n == 0 {
		s.Append(nil)
	}
	return s
}

// Len returns the number of lines.
func (s *Store) Len() int { return s.n }

// Cap returns how many lines fit before the next reallocation.
func (s *Store) Cap() int { return len(s.lines) }

// EnsureCapacity grows the store so that it can hold at least n lines.
// Capacity doubles from its current value (or from 1) until it reaches n.
func (s *Store) EnsureCapacity(n int) {
	if n <= len(s.lines) {
		return
	}
	newCap := len(s.lines) * 2
	if newCap == 0 {
		newCap = 1
	}
	for newCap < n {
		newCap *= 2
	}
	grown := make([][]byte, newCap)
	copy(grown, s.lines[:s.n])
	s.lines = grown
}

// Insert places a copy of content at index at, shifting later lines down.
func (s *Store) Insert(at int, content []byte) error {
	if at < 0 || at > s.n {
		return fmt.Errorf("insert line %d of %d: %w", at, s.n, ErrOutOfRange)
	}
	s.insertOwned(at, clone(content))
	return nil
}

// Append adds a copy of content after the last line.
func (s *Store) Append(content []byte) {
	s.insertOwned(s.n, clone(content))
}

func (s *Store) insertOwned(at int, line []byte) {
	s.EnsureCapacity(s.n + 1)
	copy(s.lines[at+1:s.n+1], s.lines[at:s.n])
	s.lines[at] = line
	s.n++
}

// Remove deletes the line at index at, shifting later lines up.
//
// Callers keep the store non-empty; removing the last line is allowed only
// when a line is inserted right after.
func (s *Store) Remove(at int) error {
	if err := s.check(at); err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	copy(s.lines[at:s.n-1], s.lines[at+1:s.n])
	s.n--
	s.lines[s.n] = nil
	return nil
}

// Line returns the content of line i. The slice is owned by the store and
// must not be modified.
func (s *Store) Line(i int) ([]byte, error) {
	if err := s.check(i); err != nil {
		return nil, err
	}
	return s.lines[i], nil
}

// LineLen returns the length in bytes of line i.
func (s *Store) LineLen(i int) (int, error) {
	if err := s.check(i); err != nil {
		return 0, err
	}
	return len(s.lines[i]), nil
}

// Replace overwrites line i with a copy of content.
func (s *Store) Replace(i int, content []byte) error {
	if err := s.check(i); err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	s.lines[i] = clone(content)
	return nil
}

// InsertByte inserts b into line i before column col.
func (s *Store) InsertByte(i, col int, b byte) error {
	if err := s.checkCol(i, col, true); err != nil {
		return fmt.Errorf("insert byte: %w", err)
	}
	line := append(s.lines[i], 0)
	copy(line[col+1:], line[col:])
	line[col] = b
	s.lines[i] = line
	return nil
}

// DeleteByte removes the byte at column col of line i.
func (s *Store) DeleteByte(i, col int) error {
	if err := s.checkCol(i, col, false); err != nil {
		return fmt.Errorf("delete byte: %w", err)
	}
	line := s.lines[i]
	s.lines[i] = append(line[:col], line[col+1:]...)
	return nil
}

// Split breaks line i at column col. Bytes [0,col) stay on line i and bytes
// [col,len) move to a new line at i+1.
func (s *Store) Split(i, col int) error {
	if err := s.checkCol(i, col, true); err != nil {
		return fmt.Errorf("split: %w", err)
	}
	line := s.lines[i]
	right := clone(line[col:])
	s.lines[i] = line[:col:col]
	s.insertOwned(i+1, right)
	return nil
}

// Join appends line i+1 to line i and removes line i+1.
func (s *Store) Join(i int) error {
	if err := s.check(i); err != nil {
		return fmt.Errorf("join: %w", err)
	}
	if err := s.check(i + 1); err != nil {
		return fmt.Errorf("join: no line after %d: %w", i, err)
	}
	s.lines[i] = append(s.lines[i], s.lines[i+1]...)
	return s.Remove(i + 1)
}

// Lines returns a copy of every line in document order.
func (s *Store) Lines() [][]byte {
	out := make([][]byte, s.n)
	for i := 0; i < s.n; i++ {
		out[i] = clone(s.lines[i])
	}
	return out
}

// Strings returns the lines as strings, mostly for tests and debugging.
func (s *Store) Strings() []string {
	out := make([]string, s.n)
	for i := 0; i < s.n; i++ {
		out[i] = string(s.lines[i])
	}
	return out
}

// String joins all lines with '\n'.
func (s *Store) String() string {
	return strings.Join(s.Strings(), "\n")
}

func (s *Store) check(i int) error {
	if i < 0 || i >= s.n {
		return fmt.Errorf("line %d of %d: %w", i, s.n, ErrOutOfRange)
	}
	return nil
}

// checkCol validates a column on line i. With atEnd the column may equal the
// line length.
func (s *Store) checkCol(i, col int, atEnd bool) error {
	if err := s.check(i); err != nil {
		return err
	}
	limit := len(s.lines[i])
	if !atEnd {
		limit--
	}
	if col < 0 || col > limit {
		return fmt.Errorf("column %d on line %d (len %d): %w", col, i, len(s.lines[i]), ErrOutOfRange)
	}
	return nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
