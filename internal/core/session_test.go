package core

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lined/internal/clock"
	"lined/internal/persist"
	"lined/internal/viewport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T, content string, size viewport.Size) (*Session, *InMemoryDocumentStore, *clock.MockClock) {
	t.Helper()
	store := NewInMemoryDocumentStore(content)
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s, err := Open(store, Options{Clock: clk, StatusTimeout: time.Second, Size: size})
	require.NoError(t, err)
	return s, store, clk
}

func apply(t *testing.T, s *Session, cmds ...Command) {
	t.Helper()
	for _, c := range cmds {
		require.NoError(t, s.Apply(c))
	}
}

func typeText(text string) []Command {
	cmds := make([]Command, 0, len(text))
	for i := 0; i < len(text); i++ {
		cmds = append(cmds, InsertChar(text[i]))
	}
	return cmds
}

var big = viewport.Size{Width: 80, Height: 24}

func TestOpen_EmptyDocument(t *testing.T) {
	s, _, _ := openMemory(t, "", big)
	assert.Equal(t, []string{""}, s.Document().Strings())
	assert.Equal(t, viewport.Cursor{}, s.Cursor())
	assert.False(t, s.Dirty())
}

func TestOpen_SourceUnavailable(t *testing.T) {
	store := NewFileDocumentStore(filepath.Join(t.TempDir(), "missing.txt"), 16)
	_, err := Open(store, Options{})
	assert.ErrorIs(t, err, persist.ErrSourceUnavailable)
}

func TestApply_TypingAndNavigation(t *testing.T) {
	s, _, _ := openMemory(t, "", big)
	apply(t, s, typeText("hello")...)
	apply(t, s, Cmd(CmdInsertNewline))
	apply(t, s, typeText("world")...)
	apply(t, s, Cmd(CmdMoveUp))

	assert.Equal(t, []string{"hello", "world"}, s.Document().Strings())
	// Column 5 is still valid on "hello".
	assert.Equal(t, 0, s.Cursor().Row)
	assert.Equal(t, 5, s.Cursor().Col)
	assert.True(t, s.Dirty())
}

func TestApply_NonPrintableIgnored(t *testing.T) {
	s, _, _ := openMemory(t, "ab\n", big)
	apply(t, s, InsertChar(0), InsertChar(9), InsertChar(31), InsertChar(127), InsertChar(200))
	assert.Equal(t, []string{"ab"}, s.Document().Strings())
	assert.False(t, s.Dirty())

	apply(t, s, InsertChar(' '), InsertChar('~'))
	assert.Equal(t, []string{" ~ab"}, s.Document().Strings())
}

func TestApply_NoopsKeepDocumentClean(t *testing.T) {
	s, _, _ := openMemory(t, "ab\ncd\n", big)
	apply(t, s, Cmd(CmdBackspace), Cmd(CmdMoveLeft), Cmd(CmdMoveUp))
	apply(t, s, Cmd(CmdMoveDown), Cmd(CmdMoveRight), Cmd(CmdMoveRight), Cmd(CmdMoveRight), Cmd(CmdForwardDelete))
	assert.False(t, s.Dirty())
	assert.Equal(t, viewport.Cursor{Row: 1, Col: 2}, s.Cursor())
}

func TestApply_ForwardDeleteMarksDirty(t *testing.T) {
	s, _, _ := openMemory(t, "abc\n", big)
	apply(t, s, Cmd(CmdForwardDelete))
	assert.Equal(t, []string{"bc"}, s.Document().Strings())
	assert.True(t, s.Dirty())
}

func TestApply_ScrollFollowsCursor(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 10; i++ {
		sb.WriteString("line\n")
	}
	s, _, _ := openMemory(t, sb.String(), viewport.Size{Width: 80, Height: 3})
	for i := 0; i < 9; i++ {
		apply(t, s, Cmd(CmdMoveDown))
	}
	assert.Equal(t, 9, s.Cursor().Row)
	assert.Equal(t, 7, s.Cursor().RowOff)

	f, err := s.Frame()
	require.NoError(t, err)
	assert.Len(t, f.Lines, 3)
	assert.Equal(t, 2, f.CursorY)
}

func TestResize_Reclamps(t *testing.T) {
	s, _, _ := openMemory(t, "0123456789\n", big)
	for i := 0; i < 10; i++ {
		apply(t, s, Cmd(CmdMoveRight))
	}
	require.NoError(t, s.Resize(viewport.Size{Width: 4, Height: 1}))
	assert.Equal(t, 7, s.Cursor().ColOff)
	assert.Equal(t, viewport.Size{Width: 4, Height: 1}, s.Size())
}

func TestSave_Success(t *testing.T) {
	s, store, clk := openMemory(t, "ab\n", big)
	apply(t, s, Cmd(CmdMoveDown), Cmd(CmdMoveRight), Cmd(CmdMoveRight), Cmd(CmdInsertNewline))
	apply(t, s, typeText("cd")...)
	require.True(t, s.Dirty())

	apply(t, s, Cmd(CmdSave))
	assert.False(t, s.Dirty())
	assert.Equal(t, "ab\ncd\n", store.Content())
	assert.Equal(t, 1, store.Saves())

	st, ok := s.Status()
	require.True(t, ok)
	assert.Equal(t, "File saved successfully", st.Text)
	assert.False(t, st.IsErr)

	clk.Advance(999 * time.Millisecond)
	_, ok = s.Status()
	assert.True(t, ok)
	clk.Advance(time.Millisecond)
	_, ok = s.Status()
	assert.False(t, ok)
}

func TestSave_FailureKeepsDocument(t *testing.T) {
	s, store, _ := openMemory(t, "keep\n", big)
	store.SaveErr = errors.New("read-only filesystem")
	apply(t, s, InsertChar('!'))

	apply(t, s, Cmd(CmdSave))
	assert.True(t, s.Dirty())
	assert.Equal(t, []string{"!keep"}, s.Document().Strings())
	assert.Equal(t, "keep\n", store.Content())

	st, ok := s.Status()
	require.True(t, ok)
	assert.True(t, st.IsErr)
	assert.Contains(t, st.Text, "ERROR: Failed to save file")

	err := s.Save()
	assert.ErrorIs(t, err, persist.ErrSinkUnavailable)
}

func TestSave_ZeroTimeoutStillReportsStatus(t *testing.T) {
	store := NewInMemoryDocumentStore("text\n")
	store.SaveErr = errors.New("read-only")
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s, err := Open(store, Options{Clock: clk, Size: big})
	require.NoError(t, err)

	apply(t, s, Cmd(CmdSave))
	st, ok := s.Status()
	require.True(t, ok, "failed save must be visible")
	assert.True(t, st.IsErr)

	clk.Advance(DefaultStatusTimeout)
	_, ok = s.Status()
	assert.False(t, ok)
}

func TestSave_FileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo"), 0644))

	s, err := Open(NewFileDocumentStore(path, 4), Options{StatusTimeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", s.Name())

	apply(t, s, Cmd(CmdMoveDown), Cmd(CmdBackspace), Cmd(CmdSave))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "onetwo\n", string(data))
}

func TestApply_Quit(t *testing.T) {
	s, _, _ := openMemory(t, "", big)
	assert.False(t, s.Quitting())
	apply(t, s, Cmd(CmdQuit))
	assert.True(t, s.Quitting())
}

func TestApply_UnknownCommand(t *testing.T) {
	s, _, _ := openMemory(t, "", big)
	err := s.Apply(Command{Kind: CommandKind(99)})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CommandKind(99)")
}

func TestCommandKind_String(t *testing.T) {
	assert.Equal(t, "InsertNewline", CmdInsertNewline.String())
	assert.Equal(t, "Quit", CmdQuit.String())
}

// Random command sequences must never leave the cursor outside the document
// or the window.
func TestApply_InvariantsHoldForRandomCommands(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	kinds := []CommandKind{
		CmdMoveUp, CmdMoveDown, CmdMoveLeft, CmdMoveRight,
		CmdInsertChar, CmdBackspace, CmdForwardDelete, CmdInsertNewline,
	}
	size := viewport.Size{Width: 7, Height: 4}
	s, _, _ := openMemory(t, "alpha\nbe\n\ngamma delta\n", size)

	for i := 0; i < 5000; i++ {
		cmd := Cmd(kinds[rng.Intn(len(kinds))])
		if cmd.Kind == CmdInsertChar {
			cmd.Char = byte(32 + rng.Intn(95))
		}
		require.NoError(t, s.Apply(cmd), "step %d", i)

		c := s.Cursor()
		doc := s.Document()
		require.GreaterOrEqual(t, doc.Len(), 1)
		require.True(t, c.Row >= 0 && c.Row < doc.Len(), "step %d row %d", i, c.Row)
		n, err := doc.LineLen(c.Row)
		require.NoError(t, err)
		require.True(t, c.Col >= 0 && c.Col <= n, "step %d col %d len %d", i, c.Col, n)
		require.True(t, c.Row >= c.RowOff && c.Row < c.RowOff+size.Height, "step %d rowoff", i)
		require.True(t, c.Col >= c.ColOff && c.Col < c.ColOff+size.Width, "step %d coloff", i)
	}
}
