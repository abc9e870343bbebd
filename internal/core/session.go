package core

import (
	"fmt"
	"time"

	"lined/internal/clock"
	"lined/internal/edit"
	"lined/internal/linestore"
	"lined/internal/viewport"
)

// CommandKind identifies one editor command.
type CommandKind int

const (
	CmdMoveUp CommandKind = iota
	CmdMoveDown
	CmdMoveLeft
	CmdMoveRight
	CmdInsertChar
	CmdBackspace
	CmdForwardDelete
	CmdInsertNewline
	CmdSave
	CmdQuit
)

var commandNames = map[CommandKind]string{
	CmdMoveUp:        "MoveUp",
	CmdMoveDown:      "MoveDown",
	CmdMoveLeft:      "MoveLeft",
	CmdMoveRight:     "MoveRight",
	CmdInsertChar:    "InsertChar",
	CmdBackspace:     "Backspace",
	CmdForwardDelete: "ForwardDelete",
	CmdInsertNewline: "InsertNewline",
	CmdSave:          "Save",
	CmdQuit:          "Quit",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return fmt.Sprintf("CommandKind(%d)", int(k))
}

// Command is a single discrete request from the input layer.
type Command struct {
	Kind CommandKind
	Char byte // only for CmdInsertChar
}

// Cmd returns a command without a payload.
func Cmd(kind CommandKind) Command { return Command{Kind: kind} }

// InsertChar returns the command that types ch.
func InsertChar(ch byte) Command { return Command{Kind: CmdInsertChar, Char: ch} }

// Printable reports whether ch is accepted by InsertChar: ASCII space
// through tilde.
func Printable(ch byte) bool { return ch >= 32 && ch <= 126 }

// Status is a transient message for the user, such as the result of a save.
type Status struct {
	Text  string
	IsErr bool
	At    time.Time
}

// DefaultStatusTimeout is used when Options.StatusTimeout is not positive.
const DefaultStatusTimeout = time.Second

// Options configures a Session.
type Options struct {
	Clock         clock.Clock
	StatusTimeout time.Duration
	Size          viewport.Size
}

// Session is one editing session over a single document. It owns the line
// store and the cursor; nothing else mutates them.
type Session struct {
	store  DocumentStore
	doc    *linestore.Store
	cursor viewport.Cursor
	size   viewport.Size

	clock         clock.Clock
	statusTimeout time.Duration
	status        Status

	dirty    bool
	quitting bool
}

// Open loads the document from store and starts a session at (0,0).
// Load failures are returned unchanged so callers can match
// persist.ErrSourceUnavailable.
func Open(store DocumentStore, opt Options) (*Session, error) {
	doc, err := store.Load()
	if err != nil {
		return nil, err
	}
	return NewSession(store, doc, opt)
}

// NewSession starts a session over an already loaded document.
func NewSession(store DocumentStore, doc *linestore.Store, opt Options) (*Session, error) {
	if doc.Len() == 0 {
		doc.Append(nil)
	}
	if opt.Clock == nil {
		opt.Clock = clock.RealClock{}
	}
	if opt.StatusTimeout <= 0 {
		opt.StatusTimeout = DefaultStatusTimeout
	}
	s := &Session{
		store:         store,
		doc:           doc,
		size:          opt.Size,
		clock:         opt.Clock,
		statusTimeout: opt.StatusTimeout,
	}
	if err := s.clamp(); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply runs cmd and re-clamps the cursor against the document and the
// current window size. Boundary conditions are no-ops; a failed save is
// reported through Status. A returned error means the session's own
// invariants were broken.
func (s *Session) Apply(cmd Command) error {
	if err := s.run(cmd); err != nil {
		return fmt.Errorf("%s: %w", cmd.Kind, err)
	}
	return s.clamp()
}

func (s *Session) run(cmd Command) error {
	switch cmd.Kind {
	case CmdMoveUp:
		s.cursor.MoveUp()
	case CmdMoveDown:
		s.cursor.MoveDown()
	case CmdMoveLeft:
		s.cursor.MoveLeft()
	case CmdMoveRight:
		s.cursor.MoveRight()
	case CmdInsertChar:
		if !Printable(cmd.Char) {
			return nil
		}
		return s.mutate(func() error { return edit.InsertChar(s.doc, &s.cursor, cmd.Char) })
	case CmdBackspace:
		return s.mutate(func() error { return edit.Backspace(s.doc, &s.cursor) })
	case CmdForwardDelete:
		return s.mutate(func() error { return edit.DeleteAtCursor(s.doc, &s.cursor) })
	case CmdInsertNewline:
		return s.mutate(func() error { return edit.InsertNewline(s.doc, &s.cursor) })
	case CmdSave:
		_ = s.Save()
	case CmdQuit:
		s.quitting = true
	default:
		return fmt.Errorf("unknown command %d", int(cmd.Kind))
	}
	return nil
}

// mutate runs an edit and marks the document dirty unless it was a no-op.
func (s *Session) mutate(op func() error) error {
	before := s.version()
	if err := op(); err != nil {
		return err
	}
	if s.version() != before {
		s.dirty = true
	}
	return nil
}

// version is a cheap change detector. Every edit that changes the text moves
// the cursor, changes the line count or changes the current line's length.
func (s *Session) version() [4]int {
	n, _ := s.doc.LineLen(s.cursor.Row)
	return [4]int{s.doc.Len(), s.cursor.Row, s.cursor.Col, n}
}

// Save writes the document through the store. On failure the document stays
// dirty and in memory; the error is also returned for logging.
func (s *Session) Save() error {
	if err := s.store.Save(s.doc); err != nil {
		s.setStatus("ERROR: Failed to save file: "+err.Error(), true)
		return err
	}
	s.dirty = false
	s.setStatus("File saved successfully", false)
	return nil
}

// Resize sets the window size and re-clamps.
func (s *Session) Resize(size viewport.Size) error {
	s.size = size
	return s.clamp()
}

func (s *Session) clamp() error {
	c, err := viewport.Clamp(s.cursor, s.doc, s.size)
	if err != nil {
		return fmt.Errorf("clamp: %w", err)
	}
	s.cursor = c
	return nil
}

// Frame renders the visible window for the current cursor and size.
func (s *Session) Frame() (viewport.Frame, error) {
	return viewport.Render(s.doc, s.cursor, s.size)
}

func (s *Session) setStatus(text string, isErr bool) {
	s.status = Status{Text: text, IsErr: isErr, At: s.clock.Now()}
}

// Status returns the current status message if it has not expired.
func (s *Session) Status() (Status, bool) {
	if s.status.Text == "" {
		return Status{}, false
	}
	if s.clock.Since(s.status.At) >= s.statusTimeout {
		return Status{}, false
	}
	return s.status, true
}

func (s *Session) Cursor() viewport.Cursor    { return s.cursor }
func (s *Session) Size() viewport.Size        { return s.size }
func (s *Session) Document() *linestore.Store { return s.doc }
func (s *Session) Dirty() bool                { return s.dirty }
func (s *Session) Quitting() bool             { return s.quitting }
func (s *Session) Name() string               { return s.store.Name() }
