package tui

import (
	"log"
	"time"

	"lined/internal/core"
	"lined/internal/viewport"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// statusExpiredMsg asks for a redraw once a status message has timed out.
type statusExpiredMsg struct{}

// Update handles all Bubbletea update logic for the TUI model.
func Update(m model, msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsg(m, msg)
	case tea.WindowSizeMsg:
		return handleWindowResize(m, msg.Width, msg.Height)
	case statusExpiredMsg:
		return m, nil
	}
	return m, nil
}

// HandleKeyMsg maps one key to one editor command and applies it.
func HandleKeyMsg(m model, msg tea.KeyMsg) (model, tea.Cmd) {
	if m.err != nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return apply(m, core.Cmd(core.CmdQuit))
	case key.Matches(msg, m.keys.Save):
		return apply(m, core.Cmd(core.CmdSave))
	case key.Matches(msg, m.keys.Up):
		return apply(m, core.Cmd(core.CmdMoveUp))
	case key.Matches(msg, m.keys.Down):
		return apply(m, core.Cmd(core.CmdMoveDown))
	case key.Matches(msg, m.keys.Left):
		return apply(m, core.Cmd(core.CmdMoveLeft))
	case key.Matches(msg, m.keys.Right):
		return apply(m, core.Cmd(core.CmdMoveRight))
	case key.Matches(msg, m.keys.Backspace):
		return apply(m, core.Cmd(core.CmdBackspace))
	case key.Matches(msg, m.keys.Delete):
		return apply(m, core.Cmd(core.CmdForwardDelete))
	case key.Matches(msg, m.keys.Newline):
		return apply(m, core.Cmd(core.CmdInsertNewline))
	}

	switch msg.Type {
	case tea.KeySpace:
		return apply(m, core.InsertChar(' '))
	case tea.KeyRunes:
		if msg.Alt {
			return m, nil
		}
		return typeRunes(m, msg.Runes)
	}
	return m, nil
}

// typeRunes inserts typed or pasted text. Line breaks in a paste ("\n",
// "\r" or "\r\n") each become one new line; other runes outside ASCII are
// dropped and the session drops the remaining non-printable bytes.
func typeRunes(m model, runes []rune) (model, tea.Cmd) {
	var cmd tea.Cmd
	for i, r := range runes {
		var c core.Command
		switch {
		case r == '\n' && i > 0 && runes[i-1] == '\r':
			continue
		case r == '\n' || r == '\r':
			c = core.Cmd(core.CmdInsertNewline)
		case r > 0x7f:
			continue
		default:
			c = core.InsertChar(byte(r))
		}
		if m, cmd = apply(m, c); m.err != nil {
			return m, cmd
		}
	}
	return m, nil
}

func apply(m model, c core.Command) (model, tea.Cmd) {
	if err := m.session.Apply(c); err != nil {
		log.Printf("command %s failed: %v", c.Kind, err)
		m.err = err
		return m, tea.Quit
	}

	switch c.Kind {
	case core.CmdQuit:
		log.Printf("quit (dirty=%v)", m.session.Dirty())
		return m, tea.Quit
	case core.CmdSave:
		if st, ok := m.session.Status(); ok {
			log.Printf("save %s: %s", m.session.Name(), st.Text)
		}
		return m, tea.Tick(m.statusTimeout, func(time.Time) tea.Msg {
			return statusExpiredMsg{}
		})
	}
	return m, nil
}

func handleWindowResize(m model, width, height int) (model, tea.Cmd) {
	m.width = width
	m.height = height
	m.help.Width = width
	size := viewport.Size{Width: max(width, 1), Height: textHeight(height)}
	if err := m.session.Resize(size); err != nil {
		log.Printf("resize to %dx%d failed: %v", width, height, err)
		m.err = err
		return m, tea.Quit
	}
	return m, nil
}
