package tui

import (
	"time"

	"lined/internal/core"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// model is the Bubbletea model for the editor.
type model struct {
	session *core.Session
	keys    KeyMap
	help    help.Model

	statusTimeout time.Duration

	height int // Track terminal height for dynamic resizing
	width  int // Track terminal width for dynamic resizing

	// err is set when the session reports a broken invariant; the program
	// quits and Run returns it.
	err error
}

// initialModel creates the initial TUI model.
func initialModel(session *core.Session, keys KeyMap, statusTimeout time.Duration, width, height int) model {
	h := help.New()
	// Plain styles keep the status bar free of nested escape sequences.
	plain := lipgloss.NewStyle()
	h.Styles = help.Styles{
		Ellipsis:       plain,
		ShortKey:       plain,
		ShortDesc:      plain,
		ShortSeparator: plain,
		FullKey:        plain,
		FullDesc:       plain,
		FullSeparator:  plain,
	}

	m := model{
		session:       session,
		keys:          keys,
		help:          h,
		statusTimeout: statusTimeout,
	}
	m, _ = handleWindowResize(m, width, height)
	return m
}

// textHeight is the number of rows left for the document above the status bar.
func textHeight(height int) int {
	return max(height-1, 1)
}
