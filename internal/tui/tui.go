package tui

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"lined/internal/core"

	tea "github.com/charmbracelet/bubbletea"
)

// DebugEnv names the environment variable holding a debug log path.
const DebugEnv = "LINED_DEBUG"

// Init initializes the TUI model and returns any initial commands to run.
func (m model) Init() tea.Cmd {
	return nil
}

// SetupLogging sends the standard logger to the file named by LINED_DEBUG, or
// discards it. The terminal belongs to the editor, so nothing is logged there.
func SetupLogging() (io.Closer, error) {
	path := os.Getenv(DebugEnv)
	if path == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	f, err := tea.LogToFile(path, "lined")
	if err != nil {
		return nil, fmt.Errorf("opening debug log %s: %w", path, err)
	}
	return f, nil
}

// Run launches the editor for an open session and blocks until the user quits.
func Run(session *core.Session, keys KeyMap, statusTimeout time.Duration) error {
	m := initialModel(session, keys, statusTimeout, 80, 24)
	p := tea.NewProgram(&teaModelAdapter{m}, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	if a, ok := final.(*teaModelAdapter); ok && a.m.err != nil {
		return a.m.err
	}
	return nil
}

// teaModelAdapter adapts our model to the tea.Model interface using Update and ModelView.
type teaModelAdapter struct {
	m model
}

func (a *teaModelAdapter) Init() tea.Cmd {
	return a.m.Init()
}

func (a *teaModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m2, cmd := Update(a.m, msg)
	a.m = m2
	return a, cmd
}

func (a *teaModelAdapter) View() string {
	return ModelView(a.m)
}
