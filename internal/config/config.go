// Package config loads editor settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds user-tunable settings. Zero-valued fields in the file keep
// their defaults.
type Config struct {
	// StatusTimeout is how long a save message stays on the status bar.
	StatusTimeout Duration `toml:"status_timeout"`
	// InitialCapacity is the number of lines reserved when loading a file.
	InitialCapacity int         `toml:"initial_capacity"`
	Keys            KeyBindings `toml:"keys"`
}

// KeyBindings lists the key names (as reported by bubbletea) for each command.
type KeyBindings struct {
	Up        []string `toml:"up"`
	Down      []string `toml:"down"`
	Left      []string `toml:"left"`
	Right     []string `toml:"right"`
	Backspace []string `toml:"backspace"`
	Delete    []string `toml:"delete"`
	Newline   []string `toml:"newline"`
	Save      []string `toml:"save"`
	Quit      []string `toml:"quit"`
}

// Duration is a time.Duration written as a string such as "1s" or "750ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		StatusTimeout:   Duration{time.Second},
		InitialCapacity: 256,
		Keys: KeyBindings{
			Up:        []string{"up"},
			Down:      []string{"down"},
			Left:      []string{"left"},
			Right:     []string{"right"},
			Backspace: []string{"backspace", "ctrl+h"},
			Delete:    []string{"delete"},
			Newline:   []string{"enter"},
			Save:      []string{"ctrl+s", "ctrl+w"},
			Quit:      []string{"esc"},
		},
	}
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "lined", "config.toml"), nil
}

// Load reads the TOML file at path over the defaults. A missing file is not
// an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("reading config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.StatusTimeout.Duration <= 0 {
		return fmt.Errorf("status_timeout must be positive")
	}
	if c.InitialCapacity < 0 {
		return fmt.Errorf("initial_capacity must not be negative")
	}
	if len(c.Keys.Quit) == 0 {
		return fmt.Errorf("keys.quit must name at least one key")
	}
	return nil
}
