package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lined/internal/clock"
	"lined/internal/config"
	"lined/internal/core"
	"lined/internal/tui"
)

var configPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lined [file]",
	Short: "A minimal screen-oriented editor for a single text file",
	Long: `lined opens one file in a full-screen editor. Arrow keys move the cursor,
printable keys type, Enter splits the line, Backspace and Delete join lines at
their edges. Ctrl+S (or Ctrl+W) saves and Esc quits.`,
	Args:          cobra.ExactArgs(1), // Expect exactly one argument: the file to edit
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// The document must load before any UI is set up.
		store := core.NewFileDocumentStore(args[0], cfg.InitialCapacity)
		session, err := core.Open(store, core.Options{
			Clock:         clock.RealClock{},
			StatusTimeout: cfg.StatusTimeout.Duration,
		})
		if err != nil {
			return fmt.Errorf("loading %s: %w", args[0], err)
		}

		if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("lined needs an interactive terminal; use `lined view` for scripted output")
		}

		logs, err := tui.SetupLogging()
		if err != nil {
			return err
		}
		defer logs.Close()

		return tui.Run(session, tui.NewKeyMap(cfg.Keys), cfg.StatusTimeout.Duration)
	},
}

func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Default(), nil
		}
		path = p
	}
	return config.Load(path)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file (default: user config dir/lined/config.toml)")
}
