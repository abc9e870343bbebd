package cmd

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lined/internal/core"
	"lined/internal/viewport"
)

type viewOptions struct {
	row, col      int
	width, height int
	showCursor    bool
}

var viewOpts viewOptions

// viewCmd prints the visible window for a cursor position without a terminal UI.
var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Print the window the editor would show for a cursor position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		session, err := core.Open(core.NewFileDocumentStore(args[0], cfg.InitialCapacity), core.Options{
			Size: viewport.Size{Width: viewOpts.width, Height: viewOpts.height},
		})
		if err != nil {
			return fmt.Errorf("loading %s: %w", args[0], err)
		}
		return renderView(cmd.OutOrStdout(), session, viewOpts)
	},
}

// renderView walks the cursor to the requested position with ordinary move
// commands, so the window scrolls exactly as it would while editing.
func renderView(w io.Writer, session *core.Session, opts viewOptions) error {
	for i := 0; i < opts.row; i++ {
		if err := session.Apply(core.Cmd(core.CmdMoveDown)); err != nil {
			return err
		}
	}
	for i := 0; i < opts.col; i++ {
		if err := session.Apply(core.Cmd(core.CmdMoveRight)); err != nil {
			return err
		}
	}

	frame, err := session.Frame()
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for _, line := range frame.Lines {
		bw.Write(line)
		bw.WriteByte('\n')
	}
	if opts.showCursor {
		c := session.Cursor()
		fmt.Fprintf(bw, "-- cursor %d:%d screen %d,%d offset %d,%d\n",
			c.Row, c.Col, frame.CursorX, frame.CursorY, c.RowOff, c.ColOff)
	}
	return bw.Flush()
}

func init() {
	viewCmd.Flags().IntVar(&viewOpts.row, "row", 0, "cursor row (0-based)")
	viewCmd.Flags().IntVar(&viewOpts.col, "col", 0, "cursor column (0-based)")
	viewCmd.Flags().IntVar(&viewOpts.width, "width", 80, "window width in columns")
	viewCmd.Flags().IntVar(&viewOpts.height, "height", 24, "window height in rows")
	viewCmd.Flags().BoolVar(&viewOpts.showCursor, "cursor", false, "print the cursor and scroll offsets after the window")
	rootCmd.AddCommand(viewCmd)
}
