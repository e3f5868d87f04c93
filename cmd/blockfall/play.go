package main

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play in the terminal",
	Long: `Start playing the given variant (default: blockfall).

Controls:
  Left/Right, h/l  - Move
  Down, j          - Soft drop
  Up, x, Space     - Rotate
  P                - Pause
  Esc              - Leave (while paused)
  Ctrl+S           - Screenshot to ~/.blockfall/screenshots
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at 700ms per row
  normal - Start at 500ms per row
  hard   - Start at 300ms per row
  fixed  - Never speed up

Examples:
  blockfall play
  blockfall play blockfall_clockwise
  blockfall play --difficulty hard
  blockfall play --seed 42 --config ./my-rules.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID, err := variantArg(args)
	if err != nil {
		return err
	}

	a, err := newApp(io.Discard)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signalContext()
	defer stop()

	err = tui.Run(ctx, gameID, a.env, a.store, runtimeConfig())
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
