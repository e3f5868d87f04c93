package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/platform/gui"
)

var windowCmd = &cobra.Command{
	Use:   "window [variant]",
	Short: "Play in a desktop window",
	Long: `Open a desktop window and play the given variant (default: blockfall).

Controls:
  Arrows, A/D      - Move
  Down, S          - Soft drop
  Up, X, W, Space  - Rotate
  P                - Pause
  Q/Esc            - Quit

Examples:
  blockfall window
  blockfall window blockfall_clockwise --difficulty easy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWindow,
}

func runWindow(_ *cobra.Command, args []string) error {
	gameID, err := variantArg(args)
	if err != nil {
		return err
	}

	a, err := newApp(os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signalContext()
	defer stop()

	return gui.Run(ctx, gameID, a.env, a.store, core.RuntimeConfig{Seed: flagSeed})
}
