// blockfall is a falling-block puzzle game for the terminal, SSH and the desktop.
//
// Usage:
//
//	blockfall list              - List game variants
//	blockfall play [variant]    - Play in the terminal
//	blockfall menu              - Pick a variant interactively
//	blockfall serve             - Start SSH server for remote play
//	blockfall window [variant]  - Play in a desktop window
//	blockfall scores [variant]  - Show the best scores
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible piece sequences
//	--db <path>           - Set database path (default: ~/.blockfall/scores.db)
//	--config <path>       - Use a custom rules YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-file <path>     - Write logs to a file
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/blockfall/internal/games/blockfall"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - a falling-block puzzle game",
	Long: `Blockfall drops pieces into a 20x10 well. Complete rows to clear them;
the more rows a single piece clears, the more each row is worth. The game
speeds up as your score grows and restarts on its own when the stack
reaches the top.

Available commands:
  list     - Show the game variants
  play     - Play in this terminal
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  window   - Play in a desktop window
  scores   - View the best scores

Examples:
  blockfall play
  blockfall play blockfall_clockwise --difficulty hard
  blockfall menu
  blockfall serve --ssh :2222
  blockfall window
  blockfall scores`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.blockfall/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(scoresCmd)
}
