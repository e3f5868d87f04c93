package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show the best scores",
	Long: `Display the top 10 finished games and the high score of a variant.

Examples:
  blockfall scores
  blockfall scores blockfall_clockwise
  blockfall scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the score history of the variant")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID, err := variantArg(args)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID, registry.DefaultEnv())
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared score history of %s.\n", game.Title())
		return nil
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", game.Title())

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'blockfall play %s' to set the first one!\n", gameID)
		if len(args) == 0 {
			return printAllVariants(out, store)
		}
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Games: %d  Average: %.0f\n", stats.GamesCount, stats.AvgScore)

	if high, err := store.LoadHighScore(blockfall.HighScoreKey(gameID)); err == nil {
		fmt.Fprintf(out, "High score: %d\n", high)
	}

	if len(args) == 0 {
		return printAllVariants(out, store)
	}
	return nil
}

// printAllVariants summarizes every variant that has finished games.
func printAllVariants(out io.Writer, store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "All variants:")
	for _, g := range registry.List() {
		stats, ok := all[g.ID]
		if !ok {
			fmt.Fprintf(out, "  %-20s  not played\n", g.ID)
			continue
		}
		fmt.Fprintf(out, "  %-20s  games %-4d  best %-8d  last %s\n",
			g.ID, stats.GamesCount, stats.HighScore, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
