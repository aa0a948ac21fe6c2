package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/autotheft/internal/games/autotheft"
	"github.com/vovakirdan/autotheft/internal/registry"
	"github.com/vovakirdan/autotheft/internal/storage"
)

var flagRecent bool

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show best runs for a mode",
	Long: `Display the top 10 runs for the specified mode, or the timed round
when no mode is given.

Examples:
  autotheft scores
  autotheft scores --recent
  autotheft scores autotheft_free`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest runs instead of the best")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := autotheft.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if mode exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'autotheft list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var runs []storage.RunRecord
	if flagRecent {
		runs, err = store.RecentRuns(gameID, 10)
	} else {
		runs, err = store.TopRuns(gameID, 10)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	heading := "Best Runs"
	if flagRecent {
		heading = "Recent Runs"
	}
	fmt.Printf("%s - %s\n", heading, title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'autotheft play %s' to set the first score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-6s  %-7s  %s\n", "Rank", "Score", "Acc", "Kills", "km/h", "Level", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-6s  %-7s  %s\n", "----", "-----", "---", "-----", "----", "-----", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-5s  %-5d  %-6.0f  %-7s  %s\n",
			i+1,
			r.Score,
			fmt.Sprintf("%.0f%%", r.Accuracy()*100),
			r.Destroyed,
			r.TopSpeedKmh,
			r.Difficulty,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Rounds: %d  Accuracy: %.0f%%  Top speed: %.0f km/h\n",
			stats.HighScore, stats.GamesCount, stats.Accuracy()*100, stats.TopSpeedKmh)
	}
}
