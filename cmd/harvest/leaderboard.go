package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruit-harvest/internal/core"
	"github.com/vovakirdan/fruit-harvest/internal/storage"
)

var flagTop int

var leaderboardCmd = &cobra.Command{
	Use:     "leaderboard",
	Aliases: []string{"scores"},
	Short:   "Show the top players",
	Long: `Display the best players from the ledger, ranked by best score.
Players who reached the same score earlier rank higher.

Examples:
  harvest leaderboard
  harvest leaderboard -n 25`,
	Args: cobra.NoArgs,
	RunE: runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().IntVarP(&flagTop, "top", "n", 10, "Number of ranks to show")
}

func runLeaderboard(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening ledger: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()

	entries, err := storage.Leaderboard(ctx, store, flagTop)
	if err != nil {
		return fmt.Errorf("error retrieving leaderboard: %w", err)
	}

	fmt.Println("Fruit Harvest - Leaderboard")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'harvest play' to set the first high score!")
		return nil
	}

	me := localPlayer()
	fmt.Printf("  %-5s  %-24s  %10s  %6s  %s\n", "Rank", "Player", "Best", "Games", "Last played")
	fmt.Printf("  %-5s  %-24s  %10s  %6s  %s\n", "----", "------", "----", "-----", "-----------")
	for _, e := range entries {
		marker := " "
		if e.Address == me {
			marker = ">"
		}
		name := e.Name
		if name == "" {
			name = core.TruncateAddress(e.Address, 8, 4)
		}
		fmt.Printf("%s %-5s  %-24s  %10s  %6d  %s\n",
			marker,
			fmt.Sprintf("#%d", e.Rank),
			name,
			core.FormatScore(int64(e.BestScore)),
			e.TotalGames,
			e.LastPlayed.Format("2006-01-02 15:04"),
		)
	}

	total, err := store.TotalGames(ctx)
	if err == nil {
		fmt.Println()
		fmt.Printf("%d games played\n", total)
	}
	return nil
}
