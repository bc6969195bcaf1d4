package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruit-harvest/internal/core"
	"github.com/vovakirdan/fruit-harvest/internal/storage"
)

var flagRecent int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show ledger totals and your recent games",
	Long: `Display aggregate ledger statistics, the local player's record and
their most recent games.

Examples:
  harvest stats
  harvest stats --player alice@laptop --recent 20`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent games to list")
}

func runStats(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening ledger: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()

	sum, err := store.Summary(ctx)
	if err != nil {
		return fmt.Errorf("error reading ledger: %w", err)
	}

	fmt.Println("Fruit Harvest - Stats")
	fmt.Println()
	fmt.Printf("  Players:     %d\n", sum.Players)
	fmt.Printf("  Games:       %d\n", sum.Games)
	if sum.Games > 0 {
		fmt.Printf("  High score:  %s\n", core.FormatScore(int64(sum.HighScore)))
		fmt.Printf("  Average:     %.1f\n", sum.AvgScore)
		fmt.Printf("  Last played: %s\n", sum.LastPlayed.Format("2006-01-02 15:04"))
	}

	addr := localPlayer()
	info, err := store.PlayerInfo(ctx, addr)
	if err != nil {
		return fmt.Errorf("error reading player: %w", err)
	}
	fmt.Println()
	if info == nil {
		fmt.Printf("%s is not registered. Run 'harvest register <name>' to join the leaderboard.\n", addr)
		return nil
	}

	fmt.Printf("%s (%s)\n", info.Name, addr)
	fmt.Printf("  Best:        %s\n", core.FormatScore(int64(info.BestScore)))
	fmt.Printf("  Games:       %d\n", info.TotalGames)
	fmt.Printf("  Registered:  %s\n", info.RegisteredAt.Format("2006-01-02"))

	games, err := store.PlayerGames(ctx, addr, flagRecent)
	if err != nil {
		return fmt.Errorf("error reading games: %w", err)
	}
	if len(games) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Printf("  %-8s  %10s  %s\n", "Game", "Score", "Date")
	for _, g := range games {
		fmt.Printf("  %-8s  %10s  %s\n",
			fmt.Sprintf("#%d", g.GameID),
			core.FormatScore(int64(g.Score)),
			g.Timestamp.Format("2006-01-02 15:04"),
		)
	}
	return nil
}
