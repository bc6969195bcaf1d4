// harvest is Fruit Harvest, a fruit-catching arcade game for the terminal.
//
// Usage:
//
//	harvest play                 - Play a round in this terminal
//	harvest serve                - Start SSH server for remote play
//	harvest leaderboard          - Print the top players
//	harvest register <name>      - Register the local player
//	harvest stats                - Show ledger totals and recent games
//	harvest config               - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible spawns
//	--db <path>       - Set ledger database path (default: ~/.harvest/ledger.db)
//	--player <addr>   - Ledger address of the local player (default: local:$USER)
//	--config <path>   - Path to a custom harvest.yaml
package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruit-harvest/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagPlayer     string
	flagConfig     string
	flagDifficulty string
)

// logger reports CLI warnings on stderr.
var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "harvest"})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Fruit Harvest - catch falling fruit in your terminal",
	Long: `Fruit Harvest is a terminal arcade game: fruit falls from the top of the
screen and you click it before it drops out of sight. Bombs cost a life.
Scores go to a local ledger with a shared leaderboard.

Available commands:
  play         - Play a round in this terminal
  serve        - Start SSH server for remote play
  leaderboard  - Print the top players
  register     - Register the local player under a name
  stats        - Show ledger totals and your recent games
  config       - Print the effective configuration

Examples:
  harvest register "fruit fan"
  harvest play --difficulty hard
  harvest serve --ssh :2222
  harvest leaderboard -n 20`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.harvest/ledger.db", "Path to ledger database")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Ledger address of the local player (default local:$USER)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom harvest config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the game config and applies the difficulty preset.
func loadConfig() (*config.HarvestConfig, error) {
	cfg, err := config.LoadHarvest(flagConfig)
	if err != nil {
		return nil, err
	}

	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return nil, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	return &cfg, nil
}

// localPlayer returns the ledger address used for local play.
func localPlayer() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return "local:" + u.Username
	}
	return "local:player"
}
