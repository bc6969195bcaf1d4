package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/fruit-harvest/internal/core"
	"github.com/vovakirdan/fruit-harvest/internal/platform/tui"
	"github.com/vovakirdan/fruit-harvest/internal/storage"
)

var flagLogPath string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start Fruit Harvest in this terminal.

Controls:
  Mouse click  - Catch the fruit under the pointer
  Space/Enter  - Start
  P/Esc        - Pause / resume
  R            - Restart (after game over)
  L            - Leaderboard
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Five lives, slower spawns
  normal - Default settings, speed ramps up over the first minute
  hard   - Three lives, faster spawns and falls
  fixed  - No speed ramp

Examples:
  harvest play
  harvest play --difficulty easy
  harvest play --config ./my-harvest.yaml --seed 42
  harvest play --log /tmp/harvest.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogPath, "log", "", "Write a debug log to this file")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// The game owns the terminal, so the session logs to a file or nowhere.
	var sessionLog *log.Logger
	if flagLogPath != "" {
		f, openErr := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			return fmt.Errorf("cannot open log file: %w", openErr)
		}
		defer f.Close()
		sessionLog = log.NewWithOptions(f, log.Options{ReportTimestamp: true, Level: log.DebugLevel})
	}

	opts := tui.Options{
		Harvest: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Player: localPlayer(),
		Logger: sessionLog,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open ledger, playing unranked", "error", err)
	} else {
		defer store.Close()
		opts.Ledger = store
	}

	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
