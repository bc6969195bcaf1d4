package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigAppliesDifficulty(t *testing.T) {
	t.Cleanup(func() { flagConfig, flagDifficulty = "", "" })

	path := filepath.Join(t.TempDir(), "harvest.yaml")
	if err := os.WriteFile(path, []byte("session:\n  duration_secs: 60\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	flagConfig = path
	flagDifficulty = "hard"

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if cfg.Session.DurationSecs != 60 {
		t.Errorf("duration = %d, expected 60 from file", cfg.Session.DurationSecs)
	}
	if cfg.Session.MaxLives != 3 || cfg.Level != 3 {
		t.Errorf("hard preset not applied: lives=%d level=%d", cfg.Session.MaxLives, cfg.Level)
	}
}

func TestLoadConfigRejectsUnknownDifficulty(t *testing.T) {
	t.Cleanup(func() { flagDifficulty = "" })
	flagDifficulty = "nightmare"

	_, err := loadConfig()
	if err == nil || !strings.Contains(err.Error(), "nightmare") {
		t.Errorf("loadConfig() = %v, expected unknown difficulty error", err)
	}
}

func TestLocalPlayer(t *testing.T) {
	t.Cleanup(func() { flagPlayer = "" })

	flagPlayer = "alice@laptop"
	if got := localPlayer(); got != "alice@laptop" {
		t.Errorf("localPlayer() = %q", got)
	}

	flagPlayer = ""
	if got := localPlayer(); !strings.HasPrefix(got, "local:") {
		t.Errorf("localPlayer() = %q, expected local: prefix", got)
	}
}
