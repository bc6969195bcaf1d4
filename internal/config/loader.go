package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadHarvest loads the harvest configuration.
// Search order: customPath -> ~/.harvest/configs/harvest.yaml -> ./configs/harvest.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a file only needs the keys it changes.
func LoadHarvest(customPath string) (HarvestConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return HarvestConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return HarvestConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return HarvestConfig{}, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath("harvest.yaml"), filepath.Join("configs", "harvest.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultHarvestYAML)
	if err != nil {
		return DefaultHarvestConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML over the hardcoded defaults.
func parse(data []byte) (HarvestConfig, error) {
	cfg := DefaultHarvestConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return HarvestConfig{}, err
	}
	return cfg, nil
}

// Marshal renders the config back to YAML.
func Marshal(cfg HarvestConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".harvest", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *HarvestConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Session.MaxLives = 5
		cfg.Session.SpawnIntervalMs = 1200
		cfg.Level = 1
	case DifficultyNormal:
		cfg.Level = 2
	case DifficultyHard:
		cfg.Session.MaxLives = 3
		cfg.Session.SpawnIntervalMs = 800
		cfg.Level = 3
	}
}
