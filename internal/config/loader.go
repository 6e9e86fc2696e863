package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "kitchen.yaml"

// Load loads the kitchen configuration.
// Search order: customPath -> ~/.kitchen/configs/kitchen.yaml -> ./configs/kitchen.yaml -> embedded default
//
// Files are decoded over the hardcoded defaults, so a file may set only the
// keys it changes.
func Load(customPath string) (KitchenConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return KitchenConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return KitchenConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(fileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", fileName)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultKitchenYAML)
	if err != nil {
		return DefaultKitchenConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parse(data []byte) (KitchenConfig, error) {
	cfg := DefaultKitchenConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return KitchenConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return KitchenConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kitchen", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *KitchenConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust throwing based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Throw.FeedValue *= 1.5
		cfg.Throw.Range += 2
	case DifficultyHard:
		cfg.Throw.FeedValue *= 0.75
		cfg.Throw.Cooldown += cfg.Throw.Cooldown / 2
	}
}
