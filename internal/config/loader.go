package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFile is the file name looked up in the user and local config directories.
const configFile = "match.yaml"

// Load loads the match configuration.
// Search order: customPath -> ~/.pong/configs/match.yaml -> ./configs/match.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides what it names.
func Load(customPath string) (MatchConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return MatchConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return MatchConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultMatchYAML)
	if err != nil {
		return DefaultMatchConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML over the hardcoded defaults and validates the result.
func parse(data []byte) (MatchConfig, error) {
	cfg := DefaultMatchConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return MatchConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return MatchConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pong", "configs", filename)
}
