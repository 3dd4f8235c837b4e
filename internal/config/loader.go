package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMazeChase loads Maze Chase configuration.
// Search order: customPath -> ~/.mazechase/configs/mazechase.yaml -> ./configs/mazechase.yaml -> embedded default
func LoadMazeChase(customPath string) (MazeChaseConfig, error) {
	// Missing keys keep their default values
	cfg := DefaultMazeChaseConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("mazechase.yaml"), filepath.Join("configs", "mazechase.yaml")} {
		if path == "" {
			continue
		}
		if loaded, ok := tryLoad(path); ok {
			return loaded, nil
		}
	}

	// Use embedded default YAML
	fromEmbed := DefaultMazeChaseConfig()
	if err := yaml.Unmarshal(defaultMazeChaseYAML, &fromEmbed); err != nil || fromEmbed.Validate() != nil {
		return DefaultMazeChaseConfig(), nil // Fallback to hardcoded if embed fails
	}
	return fromEmbed, nil
}

// tryLoad reads an optional config file. Unreadable or invalid files are
// skipped so a broken user file never blocks play.
func tryLoad(path string) (MazeChaseConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MazeChaseConfig{}, false
	}
	cfg := DefaultMazeChaseConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return MazeChaseConfig{}, false
	}
	if err := cfg.Validate(); err != nil {
		return MazeChaseConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mazechase", "configs", filename)
}

// DefaultDataDir returns ~/.mazechase, or the working directory when home
// is unavailable.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".mazechase")
}
