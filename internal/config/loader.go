package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name looked up in the search path.
const FileName = "stacker.yaml"

// Load loads the stacker configuration. Values missing from the file keep
// their defaults.
// Search order: customPath -> ~/.stacker/config.yaml -> ./configs/stacker.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg, _, err := LoadWithSource(customPath)
	return cfg, err
}

// LoadWithSource is Load that also reports where the configuration came
// from: a file path, "embedded" or "builtin".
func LoadWithSource(customPath string) (Config, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Default(), "", fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Default(), "", fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, userCfgPath, nil
			}
		}
	}

	// Try local configs directory
	local := filepath.Join("configs", FileName)
	if data, err := os.ReadFile(local); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, local, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), "builtin", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded", nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: yaml unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: yaml marshal: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".stacker", "config.yaml")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
