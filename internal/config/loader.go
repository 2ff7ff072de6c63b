package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPinball loads the pinball configuration.
// Search order: customPath -> ~/.pinball/configs/pinball.yaml -> ./configs/pinball.yaml -> embedded default
func LoadPinball(customPath string) (PinballConfig, error) {
	var cfg PinballConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("pinball.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/pinball.yaml"); err == nil {
		var local PinballConfig
		if err := yaml.Unmarshal(data, &local); err == nil {
			return local, nil
		}
	}

	return Default(), nil
}

// Default returns the embedded default configuration, falling back to the
// hardcoded one if the embedded YAML is unusable.
func Default() PinballConfig {
	var cfg PinballConfig
	if err := yaml.Unmarshal(defaultPinballYAML, &cfg); err != nil {
		return DefaultPinballConfig()
	}
	return cfg
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultPinballYAML...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := DataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// DataDir returns ~/.pinball, or empty if home is unavailable.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pinball")
}
