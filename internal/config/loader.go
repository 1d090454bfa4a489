package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the constants for a variant.
// Search order: customPath -> ~/.oscillator/configs/<variant>.yaml -> ./configs/<variant>.yaml -> embedded default
func Load(variant, customPath string) (GameConstants, error) {
	filename := variant + ".yaml"

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GameConstants{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(variant, data)
		if err != nil {
			return GameConstants{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return GameConstants{}, err
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(variant, data); err == nil && cfg.Validate() == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if cfg, err := parse(variant, data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if data := GetDefaultYAML(variant); data != nil {
		if cfg, err := parse(variant, data); err == nil {
			return cfg, nil
		}
	}
	return DefaultConstants(variant), nil // Fallback to hardcoded if embed fails
}

// parse decodes YAML on top of the variant's hardcoded defaults,
// so partial files only override the keys they mention.
func parse(variant string, data []byte) (GameConstants, error) {
	cfg := DefaultConstants(variant)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GameConstants{}, err
	}
	return cfg, nil
}

// Marshal encodes constants as YAML.
func Marshal(cfg GameConstants) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode constants: %w", err)
	}
	return data, nil
}

// Unmarshal decodes constants previously produced by Marshal.
func Unmarshal(data []byte) (GameConstants, error) {
	var cfg GameConstants
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GameConstants{}, fmt.Errorf("config: cannot decode constants: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return GameConstants{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".oscillator", "configs", filename)
}

// Resolve loads a variant's constants and scales them for a difficulty preset.
func Resolve(variant, customPath string, preset DifficultyPreset) (GameConstants, error) {
	cfg, err := Load(variant, customPath)
	if err != nil {
		return GameConstants{}, err
	}
	ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return GameConstants{}, err
	}
	return cfg, nil
}
