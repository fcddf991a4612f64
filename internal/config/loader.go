package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source selects where configuration is read from.
type Source struct {
	// Dir is searched first for <name>.yaml when set.
	Dir string
	// Preset adjusts difficulty ramps after loading.
	Preset DifficultyPreset
}

// load fills cfg from the first file found.
// Search order: dir/<name>.yaml -> ~/.arcade/configs/<name>.yaml ->
// ./configs/<name>.yaml -> embedded default -> hardcoded default.
// Files are decoded over the hardcoded defaults, so partial files work.
func load[T any](name, dir string, fallback func() T) (T, error) {
	filename := name + ".yaml"

	if dir != "" {
		path := filepath.Join(dir, filename)
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			return decode(data, path, fallback)
		case !errors.Is(err, fs.ErrNotExist):
			return fallback(), fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decode(data, userCfgPath, fallback); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	local := filepath.Join("configs", filename)
	if data, err := os.ReadFile(local); err == nil {
		if cfg, err := decode(data, local, fallback); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if data := GetDefaultYAML(name); data != nil {
		if cfg, err := decode(data, "embedded "+filename, fallback); err == nil {
			return cfg, nil
		}
	}
	return fallback(), nil
}

func decode[T any](data []byte, origin string, fallback func() T) (T, error) {
	cfg := fallback()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fallback(), fmt.Errorf("config: parse %s: %w", origin, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// LoadDodge loads Dodge configuration and applies the preset.
func LoadDodge(src Source) (DodgeConfig, error) {
	cfg, err := load("dodge", src.Dir, DefaultDodgeConfig)
	ApplyDodgePreset(&cfg, src.Preset)
	return cfg, err
}

// LoadBrick loads Brick configuration and applies the preset.
func LoadBrick(src Source) (BrickConfig, error) {
	cfg, err := load("brick", src.Dir, DefaultBrickConfig)
	ApplyBrickPreset(&cfg, src.Preset)
	return cfg, err
}

// LoadFlappy loads Flappy configuration. Flappy has no score ramps.
func LoadFlappy(src Source) (FlappyConfig, error) {
	return load("flappy", src.Dir, DefaultFlappyConfig)
}

// LoadJump loads Jump configuration. Jump has no score ramps.
func LoadJump(src Source) (JumpConfig, error) {
	return load("jump", src.Dir, DefaultJumpConfig)
}

// LoadSnake loads Snake configuration and applies the preset.
func LoadSnake(src Source) (SnakeConfig, error) {
	cfg, err := load("snake", src.Dir, DefaultSnakeConfig)
	ApplySnakePreset(&cfg, src.Preset)
	return cfg, err
}

// LoadHub loads the hub configuration.
func LoadHub(src Source) (HubConfig, error) {
	cfg, err := load("hub", src.Dir, DefaultHubConfig)
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultHubConfig().TickRate
	}
	if cfg.GuestName == "" {
		cfg.GuestName = DefaultHubConfig().GuestName
	}
	return cfg, err
}
