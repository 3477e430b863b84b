// Package config reads the TOML run configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/samdwyer/warpwalk/internal/game"
	"github.com/samdwyer/warpwalk/internal/telemetry"
	"github.com/samdwyer/warpwalk/internal/ui"
	"github.com/samdwyer/warpwalk/internal/world"
)

// DefaultPath is read when WARPWALK_CONFIG is unset.
const DefaultPath = "config/warpwalk.toml"

type Config struct {
	Game      GameConfig      `toml:"game"`
	Maps      MapsConfig      `toml:"maps"`
	Logging   LoggingConfig   `toml:"logging"`
	Theme     ThemeConfig     `toml:"theme"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

type GameConfig struct {
	Seed              int64         `toml:"seed"` // 0 seeds from the clock
	StartArea         uint8         `toml:"start_area"`
	StartPart         uint8         `toml:"start_part"`
	NpcTick           time.Duration `toml:"npc_tick"`
	StepJitter        time.Duration `toml:"step_jitter"`
	MaxTargetAttempts int           `toml:"max_target_attempts"`
}

type MapsConfig struct {
	Path string `toml:"path"` // empty uses the built-in world
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`
}

type ThemeConfig struct {
	Wall   string `toml:"wall"`
	Empty  string `toml:"empty"`
	Warp   string `toml:"warp"`
	NPC    string `toml:"npc"`
	Player string `toml:"player"`
	Status string `toml:"status"`
}

type TelemetryConfig struct {
	Enabled  bool   `toml:"enabled"`
	Endpoint string `toml:"endpoint"`
	Dataset  string `toml:"dataset"`
}

// Path returns the config file location, honouring WARPWALK_CONFIG.
func Path() string {
	if p := os.Getenv("WARPWALK_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func defaults() *Config {
	gc := game.DefaultConfig()
	return &Config{
		Game: GameConfig{
			NpcTick:           gc.NpcTick,
			StepJitter:        gc.StepJitter,
			MaxTargetAttempts: gc.MaxTargetAttempts,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "warpwalk.log",
		},
		Telemetry: TelemetryConfig{
			Endpoint: "https://api.honeycomb.io",
			Dataset:  "warpwalk",
		},
	}
}

// GameConfig converts the [game] section.
func (c *Config) GameConfig() game.Config {
	return game.Config{
		Seed:              c.Game.Seed,
		Start:             world.AreaKey{Area: c.Game.StartArea, Part: c.Game.StartPart},
		NpcTick:           c.Game.NpcTick,
		StepJitter:        c.Game.StepJitter,
		MaxTargetAttempts: c.Game.MaxTargetAttempts,
	}
}

// LogOptions converts the [logging] section.
func (c *Config) LogOptions() telemetry.LogOptions {
	return telemetry.LogOptions{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		File:   c.Logging.File,
	}
}

// Palette converts the [theme] section.
func (c *Config) Palette() ui.Palette {
	return ui.Palette(c.Theme)
}
