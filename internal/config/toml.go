// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/keybeat/keybeat/internal/anticheat"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	AntiCheat AntiCheatConfig `toml:"anticheat"`
}

// AntiCheatConfig maps anti-cheat threshold overrides. Nil fields keep the
// built-in defaults.
type AntiCheatConfig struct {
	MinEvents           *int     `toml:"min-events"`
	MinHumanIntervalMs  *float64 `toml:"min-human-interval-ms"`
	MaxHumanWPM         *float64 `toml:"max-human-wpm"`
	NearZeroVarianceMs2 *float64 `toml:"near-zero-variance"`
	BurstRatio          *float64 `toml:"burst-ratio"`
	PerfectRhythmRatio  *float64 `toml:"perfect-rhythm-ratio"`
	SuspiciousFlagCount *int     `toml:"suspicious-flag-count"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Thresholds applies the configured overrides on top of the defaults.
func (c AntiCheatConfig) Thresholds() anticheat.Thresholds {
	t := anticheat.DefaultThresholds()
	if c.MinEvents != nil {
		t.MinEvents = *c.MinEvents
	}
	if c.MinHumanIntervalMs != nil {
		t.MinHumanIntervalMs = *c.MinHumanIntervalMs
	}
	if c.MaxHumanWPM != nil {
		t.MaxHumanWPM = *c.MaxHumanWPM
	}
	if c.NearZeroVarianceMs2 != nil {
		t.NearZeroVarianceMs2 = *c.NearZeroVarianceMs2
	}
	if c.BurstRatio != nil {
		t.BurstRatio = *c.BurstRatio
	}
	if c.PerfectRhythmRatio != nil {
		t.PerfectRhythmRatio = *c.PerfectRhythmRatio
	}
	if c.SuspiciousFlagCount != nil {
		t.SuspiciousFlagCount = *c.SuspiciousFlagCount
	}
	return t
}
