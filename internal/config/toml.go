// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/neontype/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game   GameConfig   `toml:"game"`
	Tuning TuningConfig `toml:"tuning"`
}

// GameConfig maps player-facing settings. Nil fields were not set.
type GameConfig struct {
	Source     *string  `toml:"source"`
	Lang       *string  `toml:"lang"`
	Paragraphs *string  `toml:"paragraphs"`
	WordList   *string  `toml:"wordlist"`
	Words      *int     `toml:"words"`
	CapsPct    *float64 `toml:"caps"`
	PunctPct   *float64 `toml:"punct"`
	PunctSet   *string  `toml:"punct-set"`
	Store      *string  `toml:"store"`
}

// TuningConfig overrides the session economy. Durations are in milliseconds.
type TuningConfig struct {
	MetricsMS       *int     `toml:"metrics-ms"`
	DrainMS         *int     `toml:"drain-ms"`
	BaseDrain       *float64 `toml:"base-drain"`
	LevelDrain      *float64 `toml:"level-drain"`
	MaxHealth       *float64 `toml:"max-health"`
	HealthRestore   *float64 `toml:"health-restore"`
	ComboFill       *int     `toml:"combo-fill"`
	ComboPenalty    *int     `toml:"combo-penalty"`
	OverdriveMS     *int     `toml:"overdrive-ms"`
	OverdriveLand   *int     `toml:"overdrive-landing"`
	LevelBlock      *int     `toml:"level-block"`
	MilestoneEvery  *int     `toml:"milestone-every"`
	InitialFallMS   *int     `toml:"initial-fall-ms"`
	MinFallMS       *int     `toml:"min-fall-ms"`
	FallSpeedStepMS *int     `toml:"fall-step-ms"`
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

// Apply overlays the set tuning fields on base.
func (c TuningConfig) Apply(base model.Tuning) model.Tuning {
	t := base
	setDuration(&t.MetricsInterval, c.MetricsMS)
	setDuration(&t.DrainInterval, c.DrainMS)
	setFloat(&t.BaseDrain, c.BaseDrain)
	setFloat(&t.LevelDrainIncrement, c.LevelDrain)
	setFloat(&t.MaxHealth, c.MaxHealth)
	setFloat(&t.HealthRestore, c.HealthRestore)
	setInt(&t.ComboFill, c.ComboFill)
	setInt(&t.ComboPenalty, c.ComboPenalty)
	setDuration(&t.OverdriveDuration, c.OverdriveMS)
	setInt(&t.OverdriveLanding, c.OverdriveLand)
	setInt(&t.LevelBlock, c.LevelBlock)
	setInt(&t.MilestoneEvery, c.MilestoneEvery)
	setDuration(&t.InitialFallSpeed, c.InitialFallMS)
	setDuration(&t.MinFallSpeed, c.MinFallMS)
	setDuration(&t.FallSpeedStep, c.FallSpeedStepMS)
	return t
}

func setDuration(target *time.Duration, ms *int) {
	if ms != nil {
		*target = time.Duration(*ms) * time.Millisecond
	}
}

func setFloat(target, value *float64) {
	if value != nil {
		*target = *value
	}
}

func setInt(target, value *int) {
	if value != nil {
		*target = *value
	}
}
