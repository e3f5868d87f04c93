// Package config provides YAML-based game configuration loading and
// difficulty presets for blockfall.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Board dimensions are fixed; configs cannot change them.
const (
	BoardRows = 20
	BoardCols = 10
)

// Every catalog piece spawns inside a box of this size.
const (
	MaxPieceWidth  = 4
	MaxPieceHeight = 2
)

// BlockfallConfig contains all tunable rules of the game.
type BlockfallConfig struct {
	Spawn      SpawnConfig      `yaml:"spawn"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Speed      SpeedConfig      `yaml:"speed"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SpawnConfig is the grid offset where new pieces appear.
type SpawnConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// ScoringConfig defines line clear rewards.
type ScoringConfig struct {
	// LineBonus is awarded per cleared line, multiplied by the number of
	// lines cleared in the same pass.
	LineBonus int `yaml:"line_bonus"`
}

// SpeedConfig defines the automatic drop interval curve.
type SpeedConfig struct {
	InitialMS int `yaml:"initial_ms"` // Interval at score 0
	MinMS     int `yaml:"min_ms"`     // Floor for the interval
	StepMS    int `yaml:"step_ms"`    // Reduction per threshold crossed
	Threshold int `yaml:"threshold"`  // Score per speed-up step
}

// Initial returns the starting drop interval.
func (s SpeedConfig) Initial() time.Duration {
	return time.Duration(s.InitialMS) * time.Millisecond
}

// Min returns the fastest allowed drop interval.
func (s SpeedConfig) Min() time.Duration {
	return time.Duration(s.MinMS) * time.Millisecond
}

// Step returns the reduction applied per threshold crossed.
func (s SpeedConfig) Step() time.Duration {
	return time.Duration(s.StepMS) * time.Millisecond
}

// DifficultyConfig toggles speed progression.
type DifficultyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Preset  string `yaml:"preset"` // informational: easy, normal, hard, fixed
}

// Validate reports every rule violation in the config.
func (c BlockfallConfig) Validate() error {
	var errs []error

	// A piece that cannot fit on an empty board would end every game at spawn.
	if maxX := BoardCols - MaxPieceWidth; c.Spawn.X < 0 || c.Spawn.X > maxX {
		errs = append(errs, fmt.Errorf("spawn.x %d outside [0, %d]", c.Spawn.X, maxX))
	}
	if maxY := BoardRows - MaxPieceHeight; c.Spawn.Y < 0 || c.Spawn.Y > maxY {
		errs = append(errs, fmt.Errorf("spawn.y %d outside [0, %d]", c.Spawn.Y, maxY))
	}
	if c.Scoring.LineBonus < 0 {
		errs = append(errs, fmt.Errorf("scoring.line_bonus must not be negative, got %d", c.Scoring.LineBonus))
	}
	if c.Speed.MinMS <= 0 {
		errs = append(errs, fmt.Errorf("speed.min_ms must be positive, got %d", c.Speed.MinMS))
	}
	if c.Speed.InitialMS < c.Speed.MinMS {
		errs = append(errs, fmt.Errorf("speed.initial_ms %d is below speed.min_ms %d", c.Speed.InitialMS, c.Speed.MinMS))
	}
	if c.Speed.StepMS < 0 {
		errs = append(errs, fmt.Errorf("speed.step_ms must not be negative, got %d", c.Speed.StepMS))
	}
	if c.Speed.Threshold < 0 {
		errs = append(errs, fmt.Errorf("speed.threshold must not be negative, got %d", c.Speed.Threshold))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid blockfall config: %w", errors.Join(errs...))
	}
	return nil
}
