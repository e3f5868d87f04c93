package blockfall

import (
	"time"

	"github.com/vovakirdan/blockfall/internal/config"
)

// Rules are the tunable constants of a game.
type Rules struct {
	Spawn     Point
	LineBonus int

	Initial   time.Duration // Drop interval at score 0
	Min       time.Duration // Fastest drop interval
	Step      time.Duration // Speed-up per threshold crossed
	Threshold int           // Score per speed-up
	SpeedUp   bool          // False keeps Initial forever
}

// DefaultRules returns the rules of the built-in config.
func DefaultRules() Rules {
	return RulesFromConfig(config.DefaultBlockfallConfig())
}

// RulesFromConfig converts a loaded config into engine rules.
func RulesFromConfig(cfg config.BlockfallConfig) Rules {
	return Rules{
		Spawn:     Point{X: cfg.Spawn.X, Y: cfg.Spawn.Y},
		LineBonus: cfg.Scoring.LineBonus,
		Initial:   cfg.Speed.Initial(),
		Min:       cfg.Speed.Min(),
		Step:      cfg.Speed.Step(),
		Threshold: cfg.Speed.Threshold,
		SpeedUp:   cfg.Difficulty.Enabled,
	}
}

// LineAward returns the points for clearing lines rows in one pass.
// Each line earns base scaled by the lines of the pass, so simultaneous
// clears are worth more than the same lines cleared one at a time.
func LineAward(base, lines int) int {
	return base * lines * lines
}

// DropInterval returns the automatic drop interval for a score: Initial
// reduced by Step for every full Threshold reached, never below Min.
func (r Rules) DropInterval(score int) time.Duration {
	if !r.SpeedUp || r.Threshold <= 0 {
		return r.Initial
	}
	d := r.Initial - time.Duration(score/r.Threshold)*r.Step
	return max(d, r.Min)
}
