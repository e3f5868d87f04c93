package core

import "time"

// RuntimeConfig is passed to games at initialization.
// Games use it to adapt to the screen and to seed their RNG.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed; 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig sized for a classic 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// GameState is the externally visible status of a game.
type GameState struct {
	Score     int
	HighScore int
	Lines     int
	Paused    bool

	// Interval is the current delay between automatic ticks.
	// Platforms reconfigure their timer whenever it changes.
	Interval time.Duration
}

// StepResult is returned after every tick or input that mutated the game.
type StepResult struct {
	State GameState

	Locked       bool // A piece was written into the playfield
	LinesCleared int  // Rows removed by this step
	GameOver     bool // The game ended and restarted during this step
	FinalScore   int  // Score of the game that ended, valid when GameOver
}

// HighScoreStore persists a single named high score value.
type HighScoreStore interface {
	LoadHighScore(key string) (int, error)
	SaveHighScore(key string, score int) error
}

// Notifier presents the end of a game to the player.
// GameOver is called synchronously before the game resets itself.
type Notifier interface {
	GameOver(finalScore int)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(finalScore int)

// GameOver calls f(finalScore).
func (f NotifierFunc) GameOver(finalScore int) {
	f(finalScore)
}
