package storage

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/core"
)

// ScoreRecorder is a core.Notifier that appends every finished game with
// a positive score to the history table. A nil Store records nothing.
type ScoreRecorder struct {
	GameID string
	Store  *Store
	Logger *log.Logger
}

var _ core.Notifier = (*ScoreRecorder)(nil)

// GameOver implements core.Notifier.
func (r *ScoreRecorder) GameOver(finalScore int) {
	if finalScore <= 0 || r.Store == nil {
		return
	}
	if _, err := r.Store.SaveScore(r.GameID, finalScore); err != nil && r.Logger != nil {
		r.Logger.Warn("could not record score", "game", r.GameID, "score", finalScore, "error", err)
	}
}
