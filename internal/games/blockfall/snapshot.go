package blockfall

import "time"

// Snapshot captures the game state for determinism tests and debugging.
type Snapshot struct {
	Tick        uint64
	Mode        string
	Phase       Phase
	Score       int
	HighScore   int
	Lines       int
	Pieces      int
	GamesPlayed int
	Piece       PieceKind
	PieceX      int
	PieceY      int
	Interval    time.Duration
	Paused      bool
	Height      int // Stack height in rows
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:        g.tick,
		Mode:        g.mode.String(),
		Phase:       g.st.Phase,
		Score:       g.st.Score,
		HighScore:   g.st.HighScore,
		Lines:       g.st.Lines,
		Pieces:      g.st.Pieces,
		GamesPlayed: g.st.GamesPlayed,
		Piece:       g.st.Piece.Kind,
		PieceX:      g.st.Piece.Pos.X,
		PieceY:      g.st.Piece.Pos.Y,
		Interval:    g.st.Interval,
		Paused:      g.st.Paused,
		Height:      g.st.Field.Height(),
	}
}
