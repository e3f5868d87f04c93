// Package blockfall implements the falling-block puzzle engine: the
// playfield, the piece catalog, the active piece, collision rules and the
// controller that runs spawn, fall, lock, clear, score and game over.
package blockfall

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// Registry IDs of the two variants.
const (
	GameID          = "blockfall"
	ClockwiseGameID = "blockfall_clockwise"
)

// Phase is the controller state.
type Phase int

const (
	PhaseSpawned Phase = iota
	PhaseFalling
	PhaseLocking
	PhaseCleared
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSpawned:
		return "spawned"
	case PhaseFalling:
		return "falling"
	case PhaseLocking:
		return "locking"
	case PhaseCleared:
		return "cleared"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// State is everything that changes during play.
// A Game owns exactly one State; nothing else mutates it.
type State struct {
	Field       Playfield
	Piece       ActivePiece
	Phase       Phase
	Score       int
	HighScore   int
	Lines       int
	Pieces      int // Pieces locked in the current game
	GamesPlayed int // Games finished since Reset
	Interval    time.Duration
	Paused      bool
}

// Game is the controller. It is not safe for concurrent use; platforms
// deliver ticks and input from a single event loop.
type Game struct {
	id    string
	title string
	mode  RotationMode
	rules Rules

	rng  *rand.Rand
	tick uint64
	st   State

	scores     core.HighScoreStore
	notifier   core.Notifier
	logger     *log.Logger
	highLoaded bool

	// result collects events of the operation in progress.
	result core.StepResult
}

// Option configures a Game.
type Option func(*Game)

// WithRules overrides the default rules.
func WithRules(r Rules) Option {
	return func(g *Game) { g.rules = r }
}

// WithHighScoreStore persists the high score. Without one the high score
// lives in memory for the session.
func WithHighScoreStore(s core.HighScoreStore) Option {
	return func(g *Game) { g.scores = s }
}

// WithNotifier receives the final score of every finished game.
func WithNotifier(n core.Notifier) Option {
	return func(g *Game) { g.notifier = n }
}

// WithLogger sets the logger. nil keeps the discarding default.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a game using the given rotation mode.
func New(mode RotationMode, opts ...Option) *Game {
	g := &Game{
		id:     GameID,
		title:  "Blockfall",
		mode:   mode,
		rules:  DefaultRules(),
		logger: log.New(io.Discard),
	}
	if mode == RotateClockwise {
		g.id = ClockwiseGameID
		g.title = "Blockfall (Clockwise)"
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func fromEnv(mode RotationMode, env registry.Env) *Game {
	cfg := env.Config
	if cfg == (config.BlockfallConfig{}) {
		cfg = config.DefaultBlockfallConfig()
	}
	return New(mode,
		WithRules(RulesFromConfig(cfg)),
		WithHighScoreStore(env.Scores),
		WithNotifier(env.Notifier),
		WithLogger(env.Logger),
	)
}

func init() {
	registry.Register(GameID, func(env registry.Env) registry.Game {
		return fromEnv(RotateTranspose, env)
	})
	registry.Register(ClockwiseGameID, func(env registry.Env) registry.Game {
		return fromEnv(RotateClockwise, env)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Mode returns the rotation mode.
func (g *Game) Mode() RotationMode {
	return g.mode
}

// Rules returns the active rules.
func (g *Game) Rules() Rules {
	return g.rules
}

// HighScoreKey names the persisted high score of a variant.
func HighScoreKey(gameID string) string {
	if gameID == ClockwiseGameID {
		return "highScore_clockwise"
	}
	return "highScore"
}

func (g *Game) highScoreKey() string {
	return HighScoreKey(g.id)
}

// Reset starts a fresh game. The persisted high score is read on the
// first Reset only.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(registry.Seed(cfg.Seed)))
	g.tick = 0
	g.st = State{HighScore: g.st.HighScore}

	if !g.highLoaded {
		g.loadHighScore()
	}

	g.st.Interval = g.rules.DropInterval(0)
	g.st.Phase = PhaseSpawned

	g.begin()
	g.advance()
}

func (g *Game) loadHighScore() {
	g.highLoaded = true
	if g.scores == nil {
		return
	}

	high, err := g.scores.LoadHighScore(g.highScoreKey())
	if err != nil {
		g.logger.Warn("high score unavailable, starting from 0", "key", g.highScoreKey(), "error", err)
		return
	}
	g.st.HighScore = high
}

// Step advances the game by one automatic drop tick.
func (g *Game) Step() core.StepResult {
	g.begin()
	g.tick++
	if !g.st.Paused {
		g.fall()
	}
	return g.finish()
}

// Apply performs a player action immediately.
func (g *Game) Apply(a core.Action) core.StepResult {
	if a.IsMove() && !g.canMove() {
		return core.StepResult{State: g.State()}
	}
	switch a {
	case core.ActionPause:
		g.begin()
		g.st.Paused = !g.st.Paused
		return g.finish()
	case core.ActionLeft:
		g.MoveLeft()
	case core.ActionRight:
		g.MoveRight()
	case core.ActionRotate:
		g.Rotate()
	case core.ActionDown:
		return g.SoftDrop()
	}
	return core.StepResult{State: g.State()}
}

// canMove reports whether player input may touch the piece.
func (g *Game) canMove() bool {
	return !g.st.Paused && g.st.Phase == PhaseFalling
}

// MoveLeft shifts the piece one column left; rejected silently on collision.
func (g *Game) MoveLeft() bool {
	return g.canMove() && g.st.Piece.Translate(&g.st.Field, -1, 0)
}

// MoveRight shifts the piece one column right; rejected silently on collision.
func (g *Game) MoveRight() bool {
	return g.canMove() && g.st.Piece.Translate(&g.st.Field, 1, 0)
}

// Rotate rotates the piece; rejected silently on collision.
func (g *Game) Rotate() bool {
	return g.canMove() && g.st.Piece.Rotate(&g.st.Field, g.mode)
}

// SoftDrop moves the piece down one row. When it cannot move it locks,
// exactly as on a tick.
func (g *Game) SoftDrop() core.StepResult {
	g.begin()
	if g.canMove() {
		g.fall()
	}
	return g.finish()
}

func (g *Game) begin() {
	g.result = core.StepResult{}
}

func (g *Game) finish() core.StepResult {
	g.result.State = g.State()
	return g.result
}

// fall attempts one row down and settles the piece when blocked.
func (g *Game) fall() {
	if g.st.Phase != PhaseFalling {
		g.advance()
		return
	}
	if g.st.Piece.Translate(&g.st.Field, 0, 1) {
		return
	}
	g.st.Phase = PhaseLocking
	g.advance()
}

// advance runs the phase machine until a piece is falling again.
// A spawn that collides on an empty field is not a game over: the phase
// stays Spawned and the next tick retries, so the loop always returns.
func (g *Game) advance() {
	for {
		switch g.st.Phase {
		case PhaseFalling:
			return

		case PhaseLocking:
			g.st.Field.Lock(g.st.Piece.Shape, g.st.Piece.Pos)
			g.st.Pieces++
			g.result.Locked = true
			g.st.Phase = PhaseCleared

		case PhaseCleared:
			g.award(g.st.Field.ClearFullRows())
			g.st.Phase = PhaseSpawned

		case PhaseSpawned:
			g.st.Piece = Spawn(g.rng, g.rules.Spawn)
			if !Collides(g.st.Piece.Shape, g.st.Piece.Pos, &g.st.Field) {
				g.st.Phase = PhaseFalling
				continue
			}
			if g.st.Field.Height() == 0 {
				g.logger.Error("piece does not fit at spawn on an empty field", "piece", g.st.Piece.Kind, "spawn", g.rules.Spawn)
				return
			}
			g.st.Phase = PhaseGameOver

		case PhaseGameOver:
			g.gameOver()
			g.st.Phase = PhaseSpawned
		}
	}
}

// award scores a clear pass and applies the resulting speed.
func (g *Game) award(lines int) {
	if lines == 0 {
		return
	}
	g.result.LinesCleared += lines
	g.st.Lines += lines
	g.st.Score += LineAward(g.rules.LineBonus, lines)
	g.updateHighScore()

	if next := g.rules.DropInterval(g.st.Score); next != g.st.Interval {
		g.logger.Debug("drop speed changed", "from", g.st.Interval, "to", next, "score", g.st.Score)
		g.st.Interval = next
	}
}

func (g *Game) updateHighScore() {
	if g.st.Score <= g.st.HighScore {
		return
	}
	g.st.HighScore = g.st.Score
	if g.scores == nil {
		return
	}
	if err := g.scores.SaveHighScore(g.highScoreKey(), g.st.HighScore); err != nil {
		g.logger.Warn("could not persist high score", "key", g.highScoreKey(), "score", g.st.HighScore, "error", err)
	}
}

// gameOver reports the final score and restarts on an empty field.
func (g *Game) gameOver() {
	final := g.st.Score
	g.logger.Info("game over", "game", g.id, "score", final, "lines", g.st.Lines, "pieces", g.st.Pieces)

	if g.notifier != nil {
		g.notifier.GameOver(final)
	}

	g.st.Field.Reset()
	g.st.Score = 0
	g.st.Lines = 0
	g.st.Pieces = 0
	g.st.GamesPlayed++
	g.st.Interval = g.rules.DropInterval(0)

	g.result.GameOver = true
	g.result.FinalScore = final
}

// State returns the externally visible state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.st.Score,
		HighScore: g.st.HighScore,
		Lines:     g.st.Lines,
		Paused:    g.st.Paused,
		Interval:  g.st.Interval,
	}
}

// Field returns a copy of the playfield cells.
func (g *Game) Field() Grid {
	return g.st.Field.Grid()
}

// Piece returns a copy of the active piece.
func (g *Game) Piece() ActivePiece {
	p := g.st.Piece
	p.Shape = p.Shape.Clone()
	return p
}

// Phase returns the controller phase.
func (g *Game) Phase() Phase {
	return g.st.Phase
}
