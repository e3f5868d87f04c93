package blockfall

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// memStore is an in-memory HighScoreStore.
type memStore struct {
	values  map[string]int
	saves   int
	loadErr error
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]int)}
}

func (m *memStore) LoadHighScore(key string) (int, error) {
	if m.loadErr != nil {
		return 0, m.loadErr
	}
	return m.values[key], nil
}

func (m *memStore) SaveHighScore(key string, score int) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.values[key] = score
	return nil
}

var testCfg = core.RuntimeConfig{Seed: 12345, ScreenW: 80, ScreenH: 24}

func testRules(bonus int) Rules {
	r := DefaultRules()
	r.LineBonus = bonus
	return r
}

func newTestGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	g := New(RotateTranspose, opts...)
	g.Reset(testCfg)
	require.Equal(t, PhaseFalling, g.Phase())
	return g
}

// place replaces the active piece.
func place(g *Game, shape Shape, x, y int) {
	g.st.Piece = ActivePiece{Kind: PieceI, Shape: shape, Pos: Point{X: x, Y: y}}
}

// clearOne arranges a single-line clear on the next tick.
func clearOne(t *testing.T, g *Game) core.StepResult {
	t.Helper()
	fillRow(&g.st.Field, Rows-1, 4, 5, 6, 7)
	place(g, PieceI.Shape(), 4, Rows-1)
	res := g.Step()
	require.True(t, res.Locked)
	require.Equal(t, 1, res.LinesCleared)
	return res
}

// clearTwo arranges a double-line clear on the next tick.
func clearTwo(t *testing.T, g *Game) core.StepResult {
	t.Helper()
	fillRow(&g.st.Field, Rows-1, 0)
	fillRow(&g.st.Field, Rows-2, 0)
	place(g, PieceI.Shape().Transpose(), 0, Rows-4)
	res := g.Step()
	require.True(t, res.Locked)
	require.Equal(t, 2, res.LinesCleared)
	return res
}

// forceGameOver blocks the spawn area and locks the active piece.
func forceGameOver(t *testing.T, g *Game) core.StepResult {
	t.Helper()
	for x := 4; x < 8; x++ {
		g.st.Field.cells[0][x] = CellFilled
	}
	place(g, PieceO.Shape(), 0, Rows-2)
	res := g.Step()
	require.True(t, res.GameOver)
	return res
}

func TestLineAward(t *testing.T) {
	tests := []struct {
		lines int
		want  int
	}{
		{0, 0},
		{1, 100},
		{2, 400},
		{3, 900},
		{4, 1600},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LineAward(100, tt.lines), "%d lines", tt.lines)
	}
}

func TestScoringOneThenTwoLines(t *testing.T) {
	const base = 100
	g := newTestGame(t, WithRules(testRules(base)))

	clearOne(t, g)
	assert.Equal(t, base, g.State().Score)

	res := clearTwo(t, g)
	assert.Equal(t, base*1+base*2*2, res.State.Score)
	assert.Equal(t, 3, res.State.Lines)
	assert.Equal(t, 2, g.st.Field.Height(), "the top of the vertical I drops to the floor")
}

func TestDropInterval(t *testing.T) {
	r := DefaultRules()
	tests := []struct {
		score int
		want  time.Duration
	}{
		{0, 500 * time.Millisecond},
		{199, 500 * time.Millisecond},
		{200, 450 * time.Millisecond},
		{399, 450 * time.Millisecond},
		{400, 400 * time.Millisecond},
		{1600, 100 * time.Millisecond},
		{100000, 100 * time.Millisecond},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.DropInterval(tt.score), "score %d", tt.score)
	}

	r.SpeedUp = false
	assert.Equal(t, 500*time.Millisecond, r.DropInterval(5000))
}

func TestSpeedUpAfterThreshold(t *testing.T) {
	g := newTestGame(t, WithRules(testRules(100)))
	require.Equal(t, 500*time.Millisecond, g.State().Interval)

	res := clearOne(t, g)
	assert.Equal(t, 500*time.Millisecond, res.State.Interval)

	res = clearOne(t, g)
	assert.Equal(t, 200, res.State.Score)
	assert.Equal(t, 450*time.Millisecond, res.State.Interval)
}

func TestHighScorePersistsAndSurvivesGameOver(t *testing.T) {
	store := newMemStore()
	store.values["highScore"] = 100

	var notified []int
	g := newTestGame(t,
		WithRules(testRules(150)),
		WithHighScoreStore(store),
		WithNotifier(core.NotifierFunc(func(score int) { notified = append(notified, score) })),
	)
	require.Equal(t, 100, g.State().HighScore)

	clearOne(t, g)
	assert.Equal(t, 150, g.State().Score)
	assert.Equal(t, 150, g.State().HighScore)
	assert.Equal(t, 150, store.values["highScore"])

	res := forceGameOver(t, g)
	assert.Equal(t, 150, res.FinalScore)
	assert.Equal(t, []int{150}, notified)
	assert.Equal(t, 0, res.State.Score)
	assert.Equal(t, 0, res.State.Lines)
	assert.Equal(t, 150, res.State.HighScore)
	assert.Equal(t, 150, store.values["highScore"])
	assert.Equal(t, PhaseFalling, g.Phase(), "a new piece spawns after the reset")
	assert.Equal(t, 0, g.st.Field.Height())
	assert.Equal(t, 1, g.Snapshot().GamesPlayed)
}

func TestSharedStoreKeepsHigherRecord(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	// Both engines load the record before either scores.
	a := newTestGame(t, WithRules(testRules(100)), WithHighScoreStore(store))
	b := newTestGame(t, WithRules(testRules(100)), WithHighScoreStore(store))

	clearOne(t, a)
	clearTwo(t, a)
	require.Equal(t, 500, a.State().Score)

	clearTwo(t, b)
	require.Equal(t, 400, b.State().HighScore)

	high, err := store.LoadHighScore(HighScoreKey(GameID))
	require.NoError(t, err)
	assert.Equal(t, 500, high)
}

func TestHighScoreNotSavedBelowRecord(t *testing.T) {
	store := newMemStore()
	store.values["highScore"] = 1000

	g := newTestGame(t, WithRules(testRules(100)), WithHighScoreStore(store))
	clearOne(t, g)

	assert.Equal(t, 1000, g.State().HighScore)
	assert.Zero(t, store.saves)
}

func TestClockwiseVariantUsesOwnKey(t *testing.T) {
	store := newMemStore()
	store.values["highScore"] = 900
	store.values["highScore_clockwise"] = 40

	g := New(RotateClockwise, WithHighScoreStore(store))
	g.Reset(testCfg)

	assert.Equal(t, ClockwiseGameID, g.ID())
	assert.Equal(t, 40, g.State().HighScore)
}

func TestPersistenceFailureFallsBackToMemory(t *testing.T) {
	store := newMemStore()
	store.loadErr = errors.New("disk gone")
	store.saveErr = errors.New("disk gone")

	g := newTestGame(t, WithRules(testRules(100)), WithHighScoreStore(store))
	assert.Equal(t, 0, g.State().HighScore)

	clearOne(t, g)
	assert.Equal(t, 100, g.State().HighScore, "in-memory high score keeps working")
	assert.Equal(t, 1, store.saves)
}

func TestHighScoreLoadedOnce(t *testing.T) {
	store := newMemStore()
	store.values["highScore"] = 10

	g := newTestGame(t, WithHighScoreStore(store))
	store.values["highScore"] = 999

	g.Reset(testCfg)
	assert.Equal(t, 10, g.State().HighScore)
}

func TestGameOverWithoutNotifier(t *testing.T) {
	g := newTestGame(t)
	res := forceGameOver(t, g)

	assert.Equal(t, 0, res.FinalScore)
	assert.Equal(t, DefaultRules().Initial, res.State.Interval)
}

func TestGameOverResetsSpeed(t *testing.T) {
	g := newTestGame(t, WithRules(testRules(100)))
	clearOne(t, g)
	clearOne(t, g)
	require.Equal(t, 450*time.Millisecond, g.State().Interval)

	res := forceGameOver(t, g)
	assert.Equal(t, 500*time.Millisecond, res.State.Interval)
}

func TestSpawnThatNeverFitsDoesNotHang(t *testing.T) {
	rules := DefaultRules()
	rules.Spawn = Point{X: Cols - 1, Y: 0}
	g := New(RotateTranspose, WithRules(rules))

	done := make(chan struct{})
	go func() {
		defer close(done)
		g.Reset(testCfg)
		g.Step()
		g.Apply(core.ActionDown)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Reset/Step did not return with an unfittable spawn")
	}

	assert.Equal(t, PhaseSpawned, g.Phase())
	assert.Zero(t, g.st.GamesPlayed, "an empty field is never a game over")
}

func TestStepFallsOneRow(t *testing.T) {
	g := newTestGame(t)
	start := g.Piece().Pos

	res := g.Step()
	assert.False(t, res.Locked)
	assert.Equal(t, Point{X: start.X, Y: start.Y + 1}, g.Piece().Pos)
	assert.Equal(t, PhaseFalling, g.Phase())
}

func TestSoftDropLocksLikeTick(t *testing.T) {
	g := newTestGame(t)
	place(g, PieceO.Shape(), 0, Rows-2)

	res := g.Apply(core.ActionDown)
	assert.True(t, res.Locked)
	assert.True(t, g.st.Field.IsOccupied(0, Rows-1))
	assert.Equal(t, 1, g.Snapshot().Pieces)
	assert.Equal(t, PhaseFalling, g.Phase())
}

func TestMovesDoNotChangePhase(t *testing.T) {
	g := newTestGame(t)
	place(g, PieceO.Shape(), 0, 5)

	assert.False(t, g.MoveLeft(), "left wall rejects")
	assert.True(t, g.MoveRight())
	assert.True(t, g.Rotate(), "rotating O always fits in open space")
	assert.Equal(t, PhaseFalling, g.Phase())
	assert.Equal(t, Point{X: 1, Y: 5}, g.Piece().Pos)
}

func TestPauseFreezesGame(t *testing.T) {
	g := newTestGame(t)
	before := g.Piece().Pos

	res := g.Apply(core.ActionPause)
	require.True(t, res.State.Paused)

	g.Step()
	g.Apply(core.ActionLeft)
	g.Apply(core.ActionDown)
	assert.Equal(t, before, g.Piece().Pos)

	res = g.Apply(core.ActionPause)
	assert.False(t, res.State.Paused)
	g.Step()
	assert.Equal(t, before.Y+1, g.Piece().Pos.Y)
}

func TestPieceReturnsCopy(t *testing.T) {
	g := newTestGame(t)
	p := g.Piece()
	p.Shape[0][0] = !p.Shape[0][0]
	p.Pos.X = 99

	assert.NotEqual(t, p.Shape[0][0], g.Piece().Shape[0][0])
	assert.NotEqual(t, 99, g.Piece().Pos.X)
}

func TestDeterminism(t *testing.T) {
	g1 := New(RotateTranspose)
	g1.Reset(testCfg)
	g2 := New(RotateTranspose)
	g2.Reset(testCfg)

	actions := []core.Action{core.ActionLeft, core.ActionRotate, core.ActionRight, core.ActionDown}
	for i := range 2000 {
		if i%3 == 0 {
			a := actions[(i/3)%len(actions)]
			g1.Apply(a)
			g2.Apply(a)
		}
		g1.Step()
		g2.Step()
	}

	assert.Equal(t, g1.Snapshot(), g2.Snapshot())
	assert.Equal(t, g1.Field(), g2.Field())
	assert.Positive(t, g1.Snapshot().GamesPlayed+g1.Snapshot().Pieces)
}

func TestRegistryVariants(t *testing.T) {
	store := newMemStore()
	env := registry.Env{Config: config.DefaultBlockfallConfig(), Scores: store}

	for _, id := range []string{GameID, ClockwiseGameID} {
		g, err := registry.Create(id, env)
		require.NoError(t, err)
		assert.Equal(t, id, g.ID())

		g.Reset(testCfg)
		assert.Equal(t, 500*time.Millisecond, g.State().Interval)
	}
}

func TestEnvWithoutConfigUsesDefaults(t *testing.T) {
	g, err := registry.Create(GameID, registry.Env{})
	require.NoError(t, err)

	bf := g.(*Game)
	assert.Equal(t, DefaultRules(), bf.Rules())
}

func TestRulesFromPreset(t *testing.T) {
	cfg := config.DefaultBlockfallConfig()
	config.ApplyBlockfallPreset(&cfg, config.DifficultyFixed)

	r := RulesFromConfig(cfg)
	assert.Equal(t, r.Initial, r.DropInterval(10000))
}

func TestRender(t *testing.T) {
	g := newTestGame(t)
	scr := core.NewScreen(80, 24)
	g.Render(scr)

	out := scr.String()
	assert.Contains(t, out, "Score: 0")
	assert.Contains(t, out, "Speed: 500ms")
	assert.Contains(t, out, "█")

	g.Apply(core.ActionPause)
	g.Render(scr)
	assert.Contains(t, scr.String(), "PAUSED")

	small := core.NewScreen(20, 5)
	g.Render(small)
	assert.Contains(t, small.String(), "Window too small")
}
