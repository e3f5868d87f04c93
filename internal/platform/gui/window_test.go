package gui

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var testCfg = core.RuntimeConfig{Seed: 7}

func newTestWindow(t *testing.T, id string) *Window {
	t.Helper()
	w, err := NewWindow(context.Background(), id, registry.DefaultEnv(), nil, testCfg)
	require.NoError(t, err)
	t.Cleanup(w.Close)
	return w
}

func TestLayoutIsFixed(t *testing.T) {
	w := newTestWindow(t, blockfall.GameID)

	gotW, gotH := w.Layout(1920, 1080)
	assert.Equal(t, blockfall.Cols*CellSize+PanelWidth, gotW)
	assert.Equal(t, blockfall.Rows*CellSize, gotH)
}

func TestCellOrigin(t *testing.T) {
	x, y := cellOrigin(3, 5)
	assert.Equal(t, float32(90), x)
	assert.Equal(t, float32(150), y)
}

func TestPixelColor(t *testing.T) {
	assert.Equal(t, lockedColor, pixelColor(core.ColorLime))
	for _, k := range blockfall.Kinds() {
		_, ok := palette[k.Color()]
		assert.True(t, ok, "%s has no window color", k)
	}
	assert.Equal(t, palette[core.ColorWhite], pixelColor(core.ColorDefault))
}

func TestApplySyncsTimerAndBanner(t *testing.T) {
	w := newTestWindow(t, blockfall.ClockwiseGameID)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return now }

	require.Equal(t, 500*time.Millisecond, w.ticker.Interval())

	w.apply(core.StepResult{State: core.GameState{Interval: 300 * time.Millisecond}})
	assert.Equal(t, 300*time.Millisecond, w.ticker.Interval())

	w.apply(core.StepResult{State: core.GameState{Interval: 500 * time.Millisecond}, GameOver: true, FinalScore: 400})
	assert.Equal(t, 400, w.bannerScore)
	assert.True(t, now.Before(w.bannerUntil))
	assert.Equal(t, 500*time.Millisecond, w.State().Interval)
}

func TestNewWindowUnknownGame(t *testing.T) {
	_, err := NewWindow(context.Background(), "nope", registry.DefaultEnv(), nil, testCfg)
	assert.Error(t, err)
}
