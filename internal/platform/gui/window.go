// Package gui runs blockfall in a desktop window with Ebiten.
// Cells are drawn as 30 px blocks; a side panel shows the score.
package gui

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/scheduler"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// Layout constants in logical pixels.
const (
	CellSize   = 30
	PanelWidth = 180
	FieldW     = blockfall.Cols * CellSize
	FieldH     = blockfall.Rows * CellSize
	ScreenW    = FieldW + PanelWidth
	ScreenH    = FieldH
)

// Key repeat timing in frames for held movement keys.
const (
	repeatDelay    = 12
	repeatInterval = 4
)

const bannerDuration = 2 * time.Second

var (
	backgroundColor = color.RGBA{16, 16, 24, 255}
	gridColor       = color.RGBA{40, 40, 52, 255}
	lockedColor     = color.RGBA{0, 255, 0, 255}
	panelColor      = color.RGBA{28, 28, 40, 255}
	bannerColor     = color.RGBA{0, 0, 0, 200}
)

// palette maps engine colors to pixels.
var palette = map[core.Color]color.RGBA{
	core.ColorRed:     {230, 40, 40, 255},
	core.ColorGreen:   {40, 200, 80, 255},
	core.ColorYellow:  {240, 220, 40, 255},
	core.ColorBlue:    {50, 90, 230, 255},
	core.ColorMagenta: {190, 60, 200, 255},
	core.ColorCyan:    {40, 210, 230, 255},
	core.ColorWhite:   {235, 235, 235, 255},
	core.ColorOrange:  {250, 150, 30, 255},
	core.ColorGray:    {128, 128, 128, 255},
	core.ColorLime:    lockedColor,
}

// pixelColor returns the window color of an engine color.
func pixelColor(c core.Color) color.RGBA {
	if rgba, ok := palette[c]; ok {
		return rgba
	}
	return palette[core.ColorWhite]
}

// Window implements ebiten.Game around one blockfall engine.
type Window struct {
	game   *blockfall.Game
	ticker *scheduler.Repeater
	ctx    context.Context
	cancel context.CancelFunc
	logger *log.Logger

	state       core.GameState
	bannerScore int
	bannerUntil time.Time
	now         func() time.Time
}

// NewWindow creates the window for gameID. Cancelling ctx stops the drop
// timer and closes the window on its next update.
func NewWindow(ctx context.Context, gameID string, env registry.Env, store *storage.Store, cfg core.RuntimeConfig) (*Window, error) {
	if env.Logger == nil {
		env.Logger = registry.DefaultEnv().Logger
	}
	env.Notifier = &storage.ScoreRecorder{GameID: gameID, Store: store, Logger: env.Logger}

	g, err := registry.Create(gameID, env)
	if err != nil {
		return nil, err
	}
	game, ok := g.(*blockfall.Game)
	if !ok {
		return nil, fmt.Errorf("gui: %q is not a blockfall variant", gameID)
	}
	game.Reset(cfg)

	ctx, cancel := context.WithCancel(ctx)
	return &Window{
		game:   game,
		ticker: scheduler.New(game.State().Interval),
		ctx:    ctx,
		cancel: cancel,
		logger: env.Logger,
		state:  game.State(),
		now:    time.Now,
	}, nil
}

// Update drains the drop timer and applies input. It runs at Ebiten's
// fixed update rate, so ticks and keys never interleave.
func (w *Window) Update() error {
	if w.ctx.Err() != nil || ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	select {
	case <-w.ticker.C():
		w.apply(w.game.Step())
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		w.apply(w.game.Apply(core.ActionPause))
	}
	for _, a := range pressedActions() {
		w.apply(w.game.Apply(a))
	}
	return nil
}

// pressedActions returns the movement actions triggered this frame.
func pressedActions() []core.Action {
	var actions []core.Action
	if repeating(ebiten.KeyLeft) || repeating(ebiten.KeyA) {
		actions = append(actions, core.ActionLeft)
	}
	if repeating(ebiten.KeyRight) || repeating(ebiten.KeyD) {
		actions = append(actions, core.ActionRight)
	}
	if repeating(ebiten.KeyDown) || repeating(ebiten.KeyS) {
		actions = append(actions, core.ActionDown)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) || inpututil.IsKeyJustPressed(ebiten.KeyX) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyW) {
		actions = append(actions, core.ActionRotate)
	}
	return actions
}

// repeating reports a fresh press, or a held key at the repeat rate.
func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0)
}

// apply keeps the timer in step with the game and raises the banner.
func (w *Window) apply(res core.StepResult) {
	w.state = res.State
	if res.State.Interval != w.ticker.Interval() {
		w.ticker.Reset(res.State.Interval)
	}
	if res.GameOver {
		w.bannerScore = res.FinalScore
		w.bannerUntil = w.now().Add(bannerDuration)
	}
}

// Draw paints the field, the active piece and the panel.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	field := w.game.Field()
	for y := range blockfall.Rows {
		for x := range blockfall.Cols {
			px, py := cellOrigin(x, y)
			if field[y][x] == blockfall.CellFilled {
				drawBlock(screen, px, py, lockedColor)
				continue
			}
			vector.StrokeRect(screen, px, py, CellSize, CellSize, 1, gridColor, false)
		}
	}

	if w.game.Phase() == blockfall.PhaseFalling {
		piece := w.game.Piece()
		c := pixelColor(piece.Kind.Color())
		for _, cell := range piece.Cells() {
			if cell.Y < 0 {
				continue
			}
			px, py := cellOrigin(cell.X, cell.Y)
			drawBlock(screen, px, py, c)
		}
	}

	w.drawPanel(screen)

	if w.state.Paused {
		drawBanner(screen, "PAUSED", "P to resume")
	} else if w.now().Before(w.bannerUntil) {
		drawBanner(screen, "GAME OVER", fmt.Sprintf("Score: %d", w.bannerScore))
	}
}

// cellOrigin returns the top-left pixel of a playfield cell.
func cellOrigin(x, y int) (float32, float32) {
	return float32(x * CellSize), float32(y * CellSize)
}

func drawBlock(screen *ebiten.Image, px, py float32, c color.RGBA) {
	vector.DrawFilledRect(screen, px, py, CellSize, CellSize, c, false)
	vector.StrokeRect(screen, px, py, CellSize, CellSize, 1, backgroundColor, false)
}

func (w *Window) drawPanel(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, FieldW, 0, PanelWidth, ScreenH, panelColor, false)

	x := FieldW + 12
	lines := []string{
		w.game.Title(),
		"",
		fmt.Sprintf("Score: %d", w.state.Score),
		fmt.Sprintf("High:  %d", w.state.HighScore),
		fmt.Sprintf("Lines: %d", w.state.Lines),
		fmt.Sprintf("Speed: %dms", w.state.Interval.Milliseconds()),
		"",
		"Arrows  move",
		"Up/X    rotate",
		"P       pause",
		"Q/Esc   quit",
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x, 12+i*16)
	}
}

func drawBanner(screen *ebiten.Image, title, detail string) {
	const bw, bh = FieldW - 40, 60
	bx, by := float32(20), float32((FieldH-bh)/2)
	vector.DrawFilledRect(screen, bx, by, bw, bh, bannerColor, false)
	vector.StrokeRect(screen, bx, by, bw, bh, 2, lockedColor, false)
	ebitenutil.DebugPrintAt(screen, title, int(bx)+12, int(by)+12)
	ebitenutil.DebugPrintAt(screen, detail, int(bx)+12, int(by)+32)
}

// Layout keeps a fixed logical size; Ebiten scales it to the window.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenW, ScreenH
}

// State returns the last observed game state.
func (w *Window) State() core.GameState {
	return w.state
}

// Close stops the drop timer.
func (w *Window) Close() {
	w.ticker.Stop()
	w.cancel()
}

// Run opens the window and plays gameID until it is closed.
func Run(ctx context.Context, gameID string, env registry.Env, store *storage.Store, cfg core.RuntimeConfig) error {
	w, err := NewWindow(ctx, gameID, env, store, cfg)
	if err != nil {
		return err
	}
	defer w.Close()

	ebiten.SetWindowSize(ScreenW, ScreenH)
	ebiten.SetWindowTitle(w.game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	w.ticker.Start(w.ctx)
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("gui: %w", err)
	}
	return nil
}
