package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/scheduler"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// bannerDuration is how long the game-over banner stays up.
const bannerDuration = 2 * time.Second

// GameModel is the Bubble Tea model for one running game.
// The drop timer lives in a scheduler.Repeater; keys apply between ticks.
type GameModel struct {
	game   registry.Game
	screen *core.Screen
	config core.RuntimeConfig
	keys   *KeyMapper
	logger *log.Logger

	ticker *scheduler.Repeater
	ctx    context.Context
	cancel context.CancelFunc

	state       core.GameState
	bannerScore int
	bannerSeq   int
	showBanner  bool

	standalone bool // back/quit end the program rather than return to a menu
	quitting   bool
	backToMenu bool
}

// NewGameModel creates the game gameID and its drop timer. The game is
// reset immediately so the timer starts at the game's own interval.
// Cancelling ctx stops the timer.
func NewGameModel(ctx context.Context, gameID string, env registry.Env, store *storage.Store, cfg core.RuntimeConfig) (GameModel, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if env.Logger == nil {
		env.Logger = registry.DefaultEnv().Logger
	}
	env.Notifier = &storage.ScoreRecorder{GameID: gameID, Store: store, Logger: env.Logger}

	game, err := registry.Create(gameID, env)
	if err != nil {
		return GameModel{}, err
	}
	game.Reset(cfg)

	ctx, cancel := context.WithCancel(ctx)
	state := game.State()

	return GameModel{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		keys:   NewKeyMapper(),
		logger: env.Logger,
		ticker: scheduler.New(state.Interval),
		ctx:    ctx,
		cancel: cancel,
		state:  state,
	}, nil
}

// Init starts the drop timer.
func (m GameModel) Init() tea.Cmd {
	m.ticker.Start(m.ctx)
	return waitForTick(m.ctx, m.ticker.C())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if m.quitting || m.backToMenu {
			return m, nil
		}
		cmd := m.apply(m.game.Step())
		return m, tea.Batch(cmd, waitForTick(m.ctx, m.ticker.C()))

	case bannerExpiredMsg:
		if msg.seq == m.bannerSeq {
			m.showBanner = false
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.stop()
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionBack:
		if !m.state.Paused {
			return m, nil
		}
		m.backToMenu = true
		m.stop()
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, m.apply(m.game.Apply(action))
}

// apply records a step result: it keeps the drop timer in sync with the
// game's interval and raises the banner when a game ended.
func (m *GameModel) apply(res core.StepResult) tea.Cmd {
	m.state = res.State

	if res.State.Interval != m.ticker.Interval() {
		m.ticker.Reset(res.State.Interval)
	}

	if !res.GameOver {
		return nil
	}
	m.bannerSeq++
	m.bannerScore = res.FinalScore
	m.showBanner = true
	return expireBanner(m.bannerSeq, bannerDuration)
}

// stop cancels the drop timer.
func (m *GameModel) stop() {
	m.ticker.Stop()
	m.cancel()
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.render()

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".blockfall", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Debug("screenshot saved", "path", path)
}

// render draws the game and the banner into the screen buffer.
func (m *GameModel) render() {
	m.game.Render(m.screen)
	if m.showBanner {
		drawBanner(m.screen, m.bannerScore)
	}
}

// drawBanner overlays the final score of the game that just ended.
func drawBanner(s *core.Screen, score int) {
	msg := fmt.Sprintf("Score: %d", score)
	w := max(len(msg)+4, 15)
	box := core.NewRect(0, 0, s.Width(), s.Height()).Centered(w, 4)

	s.DrawRect(box, ' ')
	s.DrawBox(box)
	s.DrawTextColor(box.X+(w-9)/2, box.Y+1, "GAME OVER", core.ColorRed)
	s.DrawText(box.X+(w-len(msg))/2, box.Y+2, msg)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.render()
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays gameID in the terminal until the player quits.
func Run(ctx context.Context, gameID string, env registry.Env, store *storage.Store, cfg core.RuntimeConfig) error {
	model, err := NewGameModel(ctx, gameID, env, store, cfg)
	if err != nil {
		return err
	}
	model.standalone = true
	defer model.stop()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err = p.Run()
	return err
}
