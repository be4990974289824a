package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// storeTimeout bounds every score store call made from the UI loop.
const storeTimeout = 5 * time.Second

// GameOptions carries the platform services a GameModel uses.
type GameOptions struct {
	Store       storage.ScoreStore // Nil disables saving
	Logger      *log.Logger        // Nil discards
	HoldRelease time.Duration      // Synthesized key-up delay
	Player      string             // Reported in log lines
	TopN        int                // Table size the store keeps
}

func (o GameOptions) topN() int {
	if o.TopN > 0 {
		return o.TopN
	}
	return storage.DefaultTopN
}

func (o GameOptions) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// resizer is implemented by games that adapt to a new screen size
// without restarting.
type resizer interface {
	Resize(w, h int)
}

// GameModel runs one game: ticks, input, name entry on game over and
// score saving.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	opts       GameOptions
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       *KeyMapper
	held       *HeldKeys
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time

	entry  *NameEntry // Non-nil while collecting the player's name
	saved  bool       // Game over has been handled
	scores []storage.Entry

	quitOnBack bool // Standalone play exits instead of returning to a menu
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for the given game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		logger:     opts.logger(),
		config:     cfg,
		keys:       NewKeyMapper(),
		held:       NewHeldKeys(opts.HoldRelease),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("game started", "game", m.game.ID(), "player", m.opts.Player, "level", m.game.State().Level)
	return tickCmd(m.config)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.entry != nil {
			return m.updateNameEntry(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		if r, ok := m.game.(resizer); ok {
			r.Resize(msg.Width, msg.Height)
		}
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	if m.entry != nil {
		return m.updateNameEntry(msg)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg)

	switch action {
	case core.ActionNone:
		return m, nil

	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			return m.leave()
		}
		return m, nil

	case core.ActionRestart:
		if m.gameState.GameOver && m.saved {
			m.restart()
		}
		return m, nil

	case core.ActionPause:
		// Esc after game over returns to the menu.
		if m.gameState.GameOver && m.saved && msg.Type == tea.KeyEsc {
			return m.leave()
		}
	}

	m.held.Press(action, time.Now())
	m.inputFrame.Set(action)
	return m, nil
}

func (m GameModel) leave() (tea.Model, tea.Cmd) {
	m.backToMenu = true
	if m.quitOnBack {
		return m, tea.Quit
	}
	return m, nil
}

func (m *GameModel) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.saved = false
	m.scores = nil
	m.held.Reset()
	m.inputFrame.Clear()
	m.lastTick = time.Time{}
	m.logger.Info("game restarted", "game", m.game.ID(), "player", m.opts.Player)
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.gameState.GameOver {
		m.lastTick = now
		m.inputFrame.Clear()
		return m, tickCmd(m.config)
	}

	m.held.Expire(now)
	m.held.Apply(&m.inputFrame)
	m.inputFrame.Delta = frameDelta(m.lastTick, now)
	m.lastTick = now

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if result.Cleared > 0 {
		m.logger.Debug("lines cleared",
			"count", result.Cleared,
			"score", m.gameState.Score,
			"level", m.gameState.Level,
		)
	}

	if m.gameState.GameOver {
		m.onGameOver()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config)
}

func (m *GameModel) onGameOver() {
	m.held.Reset()
	m.logger.Info("game over",
		"player", m.opts.Player,
		"score", m.gameState.Score,
		"lines", m.gameState.Lines,
		"level", m.gameState.Level,
	)
	if m.opts.Store == nil {
		m.saved = true
		return
	}
	entry := NewNameEntry(m.tableRank())
	m.entry = &entry
}

// tableRank returns the place the final score takes in the stored
// table, or 0 when it does not make the cut.
func (m *GameModel) tableRank() int {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	entries, err := m.opts.Store.Load(ctx)
	if err != nil {
		m.logger.Warn("could not load scores", "error", err)
		return 0
	}
	if !storage.Qualifies(entries, m.gameState.Score, m.opts.topN()) {
		return 0
	}
	return storage.Rank(entries, m.gameState.Score)
}

func (m GameModel) updateNameEntry(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Quitting mid-entry still records the score under the default name.
	if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyCtrlC {
		m.saveScore(storage.DefaultName)
		m.entry = nil
		m.saved = true
		m.quitting = true
		return m, tea.Quit
	}

	entry, cmd := m.entry.Update(msg)
	m.entry = &entry
	if !entry.Done() {
		return m, cmd
	}

	if entry.Cancelled() {
		m.logger.Debug("name entry skipped", "player", m.opts.Player)
	}
	m.saveScore(entry.Name())
	m.entry = nil
	m.saved = true
	return m, cmd
}

func (m *GameModel) saveScore(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	scores, err := m.opts.Store.Add(ctx, storage.Entry{
		Name:  name,
		Score: m.gameState.Score,
		Lines: m.gameState.Lines,
		Level: m.gameState.Level,
	})
	if err != nil {
		m.logger.Error("could not save score", "error", err)
		return
	}
	m.scores = scores
	m.logger.Info("score saved", "name", name, "score", m.gameState.Score)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	if m.entry != nil {
		return lipgloss.Place(m.screen.Width(), m.screen.Height(),
			lipgloss.Center, lipgloss.Center, m.entry.View())
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Scores returns the table returned by the last save, if any.
func (m GameModel) Scores() []storage.Entry {
	return m.scores
}

// Run plays a single game and returns when the player quits or leaves.
func Run(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) error {
	model := NewGameModel(game, cfg, opts)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
