package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// helpRows is the number of screen rows reserved for the key help line.
const helpRows = 1

// GameOptions configures a GameModel.
type GameOptions struct {
	Store      *storage.Store // nil disables session persistence
	Logger     *log.Logger    // nil discards log output
	Player     string         // recorded with each saved session
	Standalone bool           // Back quits the program instead of returning to a menu
}

// GameModel is the Bubble Tea model for running one game.
type GameModel struct {
	game         registry.Game
	screen       *core.Screen
	opts         GameOptions
	config       core.RuntimeConfig
	inputFrame   core.InputFrame
	gameState    core.GameState
	keyMapper    *KeyMapper
	help         help.Model
	quitting     bool
	backToMenu   bool
	sessionSaved bool // Whether the current session has been persisted
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := GameModel{
		game:       game,
		opts:       opts,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       h,
	}
	gc := m.gameConfig()
	m.screen = core.NewScreen(gc.ScreenW, gc.ScreenH)
	return m
}

// gameConfig returns the runtime config handed to the game, leaving room for help.
func (m GameModel) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = core.Max(1, cfg.ScreenH-helpRows)
	return cfg
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	m.opts.Logger.Debug("game started", "game", m.game.ID(), "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys

	if key.Matches(msg, keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.saveSession()
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu only when the board is not live
	if key.Matches(msg, keys.Back) && (m.gameState.GameOver || m.gameState.Paused) {
		m.saveSession()
		m.backToMenu = true
		if m.opts.Standalone {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width

	gc := m.gameConfig()
	m.screen.Resize(gc.ScreenW, gc.ScreenH)

	// Games that can re-layout keep their state; others restart.
	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(gc.ScreenW, gc.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(gc)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	restarting := m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if restarting && !m.gameState.GameOver {
		m.sessionSaved = false
		m.opts.Logger.Debug("game restarted", "game", m.game.ID())
	}

	// Save session on game over (once)
	if m.gameState.GameOver {
		m.saveSession()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveSession persists the current session once. Sessions without a single
// locked piece are not recorded. Storage failures are logged and never stop play.
func (m *GameModel) saveSession() {
	if m.sessionSaved {
		return
	}
	m.sessionSaved = true

	if m.opts.Store == nil || m.gameState.Pieces == 0 {
		return
	}

	best, err := m.opts.Store.BestLines(m.game.ID())
	if err != nil {
		m.opts.Logger.Warn("could not read best lines", "game", m.game.ID(), "error", err)
	}

	id, err := m.opts.Store.SaveSession(storage.SessionRecord{
		GameID: m.game.ID(),
		Player: m.opts.Player,
		Lines:  m.gameState.Lines,
		Pieces: m.gameState.Pieces,
		Ticks:  m.gameState.Ticks,
	})
	if err != nil {
		m.opts.Logger.Error("could not save session", "game", m.game.ID(), "error", err)
		return
	}
	m.opts.Logger.Info("session saved",
		"id", id,
		"game", m.game.ID(),
		"player", m.opts.Player,
		"lines", m.gameState.Lines,
		"pieces", m.gameState.Pieces,
	)
	if m.gameState.Lines > best {
		m.opts.Logger.Info("new best", "game", m.game.ID(), "lines", m.gameState.Lines, "previous", best)
	}
}

// saveScreenshot saves the current screen to ~/.blocks/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.opts.Logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".blocks", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys))
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for one game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) error {
	opts.Standalone = true
	model := NewGameModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
