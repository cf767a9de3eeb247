// Package blocks adapts the falling-block engine to the registry game contract.
// It owns the session snapshot between ticks, turns platform actions into
// engine intents, drives the gravity and clear timers and keeps per-session
// counters.
package blocks

import (
	"math/rand"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

// Registered game IDs.
const (
	IDClassic = "blocks"
	IDWide    = "blocks_wide"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset = config.DifficultyFixed

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back to fixed.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = config.DifficultyFixed
	}
	difficultyPreset = p
}

// Game implements registry.Game for one board variant.
type Game struct {
	wide bool

	cfg      config.BlocksConfig
	override *config.BlocksConfig
	colors   [9]core.Color
	pieces   []engine.Kind

	rng    *rand.Rand
	eng    *engine.Engine
	state  engine.State
	timers Timers

	runtime core.RuntimeConfig
	tick    uint64
	ticks   int
	lines   int
	locked  int

	paused   bool
	tooSmall bool
}

// New creates the classic 10-wide variant.
func New() *Game {
	return &Game{}
}

// NewWide creates the wide-board variant.
func NewWide() *Game {
	return &Game{wide: true}
}

// NewWithConfig creates a game that uses cfg instead of loading from disk.
func NewWithConfig(wide bool, cfg config.BlocksConfig) *Game {
	return &Game{wide: wide, override: &cfg}
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDWide, func() registry.Game {
		return NewWide()
	})
}

// UsePieces replaces the random spawn order with a repeating sequence.
// It takes effect on the next Reset.
func (g *Game) UsePieces(kinds ...engine.Kind) {
	g.pieces = append([]engine.Kind(nil), kinds...)
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.wide {
		return IDWide
	}
	return IDClassic
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.wide {
		return "Blocks (Wide)"
	}
	return "Blocks"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig()

	colors, err := g.cfg.Palette.Colors()
	if err != nil {
		colors, _ = config.DefaultBlocksConfig().Palette.Colors()
	}
	g.colors = colors

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	var src engine.RandomSource = g.rng
	if len(g.pieces) > 0 {
		src = engine.NewSequence(g.pieces...)
	}
	g.eng = engine.New(src)
	g.timers = NewTimers(g.cfg.Timing.GravityMS, g.cfg.Timing.ClearDelayMS, runtime.TickRate)

	board := g.boardConfig()
	g.state, _ = g.eng.Start(board.Width, board.Height)

	g.tick = 0
	g.ticks = 0
	g.lines = 0
	g.locked = 0
	g.paused = false

	w, h := g.requiredSize()
	g.tooSmall = runtime.ScreenW < w || runtime.ScreenH < h
}

// loadConfig resolves the effective configuration, falling back to defaults
// when the file is missing or invalid.
func (g *Game) loadConfig() config.BlocksConfig {
	var cfg config.BlocksConfig
	if g.override != nil {
		cfg = *g.override
	} else {
		loaded, err := config.LoadBlocks(configPath)
		if err != nil {
			loaded = config.DefaultBlocksConfig()
		}
		cfg = loaded
	}
	config.ApplyBlocksPreset(&cfg, difficultyPreset)
	return cfg
}

func (g *Game) boardConfig() config.BoardConfig {
	if g.wide {
		return g.cfg.WideBoard
	}
	return g.cfg.Board
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	// Handle restart
	if in.Has(core.ActionRestart) && g.state.Mode == engine.ModeGameOver {
		runtime := g.runtime
		runtime.Seed = g.rng.Int63()
		g.Reset(runtime)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && g.state.Mode != engine.ModeGameOver {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall || g.state.Mode == engine.ModeGameOver {
		return core.StepResult{State: g.State()}
	}

	g.ticks++
	next, ev := g.eng.Tick(g.state, intentsFor(in).WithSignal(g.timers.Next()))
	g.state = next
	if ev.Locked {
		g.locked++
	}
	g.lines += ev.Cleared
	if ev.ArmClearTimer() {
		g.timers.ArmClear()
	}

	return core.StepResult{State: g.State()}
}

// intentsFor maps platform actions onto engine intents.
func intentsFor(in core.InputFrame) engine.Input {
	var out engine.Input
	for action, intent := range actionIntents {
		if in.Has(action) {
			out = out.With(intent)
		}
	}
	return out
}

var actionIntents = map[core.Action]engine.Intent{
	core.ActionRotate:   engine.IntentRotateCW,
	core.ActionLeft:     engine.IntentMoveLeft,
	core.ActionRight:    engine.IntentMoveRight,
	core.ActionSoftDrop: engine.IntentSoftDrop,
	core.ActionHardDrop: engine.IntentHardDrop,
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Lines:    g.lines,
		Pieces:   g.locked,
		Ticks:    g.ticks,
		GameOver: g.state.Mode == engine.ModeGameOver,
		Paused:   g.paused,
	}
}

// Board returns the locked grid.
func (g *Game) Board() engine.Board {
	return g.state.Board
}

// Mode returns the engine mode.
func (g *Game) Mode() engine.Mode {
	return g.state.Mode
}

// Resize adapts to a new screen size without restarting the session.
func (g *Game) Resize(screenW, screenH int) {
	g.runtime.ScreenW = screenW
	g.runtime.ScreenH = screenH
	w, h := g.requiredSize()
	g.tooSmall = screenW < w || screenH < h
}
