package blocks

import "github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying          GameStateType = "playing"
	StateRowsPendingClear GameStateType = "rows_pending_clear"
	StateGameOver         GameStateType = "game_over"
	StatePaused           GameStateType = "paused"
	StatePausedSmall      GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick   uint64
	Ticks  int
	Lines  int
	Pieces int
	State  GameStateType
	Board  engine.Snapshot
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.state.Mode == engine.ModeGameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.state.Mode == engine.ModeRowsPendingClear:
		state = StateRowsPendingClear
	}

	return Snapshot{
		Tick:   g.tick,
		Ticks:  g.ticks,
		Lines:  g.lines,
		Pieces: g.locked,
		State:  state,
		Board:  g.state.Snapshot(),
	}
}
