package engine

// Mode is the engine-level phase of a session.
type Mode string

const (
	ModePlaying          Mode = "playing"
	ModeRowsPendingClear Mode = "rows_pending_clear"
	ModeGameOver         Mode = "game_over"
)

// State is an immutable snapshot of a session: the locked grid, the active
// piece and the current mode. Pending holds the rows awaiting the clear timer
// and is non-empty exactly when Mode is ModeRowsPendingClear.
type State struct {
	Board   Board
	Piece   Piece
	Mode    Mode
	Pending []int
}

// Events describes what happened during one engine step so the host can react
// (arm the clear timer, update counters, stop processing input).
type Events struct {
	Locked   bool  // the active piece was merged into the board
	FullRows []int // rows that became full; the host must arm the clear timer
	Cleared  int   // rows removed by a clear transition
	Spawned  bool  // a new live piece entered play
	GameOver bool  // the session ended during this step
}

// ArmClearTimer reports whether the host must schedule SignalClearRows.
func (e Events) ArmClearTimer() bool {
	return len(e.FullRows) > 0
}

// merge folds the events of a later sub-step into e.
func (e Events) merge(o Events) Events {
	e.Locked = e.Locked || o.Locked
	if len(o.FullRows) > 0 {
		e.FullRows = o.FullRows
	}
	e.Cleared += o.Cleared
	e.Spawned = e.Spawned || o.Spawned
	e.GameOver = e.GameOver || o.GameOver
	return e
}

// ActiveCell is one occupied cell of the active piece in board coordinates.
type ActiveCell struct {
	Point
	Value Cell
}

// Snapshot is the read-only view handed to renderers.
type Snapshot struct {
	Width   int
	Height  int
	Cells   [][]Cell
	Active  []ActiveCell // empty unless Mode is ModePlaying
	Mode    Mode
	Pending []int
}

// Snapshot copies the state into a renderer-friendly view.
func (s State) Snapshot() Snapshot {
	snap := Snapshot{
		Width:  s.Board.Width(),
		Height: s.Board.Height(),
		Cells:  s.Board.Rows(),
		Mode:   s.Mode,
	}
	if len(s.Pending) > 0 {
		snap.Pending = append([]int(nil), s.Pending...)
	}
	if s.Mode == ModePlaying {
		color := s.Piece.Kind.Color()
		for _, pt := range s.Piece.Cells() {
			snap.Active = append(snap.Active, ActiveCell{Point: pt, Value: color})
		}
	}
	return snap
}
