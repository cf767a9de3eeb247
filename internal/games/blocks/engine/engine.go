package engine

// RandomSource picks piece kinds. *math/rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// Sequence is a RandomSource that replays a fixed list of kinds, cycling
// when it runs out. Useful for deterministic tests and scripted sessions.
type Sequence struct {
	kinds []Kind
	next  int
}

// NewSequence creates a sequence source. Panics if kinds is empty.
func NewSequence(kinds ...Kind) *Sequence {
	if len(kinds) == 0 {
		panic("engine: empty piece sequence")
	}
	return &Sequence{kinds: append([]Kind(nil), kinds...)}
}

// Intn returns the next kind in the sequence, reduced modulo n.
func (s *Sequence) Intn(n int) int {
	k := s.kinds[s.next%len(s.kinds)]
	s.next++
	return int(k) % n
}

// Engine applies intents and timer signals to session snapshots.
// It keeps no snapshot of its own; the only state it carries is the
// random source used to pick spawned kinds.
type Engine struct {
	rng RandomSource
}

// New creates an engine drawing piece kinds from rng.
func New(rng RandomSource) *Engine {
	if rng == nil {
		panic("engine: nil random source")
	}
	return &Engine{rng: rng}
}

// Start returns the first snapshot of a session on an empty board.
func (e *Engine) Start(width, height int) (State, Events) {
	return e.Spawn(NewBoard(width, height))
}

// nextKind draws a uniformly random kind.
func (e *Engine) nextKind() Kind {
	k := e.rng.Intn(KindCount)
	if k < 0 || k >= KindCount {
		panic("engine: random source returned kind out of range")
	}
	return Kind(k)
}

// Spawn puts a new piece on the board. If the spawn position is already
// blocked, the piece's footprint is locked in place and the session ends.
func (e *Engine) Spawn(b Board) (State, Events) {
	p := SpawnPiece(e.nextKind(), b.Width())
	if !Valid(b, p) {
		return State{Board: b.Lock(p), Piece: p, Mode: ModeGameOver}, Events{GameOver: true}
	}
	return State{Board: b, Piece: p, Mode: ModePlaying}, Events{Spawned: true}
}

// try replaces the active piece with candidate when it fits.
func try(s State, candidate Piece) State {
	if Valid(s.Board, candidate) {
		s.Piece = candidate
	}
	return s
}

// Rotate turns the active piece clockwise if the result fits.
func (e *Engine) Rotate(s State) State {
	if s.Mode != ModePlaying {
		return s
	}
	return try(s, s.Piece.Rotated())
}

// MoveLeft shifts the active piece one column left if the result fits.
func (e *Engine) MoveLeft(s State) State {
	if s.Mode != ModePlaying {
		return s
	}
	return try(s, s.Piece.Moved(0, -1))
}

// MoveRight shifts the active piece one column right if the result fits.
func (e *Engine) MoveRight(s State) State {
	if s.Mode != ModePlaying {
		return s
	}
	return try(s, s.Piece.Moved(0, 1))
}

// SoftDrop moves the piece down one row. When it cannot move, the piece
// lands: it is locked where it is and line detection and spawning follow.
func (e *Engine) SoftDrop(s State) (State, Events) {
	if s.Mode != ModePlaying {
		return s, Events{}
	}
	down := s.Piece.Moved(1, 0)
	if Valid(s.Board, down) {
		s.Piece = down
		return s, Events{}
	}
	return e.land(s)
}

// HardDrop moves the piece down as far as it fits and lands it.
func (e *Engine) HardDrop(s State) (State, Events) {
	if s.Mode != ModePlaying {
		return s, Events{}
	}
	for {
		down := s.Piece.Moved(1, 0)
		if !Valid(s.Board, down) {
			break
		}
		s.Piece = down
	}
	return e.land(s)
}

// land locks the active piece and either enters the pending-clear phase
// or spawns the next piece.
func (e *Engine) land(s State) (State, Events) {
	board := s.Board.Lock(s.Piece)
	ev := Events{Locked: true}

	if rows := board.FullRows(); len(rows) > 0 {
		ev.FullRows = rows
		return State{
			Board:   board.Highlight(rows),
			Piece:   s.Piece,
			Mode:    ModeRowsPendingClear,
			Pending: rows,
		}, ev
	}

	next, spawned := e.Spawn(board)
	return next, ev.merge(spawned)
}

// ClearRows completes the pending-clear phase: the marked rows are removed,
// the rows above collapse downward and a new piece spawns.
// It is a no-op outside ModeRowsPendingClear.
func (e *Engine) ClearRows(s State) (State, Events) {
	if s.Mode != ModeRowsPendingClear {
		return s, Events{}
	}
	next, ev := e.Spawn(s.Board.RemoveRows(s.Pending))
	ev.Cleared = len(s.Pending)
	return next, ev
}

// Tick advances the session by one host tick.
//
// Order: a pending clear signal wins over everything else; outside
// ModePlaying intents are ignored; otherwise rotation, one horizontal move
// and one vertical drop are applied in that order. A clear signal that
// arrives while no rows are pending is dropped.
func (e *Engine) Tick(s State, in Input) (State, Events) {
	if in.Signal == SignalClearRows && s.Mode == ModeRowsPendingClear {
		return e.ClearRows(s)
	}
	if s.Mode != ModePlaying {
		return s, Events{}
	}

	if in.Has(IntentRotateCW) {
		s = e.Rotate(s)
	}

	switch {
	case in.Has(IntentMoveRight):
		s = e.MoveRight(s)
	case in.Has(IntentMoveLeft):
		s = e.MoveLeft(s)
	}

	switch {
	case in.Has(IntentHardDrop):
		return e.HardDrop(s)
	case in.Has(IntentSoftDrop), in.Signal == SignalGravity:
		return e.SoftDrop(s)
	}
	return s, Events{}
}
