package engine

import (
	"math/rand"
	"testing"
)

// tick applies a sequence of inputs and returns the final state and the
// events of the last step.
func tick(e *Engine, s State, inputs ...Input) (State, Events) {
	var ev Events
	for _, in := range inputs {
		s, ev = e.Tick(s, in)
	}
	return s, ev
}

func TestHardDropIPiece(t *testing.T) {
	e := New(NewSequence(KindI))
	s, ev := e.Start(DefaultWidth, DefaultHeight)

	if !ev.Spawned || s.Mode != ModePlaying {
		t.Fatalf("Start: spawned=%v mode=%v", ev.Spawned, s.Mode)
	}
	want := Piece{Kind: KindI, Rotation: 0, Row: 0, Col: 3}
	if s.Piece != want {
		t.Fatalf("spawned piece = %+v, want %+v", s.Piece, want)
	}

	s, ev = e.Tick(s, NewInput(IntentHardDrop))

	if !ev.Locked {
		t.Error("hard drop should lock")
	}
	if ev.ArmClearTimer() {
		t.Error("no rows should be full")
	}
	if s.Mode != ModePlaying {
		t.Errorf("mode = %v, want playing", s.Mode)
	}
	for col := 0; col < DefaultWidth; col++ {
		expected := CellEmpty
		if col >= 3 && col <= 6 {
			expected = 1
		}
		if got := s.Board.At(19, col); got != expected {
			t.Errorf("(19,%d) = %d, want %d", col, got, expected)
		}
	}
	if s.Board.Filled() != 4 {
		t.Errorf("filled = %d, want 4", s.Board.Filled())
	}
	if !ev.Spawned || s.Piece.Row != 0 {
		t.Errorf("next piece should spawn at row 0, got %+v", s.Piece)
	}
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for k := Kind(0); k < KindCount; k++ {
		e := New(NewSequence(k))
		s, _ := e.Start(DefaultWidth, DefaultHeight)
		s = e.MoveRight(s) // away from the spawn column
		s, _ = e.SoftDrop(s)
		s, _ = e.SoftDrop(s)
		start := s.Piece

		for i := 0; i < 4; i++ {
			s = e.Rotate(s)
		}
		if s.Piece != start {
			t.Errorf("%v: after 4 rotations piece = %+v, want %+v", k, s.Piece, start)
		}
	}
}

func TestRotateRejectedAgainstWall(t *testing.T) {
	e := New(NewSequence(KindI))
	s, _ := e.Start(DefaultWidth, DefaultHeight)

	// Stand the I piece up and push it against the left wall.
	s = e.Rotate(s)
	for i := 0; i < DefaultWidth; i++ {
		s = e.MoveLeft(s)
	}
	if s.Piece.Col != -2 {
		t.Fatalf("col = %d, want -2", s.Piece.Col)
	}

	// Rotation 2 occupies the whole third row, which would cross the wall.
	before := s.Piece
	s = e.Rotate(s)
	if s.Piece != before {
		t.Errorf("rotation into the wall should be rejected, got %+v", s.Piece)
	}
}

func TestMovesBlockedByWalls(t *testing.T) {
	e := New(NewSequence(KindO))
	s, _ := e.Start(DefaultWidth, DefaultHeight)

	for i := 0; i < 20; i++ {
		s = e.MoveRight(s)
	}
	if s.Piece.Col != DefaultWidth-2 {
		t.Errorf("O against right wall col = %d, want %d", s.Piece.Col, DefaultWidth-2)
	}
	for i := 0; i < 20; i++ {
		s = e.MoveLeft(s)
	}
	if s.Piece.Col != 0 {
		t.Errorf("O against left wall col = %d, want 0", s.Piece.Col)
	}
}

func TestSoftDropLandsAndSpawns(t *testing.T) {
	e := New(NewSequence(KindO, KindT))
	s, _ := e.Start(4, 4)

	s, ev := e.SoftDrop(s)
	if ev.Locked || s.Piece.Row != 1 {
		t.Fatalf("first drop: locked=%v row=%d", ev.Locked, s.Piece.Row)
	}
	s, ev = e.SoftDrop(s)
	if ev.Locked || s.Piece.Row != 2 {
		t.Fatalf("second drop: locked=%v row=%d", ev.Locked, s.Piece.Row)
	}

	// The piece rests on the floor; the next drop locks it at row 2.
	s, ev = e.SoftDrop(s)
	if !ev.Locked || !ev.Spawned {
		t.Fatalf("third drop: %+v", ev)
	}
	if s.Board.At(2, 1) != 4 || s.Board.At(3, 2) != 4 {
		t.Errorf("O not locked at rows 2-3:\n%s", s.Board)
	}
	if s.Piece.Kind != KindT {
		t.Errorf("next kind = %v, want T", s.Piece.Kind)
	}
}

func TestGravityActsAsSoftDrop(t *testing.T) {
	e := New(NewSequence(KindT))
	s, _ := e.Start(DefaultWidth, DefaultHeight)

	g, _ := e.Tick(s, Input{Signal: SignalGravity})
	d, _ := e.Tick(s, NewInput(IntentSoftDrop))
	if g.Piece != d.Piece {
		t.Errorf("gravity piece %+v != soft drop piece %+v", g.Piece, d.Piece)
	}

	// Soft drop and gravity in one tick still descend a single row.
	both, _ := e.Tick(s, NewInput(IntentSoftDrop).WithSignal(SignalGravity))
	if both.Piece.Row != 1 {
		t.Errorf("row = %d, want 1", both.Piece.Row)
	}
}

func TestTickOrder(t *testing.T) {
	e := New(NewSequence(KindI))
	s, _ := e.Start(DefaultWidth, DefaultHeight)

	s, _ = e.Tick(s, NewInput(IntentRotateCW, IntentMoveRight, IntentSoftDrop))
	want := Piece{Kind: KindI, Rotation: 1, Row: 1, Col: 4}
	if s.Piece != want {
		t.Errorf("piece = %+v, want %+v", s.Piece, want)
	}

	// Opposite horizontal intents: right is applied.
	s, _ = e.Tick(s, NewInput(IntentMoveLeft, IntentMoveRight))
	if s.Piece.Col != 5 {
		t.Errorf("col = %d, want 5", s.Piece.Col)
	}

	// Hard drop wins over soft drop.
	_, ev := e.Tick(s, NewInput(IntentSoftDrop, IntentHardDrop))
	if !ev.Locked {
		t.Error("hard drop should lock in the same tick")
	}
}

func TestLineClearScenario(t *testing.T) {
	rows := make([][]Cell, DefaultHeight)
	for r := range rows {
		rows[r] = make([]Cell, DefaultWidth)
	}
	for col := 0; col < 8; col++ {
		rows[19][col] = 1
	}
	board := BoardFromRows(rows)

	e := New(NewSequence(KindO, KindT))
	s, ev := e.Spawn(board)
	if !ev.Spawned || s.Piece.Col != 4 {
		t.Fatalf("O spawn: %+v %+v", ev, s.Piece)
	}

	right := NewInput(IntentMoveRight)
	s, _ = tick(e, s, right, right, right, right)
	if s.Piece.Col != 8 {
		t.Fatalf("col = %d, want 8", s.Piece.Col)
	}

	s, ev = e.Tick(s, NewInput(IntentHardDrop))
	if s.Mode != ModeRowsPendingClear {
		t.Fatalf("mode = %v, want rows_pending_clear", s.Mode)
	}
	if len(s.Pending) != 1 || s.Pending[0] != 19 {
		t.Errorf("pending = %v, want [19]", s.Pending)
	}
	if !ev.ArmClearTimer() || ev.Spawned {
		t.Errorf("events = %+v, want armed timer and deferred spawn", ev)
	}
	for col := 0; col < DefaultWidth; col++ {
		if s.Board.At(19, col) != CellHighlight {
			t.Fatalf("row 19 not highlighted:\n%s", s.Board)
		}
	}
	if s.Board.At(18, 8) != 4 || s.Board.At(18, 9) != 4 {
		t.Errorf("upper half of O missing:\n%s", s.Board)
	}

	// Movement and gravity are frozen while rows are pending.
	frozen, ev := tick(e, s, NewInput(IntentMoveLeft, IntentRotateCW), Input{Signal: SignalGravity})
	if !frozen.Board.Equal(s.Board) || frozen.Mode != ModeRowsPendingClear || ev.Locked {
		t.Error("pending-clear state should ignore intents")
	}

	s, ev = e.Tick(s, NewInput(IntentHardDrop).WithSignal(SignalClearRows))
	if s.Mode != ModePlaying {
		t.Fatalf("mode after clear = %v, want playing", s.Mode)
	}
	if ev.Cleared != 1 || !ev.Spawned || ev.Locked {
		t.Errorf("clear events = %+v", ev)
	}
	if len(s.Pending) != 0 {
		t.Errorf("pending = %v, want empty", s.Pending)
	}
	for col := 0; col < DefaultWidth; col++ {
		if s.Board.At(0, col) != CellEmpty {
			t.Errorf("row 0 col %d = %d, want empty", col, s.Board.At(0, col))
		}
		expected := CellEmpty
		if col >= 8 {
			expected = 4 // the O's upper half shifted down
		}
		if s.Board.At(19, col) != expected {
			t.Errorf("(19,%d) = %d, want %d", col, s.Board.At(19, col), expected)
		}
	}
	if s.Board.Filled() != 2 {
		t.Errorf("filled = %d, want 2", s.Board.Filled())
	}
	if s.Piece.Kind != KindT || s.Piece.Row != 0 {
		t.Errorf("spawn after clear = %+v", s.Piece)
	}
}

func TestMultiRowClear(t *testing.T) {
	rows := make([][]Cell, DefaultHeight)
	for r := range rows {
		rows[r] = make([]Cell, DefaultWidth)
	}
	for col := 0; col < DefaultWidth-1; col++ {
		rows[18][col] = 2
		rows[19][col] = 3
	}
	rows[17][0] = 5
	board := BoardFromRows(rows)

	e := New(NewSequence(KindI))
	s, _ := e.Spawn(board)

	right := NewInput(IntentMoveRight)
	s, _ = tick(e, s, NewInput(IntentRotateCW), right, right, right, right)
	if s.Piece.Col != 7 || s.Piece.Rotation != 1 {
		t.Fatalf("piece = %+v, want vertical at col 7", s.Piece)
	}

	s, _ = e.Tick(s, NewInput(IntentHardDrop))
	if s.Mode != ModeRowsPendingClear || len(s.Pending) != 2 || s.Pending[0] != 18 || s.Pending[1] != 19 {
		t.Fatalf("mode=%v pending=%v, want rows 18 and 19", s.Mode, s.Pending)
	}

	before := s.Board.RemoveRows(nil).Filled()
	s, ev := e.Tick(s, Input{Signal: SignalClearRows})
	if ev.Cleared != 2 {
		t.Errorf("cleared = %d, want 2", ev.Cleared)
	}
	if before-s.Board.Filled() != 2*DefaultWidth {
		t.Errorf("removed %d cells, want %d", before-s.Board.Filled(), 2*DefaultWidth)
	}

	// Everything above the cleared rows moved down by two.
	if s.Board.At(19, 9) != 1 || s.Board.At(18, 9) != 1 || s.Board.At(19, 0) != 5 {
		t.Errorf("rows did not collapse correctly:\n%s", s.Board)
	}
	for r := 0; r < 2; r++ {
		for col := 0; col < DefaultWidth; col++ {
			if s.Board.At(r, col) != CellEmpty {
				t.Errorf("row %d should be empty:\n%s", r, s.Board)
			}
		}
	}
}

func TestSpawnBlockedIsGameOver(t *testing.T) {
	rows := make([][]Cell, DefaultHeight)
	for r := range rows {
		rows[r] = make([]Cell, DefaultWidth)
	}
	for col := 0; col < 7; col++ {
		rows[0][col] = 7
		rows[1][col] = 7
	}
	board := BoardFromRows(rows)

	for k := Kind(0); k < KindCount; k++ {
		e := New(NewSequence(k))
		s, ev := e.Spawn(board)
		if s.Mode != ModeGameOver || !ev.GameOver || ev.Spawned {
			t.Fatalf("%v: mode=%v events=%+v, want game over", k, s.Mode, ev)
		}
		if s.Board.Filled() < board.Filled() {
			t.Errorf("%v: terminal board lost cells", k)
		}

		after, ev := tick(e, s,
			NewInput(IntentRotateCW),
			NewInput(IntentMoveLeft),
			NewInput(IntentHardDrop),
			Input{Signal: SignalGravity},
			Input{Signal: SignalClearRows},
		)
		if !after.Board.Equal(s.Board) || after.Piece != s.Piece || after.Mode != ModeGameOver {
			t.Errorf("%v: game over state changed", k)
		}
		if ev.Locked || ev.Spawned || ev.Cleared != 0 || ev.ArmClearTimer() {
			t.Errorf("%v: unexpected events %+v", k, ev)
		}
	}
}

func TestGameOverAfterStacking(t *testing.T) {
	e := New(NewSequence(KindO))
	s, _ := e.Start(DefaultWidth, 6)

	hard := NewInput(IntentHardDrop)
	var ev Events
	for i := 0; i < 3; i++ {
		s, ev = e.Tick(s, hard)
	}
	// Three O pieces fill rows 0-5 at cols 4-5; the fourth spawn is blocked.
	if s.Mode != ModeGameOver || !ev.GameOver {
		t.Fatalf("mode = %v, want game over\n%s", s.Mode, s.Board)
	}
}

func TestStaleClearSignalIsDropped(t *testing.T) {
	e := New(NewSequence(KindT))
	s, _ := e.Start(DefaultWidth, DefaultHeight)

	s, ev := e.Tick(s, NewInput(IntentSoftDrop).WithSignal(SignalClearRows))
	if s.Piece.Row != 1 || ev.Cleared != 0 {
		t.Errorf("stale clear should not block the drop: row=%d events=%+v", s.Piece.Row, ev)
	}
}

func TestStateIsNotMutated(t *testing.T) {
	e := New(NewSequence(KindI))
	s, _ := e.Start(DefaultWidth, DefaultHeight)
	original := s

	next, _ := e.HardDrop(s)
	if original.Board.Filled() != 0 {
		t.Error("HardDrop modified the input board")
	}
	if original.Piece.Row != 0 {
		t.Error("HardDrop modified the input piece")
	}
	if next.Board.Filled() != 4 {
		t.Errorf("next board filled = %d, want 4", next.Board.Filled())
	}
}

func TestSnapshot(t *testing.T) {
	e := New(NewSequence(KindO))
	s, _ := e.Start(4, 4)

	snap := s.Snapshot()
	if snap.Width != 4 || snap.Height != 4 || snap.Mode != ModePlaying {
		t.Fatalf("snapshot header = %dx%d %v", snap.Width, snap.Height, snap.Mode)
	}
	if len(snap.Active) != 4 {
		t.Errorf("active cells = %d, want 4", len(snap.Active))
	}
	for _, c := range snap.Active {
		if c.Value != KindO.Color() {
			t.Errorf("active cell value = %d, want %d", c.Value, KindO.Color())
		}
	}

	snap.Cells[0][0] = 9
	if s.Board.At(0, 0) != CellEmpty {
		t.Error("snapshot cells must be a copy")
	}

	// Fill the bottom rows so the O completes them.
	board := BoardFromRows([][]Cell{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{1, 1, 0, 0},
		{1, 1, 0, 0},
	})
	s, _ = e.Spawn(board)
	s = e.MoveRight(s)
	s, _ = e.HardDrop(s)
	if s.Mode != ModeRowsPendingClear {
		t.Fatalf("mode = %v, want rows_pending_clear\n%s", s.Mode, s.Board)
	}
	snap = s.Snapshot()
	if len(snap.Active) != 0 {
		t.Error("active piece should be hidden while rows are pending")
	}
	if len(snap.Pending) != 2 {
		t.Errorf("pending = %v, want 2 rows", snap.Pending)
	}
}

func TestEngineDeterminism(t *testing.T) {
	run := func() State {
		e := New(rand.New(rand.NewSource(12345)))
		s, _ := e.Start(DefaultWidth, DefaultHeight)
		script := rand.New(rand.NewSource(99))
		intents := []Intent{IntentRotateCW, IntentMoveLeft, IntentMoveRight, IntentSoftDrop, IntentHardDrop}

		for i := 0; i < 500; i++ {
			in := NewInput(intents[script.Intn(len(intents))])
			if i%5 == 0 {
				in = in.WithSignal(SignalGravity)
			}
			if s.Mode == ModeRowsPendingClear {
				in = Input{Signal: SignalClearRows}
			}
			s, _ = e.Tick(s, in)
		}
		return s
	}

	a, b := run(), run()
	if !a.Board.Equal(b.Board) || a.Piece != b.Piece || a.Mode != b.Mode {
		t.Errorf("runs diverged:\n%s\n---\n%s", a.Board, b.Board)
	}
}

func TestCellValuesStayInRange(t *testing.T) {
	e := New(rand.New(rand.NewSource(7)))
	s, _ := e.Start(DefaultWidth, DefaultHeight)
	script := rand.New(rand.NewSource(8))

	for i := 0; i < 2000 && s.Mode != ModeGameOver; i++ {
		in := NewInput(Intent(script.Intn(5)))
		if s.Mode == ModeRowsPendingClear {
			in = Input{Signal: SignalClearRows}
		}
		s, _ = e.Tick(s, in)

		for _, row := range s.Board.Rows() {
			for _, v := range row {
				if v > CellHighlight {
					t.Fatalf("cell value %d out of range", v)
				}
			}
		}
		if (s.Mode == ModeRowsPendingClear) != (len(s.Pending) > 0) {
			t.Fatalf("mode %v with pending %v", s.Mode, s.Pending)
		}
	}
}

func TestSequenceCycles(t *testing.T) {
	seq := NewSequence(KindS, KindZ)
	got := []int{seq.Intn(KindCount), seq.Intn(KindCount), seq.Intn(KindCount)}
	if got[0] != int(KindS) || got[1] != int(KindZ) || got[2] != int(KindS) {
		t.Errorf("sequence = %v", got)
	}
	mustPanic(t, "empty sequence", func() { NewSequence() })
	mustPanic(t, "nil source", func() { New(nil) })
}
