package engine

// Valid reports whether the piece fits on the board: every occupied cell must
// sit above the floor, between the walls, and on an empty board cell.
//
// There is no ceiling check. A cell with a negative row is treated as
// unoccupied and never indexed; pieces spawn at row 0 and only move down,
// so the case is only reachable through a hand-built Piece.
func Valid(b Board, p Piece) bool {
	shape := ShapeOf(p.Kind)
	for r := 0; r < shape.Size; r++ {
		for c := 0; c < shape.Size; c++ {
			if shape.At(p.Rotation, r, c) == CellEmpty {
				continue
			}
			row, col := p.Row+r, p.Col+c
			if row >= b.height {
				return false
			}
			if col < 0 || col >= b.width {
				return false
			}
			if row >= 0 && b.cells[row*b.width+col] != CellEmpty {
				return false
			}
		}
	}
	return true
}
