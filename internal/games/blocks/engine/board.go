package engine

import "fmt"

// Cell is a board cell value.
type Cell uint8

const (
	// CellEmpty marks an unoccupied cell.
	CellEmpty Cell = 0
	// CellHighlight marks a full row waiting to be cleared.
	CellHighlight Cell = 8
)

// Default board dimensions.
const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// Board is the grid of locked cells. It is a value type: methods that change
// the grid return a new Board and leave the receiver untouched.
type Board struct {
	width  int
	height int
	cells  []Cell // row-major, len = width*height
}

// NewBoard creates an empty board. Panics on non-positive dimensions.
func NewBoard(width, height int) Board {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("engine: invalid board size %dx%d", width, height))
	}
	return Board{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// BoardFromRows builds a board from explicit rows. All rows must share a length.
// Mostly useful for tests and replays.
func BoardFromRows(rows [][]Cell) Board {
	if len(rows) == 0 || len(rows[0]) == 0 {
		panic("engine: empty board rows")
	}
	b := NewBoard(len(rows[0]), len(rows))
	for r, row := range rows {
		if len(row) != b.width {
			panic(fmt.Sprintf("engine: row %d has %d cells, want %d", r, len(row), b.width))
		}
		copy(b.cells[r*b.width:], row)
	}
	return b
}

// Width returns the number of columns.
func (b Board) Width() int { return b.width }

// Height returns the number of rows.
func (b Board) Height() int { return b.height }

// InBounds reports whether (row, col) is on the board.
func (b Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

// At returns the cell value at (row, col). Out-of-bounds reads return CellEmpty.
func (b Board) At(row, col int) Cell {
	if !b.InBounds(row, col) {
		return CellEmpty
	}
	return b.cells[row*b.width+col]
}

// clone returns a board with its own copy of the cells.
func (b Board) clone() Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return Board{width: b.width, height: b.height, cells: cells}
}

// Set returns a copy of the board with (row, col) set to v.
// Out-of-bounds writes are dropped.
func (b Board) Set(row, col int, v Cell) Board {
	nb := b.clone()
	if nb.InBounds(row, col) {
		nb.cells[row*nb.width+col] = v
	}
	return nb
}

// Lock merges the piece's occupied cells into a copy of the board.
// Cells outside the grid (above the ceiling on a blocked spawn) are skipped.
func (b Board) Lock(p Piece) Board {
	nb := b.clone()
	shape := ShapeOf(p.Kind)
	for r := 0; r < shape.Size; r++ {
		for c := 0; c < shape.Size; c++ {
			v := shape.At(p.Rotation, r, c)
			if v == CellEmpty {
				continue
			}
			row, col := p.Row+r, p.Col+c
			if nb.InBounds(row, col) {
				nb.cells[row*nb.width+col] = v
			}
		}
	}
	return nb
}

// RowFull reports whether every cell in the row is non-empty.
func (b Board) RowFull(row int) bool {
	for col := 0; col < b.width; col++ {
		if b.cells[row*b.width+col] == CellEmpty {
			return false
		}
	}
	return true
}

// FullRows returns the indices of all full rows, top to bottom.
func (b Board) FullRows() []int {
	var rows []int
	for row := 0; row < b.height; row++ {
		if b.RowFull(row) {
			rows = append(rows, row)
		}
	}
	return rows
}

// Highlight returns a copy with every cell of the given rows set to CellHighlight.
func (b Board) Highlight(rows []int) Board {
	nb := b.clone()
	for _, row := range rows {
		if row < 0 || row >= nb.height {
			continue
		}
		for col := 0; col < nb.width; col++ {
			nb.cells[row*nb.width+col] = CellHighlight
		}
	}
	return nb
}

// RemoveRows deletes the given rows, collapses the remaining rows downward in
// their original order and prepends the same number of empty rows on top.
func (b Board) RemoveRows(rows []int) Board {
	drop := make(map[int]bool, len(rows))
	for _, row := range rows {
		if row >= 0 && row < b.height {
			drop[row] = true
		}
	}

	nb := NewBoard(b.width, b.height)
	dst := b.height - 1
	for src := b.height - 1; src >= 0; src-- {
		if drop[src] {
			continue
		}
		copy(nb.cells[dst*b.width:(dst+1)*b.width], b.cells[src*b.width:(src+1)*b.width])
		dst--
	}
	return nb
}

// Filled counts the non-empty cells on the board.
func (b Board) Filled() int {
	count := 0
	for _, v := range b.cells {
		if v != CellEmpty {
			count++
		}
	}
	return count
}

// Rows returns a copy of the grid as a slice of rows.
func (b Board) Rows() [][]Cell {
	rows := make([][]Cell, b.height)
	for row := range rows {
		rows[row] = make([]Cell, b.width)
		copy(rows[row], b.cells[row*b.width:(row+1)*b.width])
	}
	return rows
}

// Equal reports whether two boards have the same size and contents.
func (b Board) Equal(other Board) bool {
	if b.width != other.width || b.height != other.height {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the board as text, one line per row: '.' for empty,
// the color digit for locked cells and '#' for highlighted cells.
func (b Board) String() string {
	buf := make([]byte, 0, (b.width+1)*b.height)
	for row := 0; row < b.height; row++ {
		if row > 0 {
			buf = append(buf, '\n')
		}
		for col := 0; col < b.width; col++ {
			switch v := b.cells[row*b.width+col]; v {
			case CellEmpty:
				buf = append(buf, '.')
			case CellHighlight:
				buf = append(buf, '#')
			default:
				buf = append(buf, '0'+byte(v))
			}
		}
	}
	return string(buf)
}
