package engine

// Point is an absolute board coordinate.
type Point struct {
	Row, Col int
}

// Piece is the active falling piece. Row and Col anchor the top-left corner
// of the shape's bounding box in board coordinates.
type Piece struct {
	Kind     Kind
	Rotation int
	Row      int
	Col      int
}

// SpawnPiece places a piece of the given kind at the spawn position for a
// board of the given width: row 0, rotation 0, horizontally centered.
func SpawnPiece(k Kind, boardWidth int) Piece {
	size := ShapeOf(k).Size
	return Piece{
		Kind:     k,
		Rotation: 0,
		Row:      0,
		Col:      boardWidth/2 - size/2,
	}
}

// Rotated returns the piece turned 90° clockwise.
func (p Piece) Rotated() Piece {
	p.Rotation = (p.Rotation + 1) % 4
	return p
}

// Moved returns the piece shifted by (dRow, dCol).
func (p Piece) Moved(dRow, dCol int) Piece {
	p.Row += dRow
	p.Col += dCol
	return p
}

// Cells returns the absolute coordinates of the piece's occupied cells.
func (p Piece) Cells() []Point {
	shape := ShapeOf(p.Kind)
	points := make([]Point, 0, 4)
	for r := 0; r < shape.Size; r++ {
		for c := 0; c < shape.Size; c++ {
			if shape.At(p.Rotation, r, c) != CellEmpty {
				points = append(points, Point{Row: p.Row + r, Col: p.Col + c})
			}
		}
	}
	return points
}
