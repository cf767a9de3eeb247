// Package engine implements the falling-block simulation: the shape catalog,
// the board, the active piece, validity checks and the tick state machine.
// It has no dependencies on the platform, timers or rendering.
package engine

import "fmt"

// Kind identifies one of the seven piece shapes.
type Kind uint8

const (
	KindI Kind = iota
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
)

// KindCount is the number of piece kinds in the catalog.
const KindCount = 7

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	if int(k) >= KindCount {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return string("IJLOSTZ"[k])
}

// Color returns the cell value a locked piece of this kind leaves on the board.
func (k Kind) Color() Cell {
	return Cell(k) + 1
}

// ParseKind converts a letter (I, J, L, O, S, T, Z) to a Kind.
func ParseKind(r rune) (Kind, bool) {
	switch r {
	case 'I', 'i':
		return KindI, true
	case 'J', 'j':
		return KindJ, true
	case 'L', 'l':
		return KindL, true
	case 'O', 'o':
		return KindO, true
	case 'S', 's':
		return KindS, true
	case 'T', 't':
		return KindT, true
	case 'Z', 'z':
		return KindZ, true
	}
	return 0, false
}

// Shape is an immutable N×N cell pattern. Patterns are stored unrotated;
// rotation is applied on lookup by At.
type Shape struct {
	Kind    Kind
	Size    int
	pattern []Cell
}

var catalog = [KindCount]Shape{
	{Kind: KindI, Size: 4, pattern: []Cell{
		0, 0, 0, 0,
		1, 1, 1, 1,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}},
	{Kind: KindJ, Size: 3, pattern: []Cell{
		2, 0, 0,
		2, 2, 2,
		0, 0, 0,
	}},
	{Kind: KindL, Size: 3, pattern: []Cell{
		0, 0, 3,
		3, 3, 3,
		0, 0, 0,
	}},
	{Kind: KindO, Size: 2, pattern: []Cell{
		4, 4,
		4, 4,
	}},
	{Kind: KindS, Size: 3, pattern: []Cell{
		0, 5, 5,
		5, 5, 0,
		0, 0, 0,
	}},
	{Kind: KindT, Size: 3, pattern: []Cell{
		0, 6, 0,
		6, 6, 6,
		0, 0, 0,
	}},
	{Kind: KindZ, Size: 3, pattern: []Cell{
		7, 7, 0,
		0, 7, 7,
		0, 0, 0,
	}},
}

// ShapeOf returns the catalog entry for a kind.
// Panics on an unknown kind: a bad index is a geometry bug, not input.
func ShapeOf(k Kind) Shape {
	if int(k) >= KindCount {
		panic(fmt.Sprintf("engine: unknown piece kind %d", uint8(k)))
	}
	return catalog[k]
}

// At returns the cell at local (r, c) with the given clockwise rotation applied.
// Callers keep r and c within [0, Size).
func (s Shape) At(rotation, r, c int) Cell {
	n := s.Size
	switch rotation {
	case 0:
		return s.pattern[r*n+c]
	case 1:
		return s.pattern[(n-1-c)*n+r]
	case 2:
		return s.pattern[(n-1-r)*n+(n-1-c)]
	case 3:
		return s.pattern[c*n+(n-1-r)]
	default:
		panic(fmt.Sprintf("engine: rotation %d out of range", rotation))
	}
}

// CellAt is shorthand for ShapeOf(k).At(rotation, r, c).
func CellAt(k Kind, rotation, r, c int) Cell {
	return ShapeOf(k).At(rotation, r, c)
}

// Occupied counts the non-empty cells of the pattern. Rotation never changes it.
func (s Shape) Occupied() int {
	count := 0
	for _, v := range s.pattern {
		if v != CellEmpty {
			count++
		}
	}
	return count
}
