package blockfall

import (
	"math/rand"

	"github.com/vovakirdan/blockfall/internal/core"
)

// PieceKind identifies one of the seven catalog pieces.
type PieceKind int

const (
	PieceT PieceKind = iota
	PieceO
	PieceS
	PieceZ
	PieceI
	PieceL
	PieceJ
	pieceCount
)

// Shape is a rectangular boolean matrix, row 0 at the top.
type Shape [][]bool

// shapeOf builds a Shape from rows of '#' (filled) and '.' (empty).
func shapeOf(rows ...string) Shape {
	s := make(Shape, len(rows))
	for y, row := range rows {
		s[y] = make([]bool, len(row))
		for x, ch := range row {
			s[y][x] = ch == '#'
		}
	}
	return s
}

// catalog holds the spawn orientation of every piece. Never mutated;
// pieces take clones.
var catalog = [pieceCount]Shape{
	PieceT: shapeOf(
		"###",
		".#.",
	),
	PieceO: shapeOf(
		"##",
		"##",
	),
	PieceS: shapeOf(
		".##",
		"##.",
	),
	PieceZ: shapeOf(
		"##.",
		".##",
	),
	PieceI: shapeOf(
		"####",
	),
	PieceL: shapeOf(
		"..#",
		"###",
	),
	PieceJ: shapeOf(
		"#..",
		"###",
	),
}

// Kinds returns every piece kind in catalog order.
func Kinds() []PieceKind {
	kinds := make([]PieceKind, pieceCount)
	for i := range kinds {
		kinds[i] = PieceKind(i)
	}
	return kinds
}

// Shape returns a fresh copy of the kind's spawn shape.
func (k PieceKind) Shape() Shape {
	return catalog[k].Clone()
}

// RandomPiece picks a kind uniformly at random, independent of history.
func RandomPiece(rng *rand.Rand) PieceKind {
	return PieceKind(rng.Intn(int(pieceCount)))
}

// String returns the piece letter.
func (k PieceKind) String() string {
	switch k {
	case PieceT:
		return "T"
	case PieceO:
		return "O"
	case PieceS:
		return "S"
	case PieceZ:
		return "Z"
	case PieceI:
		return "I"
	case PieceL:
		return "L"
	case PieceJ:
		return "J"
	default:
		return "?"
	}
}

// Color returns the terminal color used for the falling piece.
func (k PieceKind) Color() core.Color {
	switch k {
	case PieceT:
		return core.ColorMagenta
	case PieceO:
		return core.ColorYellow
	case PieceS:
		return core.ColorGreen
	case PieceZ:
		return core.ColorRed
	case PieceI:
		return core.ColorCyan
	case PieceL:
		return core.ColorOrange
	case PieceJ:
		return core.ColorBlue
	default:
		return core.ColorDefault
	}
}

// Height returns the number of rows.
func (s Shape) Height() int {
	return len(s)
}

// Width returns the number of columns.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Clone returns a deep copy.
func (s Shape) Clone() Shape {
	c := make(Shape, len(s))
	for y, row := range s {
		c[y] = append([]bool(nil), row...)
	}
	return c
}

// Transpose returns the matrix with rows and columns swapped:
// out[i][j] = s[j][i].
func (s Shape) Transpose() Shape {
	h, w := s.Height(), s.Width()
	out := make(Shape, w)
	for i := range out {
		out[i] = make([]bool, h)
		for j := 0; j < h; j++ {
			out[i][j] = s[j][i]
		}
	}
	return out
}

// RotateCW returns the shape turned 90° clockwise:
// out[i][j] = s[h-1-j][i].
func (s Shape) RotateCW() Shape {
	h, w := s.Height(), s.Width()
	out := make(Shape, w)
	for i := range out {
		out[i] = make([]bool, h)
		for j := 0; j < h; j++ {
			out[i][j] = s[h-1-j][i]
		}
	}
	return out
}

// Equal reports whether two shapes have the same dimensions and cells.
func (s Shape) Equal(o Shape) bool {
	if s.Height() != o.Height() || s.Width() != o.Width() {
		return false
	}
	for y := range s {
		for x := range s[y] {
			if s[y][x] != o[y][x] {
				return false
			}
		}
	}
	return true
}

// CellCount returns the number of filled cells.
func (s Shape) CellCount() int {
	n := 0
	for _, row := range s {
		for _, on := range row {
			if on {
				n++
			}
		}
	}
	return n
}
