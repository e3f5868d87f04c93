package blockfall

import "math/rand"

// Point is a grid offset; X grows right, Y grows down.
type Point struct {
	X, Y int
}

// RotationMode selects how Rotate transforms the current shape.
type RotationMode int

const (
	// RotateTranspose swaps rows and columns of whatever orientation is
	// current. Asymmetric pieces alternate between two shapes instead of
	// cycling through four.
	RotateTranspose RotationMode = iota
	// RotateClockwise turns the shape a true quarter turn.
	RotateClockwise
)

// String returns the mode name used in configs and titles.
func (m RotationMode) String() string {
	if m == RotateClockwise {
		return "clockwise"
	}
	return "transpose"
}

// ActivePiece is the player-controlled piece.
type ActivePiece struct {
	Kind  PieceKind
	Shape Shape
	Pos   Point
}

// Spawn creates a fresh random piece at the spawn offset.
func Spawn(rng *rand.Rand, at Point) ActivePiece {
	kind := RandomPiece(rng)
	return ActivePiece{
		Kind:  kind,
		Shape: kind.Shape(),
		Pos:   at,
	}
}

// Translate moves the piece by (dx, dy) unless the result collides.
// Returns whether the move was applied.
func (a *ActivePiece) Translate(field *Playfield, dx, dy int) bool {
	next := Point{X: a.Pos.X + dx, Y: a.Pos.Y + dy}
	if Collides(a.Shape, next, field) {
		return false
	}
	a.Pos = next
	return true
}

// Rotate replaces the shape with its rotated form unless that collides at
// the current position. A rejected rotation leaves the shape untouched;
// there are no wall kicks.
func (a *ActivePiece) Rotate(field *Playfield, mode RotationMode) bool {
	var next Shape
	switch mode {
	case RotateClockwise:
		next = a.Shape.RotateCW()
	default:
		next = a.Shape.Transpose()
	}

	if Collides(next, a.Pos, field) {
		return false
	}
	a.Shape = next
	return true
}

// Cells returns the absolute coordinates of every filled cell.
func (a ActivePiece) Cells() []Point {
	cells := make([]Point, 0, 4)
	for y, row := range a.Shape {
		for x, on := range row {
			if on {
				cells = append(cells, Point{X: a.Pos.X + x, Y: a.Pos.Y + y})
			}
		}
	}
	return cells
}
