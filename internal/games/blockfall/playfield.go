package blockfall

import "github.com/vovakirdan/blockfall/internal/config"

// Playfield dimensions.
const (
	Rows = config.BoardRows
	Cols = config.BoardCols
)

// Cell is the content of one playfield square.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellFilled
)

// Grid is a row-major copy of the playfield, row 0 at the top.
type Grid [Rows][Cols]Cell

// Playfield is the fixed-size well pieces lock into.
// It always holds exactly Rows rows of Cols cells.
type Playfield struct {
	cells Grid
}

func inBounds(x, y int) bool {
	return x >= 0 && x < Cols && y >= 0 && y < Rows
}

// IsOccupied reports whether (x, y) is inside the well and filled.
// Out-of-bounds coordinates are never occupied.
func (p *Playfield) IsOccupied(x, y int) bool {
	return inBounds(x, y) && p.cells[y][x] == CellFilled
}

// Lock writes every filled cell of shape at pos into the playfield.
// Callers validate the placement with Collides first; cells that still
// fall outside the well are skipped.
func (p *Playfield) Lock(s Shape, pos Point) {
	for y, row := range s {
		for x, on := range row {
			cx, cy := pos.X+x, pos.Y+y
			if on && inBounds(cx, cy) {
				p.cells[cy][cx] = CellFilled
			}
		}
	}
}

// rowFull reports whether every cell of row y is filled.
func (p *Playfield) rowFull(y int) bool {
	for _, c := range p.cells[y] {
		if c != CellFilled {
			return false
		}
	}
	return true
}

// ClearFullRows removes all full rows and returns how many were removed.
// Rows above a removed row shift down; empty rows fill in at the top.
// A single bottom-up pass compacts in place, so rows that shift down are
// never re-examined.
func (p *Playfield) ClearFullRows() int {
	cleared := 0
	write := Rows - 1

	for read := Rows - 1; read >= 0; read-- {
		if p.rowFull(read) {
			cleared++
			continue
		}
		if write != read {
			p.cells[write] = p.cells[read]
		}
		write--
	}

	for ; write >= 0; write-- {
		p.cells[write] = [Cols]Cell{}
	}

	return cleared
}

// Reset empties every cell.
func (p *Playfield) Reset() {
	p.cells = Grid{}
}

// Grid returns a copy of the cells for read-only consumers.
func (p *Playfield) Grid() Grid {
	return p.cells
}

// Height returns the number of rows from the highest filled cell to the floor.
func (p *Playfield) Height() int {
	for y := 0; y < Rows; y++ {
		for _, c := range p.cells[y] {
			if c == CellFilled {
				return Rows - y
			}
		}
	}
	return 0
}
