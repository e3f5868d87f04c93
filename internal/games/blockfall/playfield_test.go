package blockfall

import "testing"

func fillRow(p *Playfield, y int, except ...int) {
	skip := make(map[int]bool, len(except))
	for _, x := range except {
		skip[x] = true
	}
	for x := range Cols {
		if !skip[x] {
			p.cells[y][x] = CellFilled
		}
	}
}

func TestClearFullRowsFullEmptyFull(t *testing.T) {
	var p Playfield
	fillRow(&p, Rows-1)
	fillRow(&p, Rows-3)

	if got := p.ClearFullRows(); got != 2 {
		t.Fatalf("ClearFullRows() = %d, want 2", got)
	}
	if p.Grid() != (Grid{}) {
		t.Error("expected an empty playfield after clearing both full rows")
	}
	if len(p.Grid()) != Rows {
		t.Errorf("row count = %d, want %d", len(p.Grid()), Rows)
	}
}

func TestClearFullRowsShiftsRemainingRows(t *testing.T) {
	var p Playfield
	fillRow(&p, Rows-1)
	p.cells[Rows-2][3] = CellFilled
	fillRow(&p, Rows-3)
	p.cells[Rows-4][7] = CellFilled

	if got := p.ClearFullRows(); got != 2 {
		t.Fatalf("ClearFullRows() = %d, want 2", got)
	}

	// Marker rows drop by the number of full rows below them.
	if !p.IsOccupied(3, Rows-1) {
		t.Error("marker at column 3 should land on the floor row")
	}
	if !p.IsOccupied(7, Rows-2) {
		t.Error("marker at column 7 should land one row above the floor")
	}
	if p.Height() != 2 {
		t.Errorf("Height() = %d, want 2", p.Height())
	}
	for y := range Rows - 2 {
		for x := range Cols {
			if p.IsOccupied(x, y) {
				t.Fatalf("cell (%d,%d) should be empty", x, y)
			}
		}
	}
}

func TestClearFullRowsAdjacentStack(t *testing.T) {
	var p Playfield
	for y := Rows - 4; y < Rows; y++ {
		fillRow(&p, y)
	}
	fillRow(&p, Rows-5, 0)

	if got := p.ClearFullRows(); got != 4 {
		t.Fatalf("ClearFullRows() = %d, want 4", got)
	}
	if p.IsOccupied(0, Rows-1) {
		t.Error("gap at column 0 should survive the shift")
	}
	if !p.IsOccupied(1, Rows-1) {
		t.Error("partial row should land on the floor")
	}
}

func TestClearFullRowsNothingFull(t *testing.T) {
	var p Playfield
	fillRow(&p, Rows-1, 5)
	before := p.Grid()

	if got := p.ClearFullRows(); got != 0 {
		t.Fatalf("ClearFullRows() = %d, want 0", got)
	}
	if p.Grid() != before {
		t.Error("grid changed although no row was full")
	}
}

func TestLockSkipsOutOfBounds(t *testing.T) {
	var p Playfield
	p.Lock(PieceI.Shape(), Point{X: 8, Y: -1})

	if p.Height() != 0 {
		t.Errorf("Height() = %d, want 0 for a lock entirely above or beside the well", p.Height())
	}

	p.Lock(PieceO.Shape(), Point{X: 0, Y: Rows - 2})
	for _, c := range []Point{{0, Rows - 2}, {1, Rows - 2}, {0, Rows - 1}, {1, Rows - 1}} {
		if !p.IsOccupied(c.X, c.Y) {
			t.Errorf("cell (%d,%d) should be filled", c.X, c.Y)
		}
	}
}

func TestIsOccupiedOutOfBounds(t *testing.T) {
	var p Playfield
	for y := range Rows {
		fillRow(&p, y)
	}
	for _, c := range []Point{{-1, 0}, {Cols, 0}, {0, -1}, {0, Rows}} {
		if p.IsOccupied(c.X, c.Y) {
			t.Errorf("IsOccupied(%d,%d) = true, want false", c.X, c.Y)
		}
	}
	p.Reset()
	if p.Height() != 0 {
		t.Error("Reset should empty the playfield")
	}
}
