package blockfall

// Collides reports whether shape placed at pos overlaps a filled cell or
// leaves the well. Columns outside [0, Cols) and rows at or below Rows
// count as walls and floor; rows above the top are open so a piece can
// rotate while partly above the well.
func Collides(s Shape, pos Point, field *Playfield) bool {
	for y, row := range s {
		for x, on := range row {
			if !on {
				continue
			}
			cx, cy := pos.X+x, pos.Y+y
			if cx < 0 || cx >= Cols || cy >= Rows {
				return true
			}
			if cy < 0 {
				continue
			}
			if field.cells[cy][cx] == CellFilled {
				return true
			}
		}
	}
	return false
}
