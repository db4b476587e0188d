package grid

import "fmt"

// Coordinate is a zero-based row/column pair. Row 0 is the top of the grid.
type Coordinate struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func (c Coordinate) Offset(rows, columns int) Coordinate {
	return Coordinate{Row: c.Row + rows, Column: c.Column + columns}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Column)
}
