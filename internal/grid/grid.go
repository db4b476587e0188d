// Package grid is a fixed-size two dimensional board that maps coordinates to
// at most one occupant. It knows nothing about the game played on it.
package grid

import "errors"

var ErrInvalidDimensions = errors.New("grid needs at least one row and one column")

// Occupant is anything that can sit on a grid. The grid keeps the occupant's
// recorded position in sync with the slot holding it.
type Occupant interface {
	comparable
	Place(Coordinate)
	Lift()
}

type Grid[T Occupant] struct {
	rows    int
	columns int
	cells   [][]T
}

func New[T Occupant](rows, columns int) (*Grid[T], error) {
	if rows < 1 || columns < 1 {
		return nil, ErrInvalidDimensions
	}
	cells := make([][]T, rows)
	for i := range cells {
		cells[i] = make([]T, columns)
	}
	return &Grid[T]{rows: rows, columns: columns, cells: cells}, nil
}

func (g *Grid[T]) Rows() int {
	return g.rows
}

func (g *Grid[T]) Columns() int {
	return g.columns
}

// Exists reports whether c lies inside the grid.
func (g *Grid[T]) Exists(c Coordinate) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Column >= 0 && c.Column < g.columns
}

// Occupant returns whatever sits at c, or the zero value when the slot is empty.
func (g *Grid[T]) Occupant(c Coordinate) (T, error) {
	var zero T
	if !g.Exists(c) {
		return zero, &PositionError{Coordinate: c}
	}
	return g.cells[c.Row][c.Column], nil
}

func (g *Grid[T]) IsOccupied(c Coordinate) (bool, error) {
	occupant, err := g.Occupant(c)
	if err != nil {
		return false, err
	}
	var zero T
	return occupant != zero, nil
}

// Place puts occupant at c and records c as its position.
func (g *Grid[T]) Place(occupant T, c Coordinate) error {
	occupied, err := g.IsOccupied(c)
	if err != nil {
		return err
	}
	if occupied {
		return &OccupiedSquareError{Coordinate: c}
	}
	g.cells[c.Row][c.Column] = occupant
	occupant.Place(c)
	return nil
}

// Remove empties the slot at c. The boolean is false when there was nothing
// to remove.
func (g *Grid[T]) Remove(c Coordinate) (T, bool, error) {
	var zero T
	occupant, err := g.Occupant(c)
	if err != nil {
		return zero, false, err
	}
	if occupant == zero {
		return zero, false, nil
	}
	g.cells[c.Row][c.Column] = zero
	occupant.Lift()
	return occupant, true, nil
}
