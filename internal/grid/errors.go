package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("position not on the board")

	// ErrOccupied indicates a placement onto a slot that already holds something.
	ErrOccupied = errors.New("position already occupied")
)

type PositionError struct {
	Coordinate Coordinate
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("%v: %s", ErrOutOfBounds, e.Coordinate)
}

func (e *PositionError) Unwrap() error {
	return ErrOutOfBounds
}

type OccupiedSquareError struct {
	Coordinate Coordinate
}

func (e *OccupiedSquareError) Error() string {
	return fmt.Sprintf("%v: %s", ErrOccupied, e.Coordinate)
}

func (e *OccupiedSquareError) Unwrap() error {
	return ErrOccupied
}
