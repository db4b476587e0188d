package model

// Color identifies the side a piece belongs to.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) Valid() bool {
	return c == White || c == Black
}

// forward is the row delta of a pawn advance. White starts at the bottom of
// the grid (high rows) and moves toward row 0.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}
