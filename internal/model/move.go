package model

import (
	"github.com/benbeisheim/chessmatch/internal/grid"
)

// SimpleMove is a from/to pair in algebraic form.
type SimpleMove struct {
	From ChessPosition `json:"from"`
	To   ChessPosition `json:"to"`
}

type castleRookMove struct {
	rook *Piece
	from grid.Coordinate
	to   grid.Coordinate
}

// ply records everything execute changed so that undo can put it back.
type ply struct {
	piece *Piece
	from  grid.Coordinate
	to    grid.Coordinate

	captured   *Piece
	capturedAt grid.Coordinate
	// index of the captured piece in piecesOnBoard before the capture, -1 if
	// it was not listed.
	capturedIndex int

	castle *castleRookMove
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
