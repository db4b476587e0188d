package model

import (
	"strings"

	"github.com/benbeisheim/chessmatch/internal/grid"
)

const (
	BoardRows    = 8
	BoardColumns = 8
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Notation is the single letter used for the piece type; pawns use "P".
func (p PieceType) Notation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return "P"
	}
	return ""
}

// PromotionType maps a promotion code (B, N, R, Q) to its piece type.
func PromotionType(code string) (PieceType, bool) {
	switch code {
	case "B":
		return Bishop, true
	case "N":
		return Knight, true
	case "R":
		return Rook, true
	case "Q":
		return Queen, true
	}
	return "", false
}

func (p PieceType) promotable() bool {
	return p == Bishop || p == Knight || p == Rook || p == Queen
}

func (p PieceType) Valid() bool {
	return p == King || p == Pawn || p.promotable()
}

// Piece is plain data. The match owns every piece through its board and its
// rosters; Position is nil while the piece is off the board.
type Piece struct {
	Type      PieceType        `json:"type"`
	Color     Color            `json:"color"`
	Position  *grid.Coordinate `json:"position"`
	MoveCount int              `json:"moveCount"`
}

func NewPiece(pieceType PieceType, color Color) *Piece {
	return &Piece{Type: pieceType, Color: color}
}

// Place is called by the board when the piece lands on c.
func (p *Piece) Place(c grid.Coordinate) {
	p.Position = &c
}

// Lift is called by the board when the piece leaves its square.
func (p *Piece) Lift() {
	p.Position = nil
}

func (p *Piece) ChessPosition() (ChessPosition, bool) {
	if p.Position == nil {
		return ChessPosition{}, false
	}
	return FromCoordinate(*p.Position), true
}

func (p *Piece) String() string {
	if p.Color == Black {
		return strings.ToLower(p.Type.Notation())
	}
	return p.Type.Notation()
}

// Board is the chess grid; the match is its only writer.
type Board = grid.Grid[*Piece]

func newBoard() *Board {
	// 8x8 is always a valid size.
	board, _ := grid.New[*Piece](BoardRows, BoardColumns)
	return board
}

var backRank = []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// initialPlacements lists the canonical starting position, white first.
func initialPlacements() []Placement {
	placements := make([]Placement, 0, 32)
	for _, side := range []struct {
		color     Color
		backRank  int
		pawnsRank int
	}{
		{White, 1, 2},
		{Black, 8, 7},
	} {
		for i, pieceType := range backRank {
			file := byte('a' + i)
			placements = append(placements,
				Placement{Type: pieceType, Color: side.color, Square: ChessPosition{File: file, Rank: side.backRank}},
			)
		}
		for i := 0; i < BoardColumns; i++ {
			file := byte('a' + i)
			placements = append(placements,
				Placement{Type: Pawn, Color: side.color, Square: ChessPosition{File: file, Rank: side.pawnsRank}},
			)
		}
	}
	return placements
}
