package model

import (
	"github.com/benbeisheim/chessmatch/internal/grid"
)

// MoveMatrix marks, per board square, whether a piece could move there.
type MoveMatrix [][]bool

func newMoveMatrix(rows, columns int) MoveMatrix {
	m := make(MoveMatrix, rows)
	for i := range m {
		m[i] = make([]bool, columns)
	}
	return m
}

func (m MoveMatrix) set(c grid.Coordinate) {
	m[c.Row][c.Column] = true
}

// At reports whether c is marked; squares outside the matrix are never marked.
func (m MoveMatrix) At(c grid.Coordinate) bool {
	if c.Row < 0 || c.Row >= len(m) || c.Column < 0 || c.Column >= len(m[c.Row]) {
		return false
	}
	return m[c.Row][c.Column]
}

func (m MoveMatrix) Any() bool {
	for _, row := range m {
		for _, marked := range row {
			if marked {
				return true
			}
		}
	}
	return false
}

// Targets lists the marked squares in row-major order.
func (m MoveMatrix) Targets() []grid.Coordinate {
	var targets []grid.Coordinate
	for r, row := range m {
		for c, marked := range row {
			if marked {
				targets = append(targets, grid.Coordinate{Row: r, Column: c})
			}
		}
	}
	return targets
}

var (
	rookDirs    = []grid.Coordinate{{Row: 0, Column: 1}, {Row: 0, Column: -1}, {Row: 1, Column: 0}, {Row: -1, Column: 0}}
	bishopDirs  = []grid.Coordinate{{Row: 1, Column: 1}, {Row: 1, Column: -1}, {Row: -1, Column: 1}, {Row: -1, Column: -1}}
	royalDirs   = []grid.Coordinate{{Row: 0, Column: 1}, {Row: 0, Column: -1}, {Row: 1, Column: 0}, {Row: -1, Column: 0}, {Row: 1, Column: 1}, {Row: 1, Column: -1}, {Row: -1, Column: 1}, {Row: -1, Column: -1}}
	knightJumps = []grid.Coordinate{{Row: 2, Column: 1}, {Row: 2, Column: -1}, {Row: -2, Column: 1}, {Row: -2, Column: -1}, {Row: 1, Column: 2}, {Row: 1, Column: -2}, {Row: -1, Column: 2}, {Row: -1, Column: -2}}
)

// CandidateMoves marks every square the piece could reach on board, ignoring
// whether the move would expose its own king. enPassant is the pawn that just
// made a two-square advance, if any.
func (p *Piece) CandidateMoves(board *Board, enPassant *Piece) MoveMatrix {
	mat := newMoveMatrix(board.Rows(), board.Columns())
	if p.Position == nil {
		return mat
	}
	switch p.Type {
	case Rook:
		p.slide(board, rookDirs, mat)
	case Bishop:
		p.slide(board, bishopDirs, mat)
	case Queen:
		p.slide(board, royalDirs, mat)
	case Knight:
		p.step(board, knightJumps, mat)
	case King:
		p.step(board, royalDirs, mat)
		p.castlingMoves(board, mat)
	case Pawn:
		p.pawnMoves(board, enPassant, mat)
	}
	return mat
}

func pieceAt(board *Board, c grid.Coordinate) *Piece {
	piece, err := board.Occupant(c)
	if err != nil {
		return nil
	}
	return piece
}

// slide follows each ray until the edge, stopping before an own piece and on
// an opponent piece.
func (p *Piece) slide(board *Board, dirs []grid.Coordinate, mat MoveMatrix) {
	for _, dir := range dirs {
		target := p.Position.Offset(dir.Row, dir.Column)
		for board.Exists(target) {
			occupant := pieceAt(board, target)
			if occupant != nil {
				if occupant.Color != p.Color {
					mat.set(target)
				}
				break
			}
			mat.set(target)
			target = target.Offset(dir.Row, dir.Column)
		}
	}
}

func (p *Piece) step(board *Board, offsets []grid.Coordinate, mat MoveMatrix) {
	for _, offset := range offsets {
		target := p.Position.Offset(offset.Row, offset.Column)
		if !board.Exists(target) {
			continue
		}
		if occupant := pieceAt(board, target); occupant == nil || occupant.Color != p.Color {
			mat.set(target)
		}
	}
}

// castlingMoves adds the two-square king move toward an unmoved rook in its
// corner when every square between them is empty. Attacked transit squares
// are not considered.
func (p *Piece) castlingMoves(board *Board, mat MoveMatrix) {
	if p.MoveCount != 0 {
		return
	}
	from := *p.Position
	last := board.Columns() - 1

	if from.Column+2 < last && p.castlingRookReady(board, grid.Coordinate{Row: from.Row, Column: last}) &&
		rankClear(board, from.Row, from.Column+1, last-1) {
		mat.set(from.Offset(0, 2))
	}
	if from.Column-2 > 0 && p.castlingRookReady(board, grid.Coordinate{Row: from.Row, Column: 0}) &&
		rankClear(board, from.Row, 1, from.Column-1) {
		mat.set(from.Offset(0, -2))
	}
}

func (p *Piece) castlingRookReady(board *Board, corner grid.Coordinate) bool {
	rook := pieceAt(board, corner)
	return rook != nil && rook.Type == Rook && rook.Color == p.Color && rook.MoveCount == 0
}

// rankClear reports whether columns first..last (inclusive) of row are empty.
func rankClear(board *Board, row, first, last int) bool {
	for column := first; column <= last; column++ {
		if pieceAt(board, grid.Coordinate{Row: row, Column: column}) != nil {
			return false
		}
	}
	return true
}

func (p *Piece) pawnMoves(board *Board, enPassant *Piece, mat MoveMatrix) {
	from := *p.Position
	dir := p.Color.forward()

	one := from.Offset(dir, 0)
	if board.Exists(one) && pieceAt(board, one) == nil {
		mat.set(one)
		two := from.Offset(2*dir, 0)
		if p.MoveCount == 0 && from.Row == pawnStartRow(p.Color, board.Rows()) &&
			board.Exists(two) && pieceAt(board, two) == nil {
			mat.set(two)
		}
	}

	for _, side := range []int{-1, 1} {
		diagonal := from.Offset(dir, side)
		if !board.Exists(diagonal) {
			continue
		}
		if occupant := pieceAt(board, diagonal); occupant != nil && occupant.Color != p.Color {
			mat.set(diagonal)
		}
		if enPassant != nil && from.Row == enPassantRow(p.Color, board.Rows()) {
			beside := pieceAt(board, from.Offset(0, side))
			if beside != nil && beside == enPassant && beside.Color != p.Color {
				mat.set(diagonal)
			}
		}
	}
}

func pawnStartRow(color Color, rows int) int {
	if color == White {
		return rows - 2
	}
	return 1
}

// enPassantRow is the pawn's fifth rank, the only row it can capture en passant from.
func enPassantRow(color Color, rows int) int {
	if color == White {
		return rows/2 - 1
	}
	return rows / 2
}

func promotionRow(color Color, rows int) int {
	if color == White {
		return 0
	}
	return rows - 1
}
