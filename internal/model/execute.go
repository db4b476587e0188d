package model

import (
	"fmt"

	"github.com/benbeisheim/chessmatch/internal/grid"
	"golang.org/x/exp/slices"
)

// execute moves the piece on from to to, including captures, the castling
// rook and en passant removal. The returned ply is the input for undo.
func (m *Match) execute(from, to grid.Coordinate) (*ply, error) {
	piece, ok, err := m.board.Remove(from)
	if err != nil || !ok {
		return nil, invariant(fmt.Sprintf("no piece to move on %s", FromCoordinate(from)), err)
	}
	captured, _, err := m.board.Remove(to)
	if err != nil {
		return nil, invariant("removing captured piece", err)
	}
	if err := m.board.Place(piece, to); err != nil {
		return nil, invariant("placing moved piece", err)
	}
	piece.MoveCount++

	record := &ply{piece: piece, from: from, to: to, capturedIndex: -1}
	if captured != nil {
		record.captured = captured
		record.capturedAt = to
		record.capturedIndex = m.capture(captured)
	}

	if piece.Type == King && abs(to.Column-from.Column) == 2 {
		castle, err := m.castleRook(from, to)
		if err != nil {
			return nil, err
		}
		record.castle = castle
	}

	// A pawn moving diagonally onto an empty square is capturing en passant.
	if piece.Type == Pawn && from.Column != to.Column && captured == nil {
		at := grid.Coordinate{Row: from.Row, Column: to.Column}
		passed, ok, err := m.board.Remove(at)
		if err != nil {
			return nil, invariant("removing pawn captured en passant", err)
		}
		if ok {
			record.captured = passed
			record.capturedAt = at
			record.capturedIndex = m.capture(passed)
		}
	}
	return record, nil
}

func (m *Match) castleRook(kingFrom, kingTo grid.Coordinate) (*castleRookMove, error) {
	corner := grid.Coordinate{Row: kingFrom.Row, Column: m.board.Columns() - 1}
	landing := kingTo.Offset(0, -1)
	if kingTo.Column < kingFrom.Column {
		corner = grid.Coordinate{Row: kingFrom.Row, Column: 0}
		landing = kingTo.Offset(0, 1)
	}
	rook, ok, err := m.board.Remove(corner)
	if err != nil || !ok {
		return nil, invariant(fmt.Sprintf("no castling rook on %s", FromCoordinate(corner)), err)
	}
	if err := m.board.Place(rook, landing); err != nil {
		return nil, invariant("placing castling rook", err)
	}
	rook.MoveCount++
	return &castleRookMove{rook: rook, from: corner, to: landing}, nil
}

// undo is the exact inverse of execute: positions, move counts and roster
// order all return to what they were.
func (m *Match) undo(record *ply) error {
	if record.castle != nil {
		rook, ok, err := m.board.Remove(record.castle.to)
		if err != nil || !ok {
			return invariant("lifting castling rook", err)
		}
		if err := m.board.Place(rook, record.castle.from); err != nil {
			return invariant("restoring castling rook", err)
		}
		rook.MoveCount--
	}

	piece, ok, err := m.board.Remove(record.to)
	if err != nil || !ok || piece != record.piece {
		return invariant("lifting moved piece", err)
	}
	if err := m.board.Place(piece, record.from); err != nil {
		return invariant("restoring moved piece", err)
	}
	piece.MoveCount--

	if record.captured != nil {
		if err := m.board.Place(record.captured, record.capturedAt); err != nil {
			return invariant("restoring captured piece", err)
		}
		m.release(record.captured, record.capturedIndex)
	}
	return nil
}

// tryMove executes a move, lets observe look at the resulting position and
// always restores the position before returning.
func (m *Match) tryMove(from, to grid.Coordinate, observe func() (bool, error)) (bool, error) {
	record, err := m.execute(from, to)
	if err != nil {
		return false, err
	}
	result, observeErr := observe()
	if err := m.undo(record); err != nil {
		return false, err
	}
	return result, observeErr
}

// leavesInCheck reports whether moving from -> to would leave color's king attacked.
func (m *Match) leavesInCheck(from, to grid.Coordinate, color Color) (bool, error) {
	return m.tryMove(from, to, func() (bool, error) {
		return m.isInCheck(color)
	})
}

// capture moves p from the live roster to the captured roster and returns
// its former roster index.
func (m *Match) capture(p *Piece) int {
	index := slices.Index(m.piecesOnBoard, p)
	if index >= 0 {
		m.piecesOnBoard = slices.Delete(m.piecesOnBoard, index, index+1)
	}
	m.capturedPieces = append(m.capturedPieces, p)
	return index
}

// release reverses capture.
func (m *Match) release(p *Piece, index int) {
	if i := slices.Index(m.capturedPieces, p); i >= 0 {
		m.capturedPieces = slices.Delete(m.capturedPieces, i, i+1)
	}
	if index < 0 || index > len(m.piecesOnBoard) {
		m.piecesOnBoard = append(m.piecesOnBoard, p)
		return
	}
	m.piecesOnBoard = slices.Insert(m.piecesOnBoard, index, p)
}
