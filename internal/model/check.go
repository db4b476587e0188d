package model

import (
	"fmt"
)

func (m *Match) king(color Color) (*Piece, error) {
	for _, p := range m.piecesOnBoard {
		if p.Color == color && p.Type == King {
			return p, nil
		}
	}
	return nil, invariant(fmt.Sprintf("there is no %s king on the board", color), nil)
}

// isInCheck reports whether any opposing piece has color's king square
// among its candidate moves.
func (m *Match) isInCheck(color Color) (bool, error) {
	king, err := m.king(color)
	if err != nil {
		return false, err
	}
	if king.Position == nil {
		return false, invariant(fmt.Sprintf("%s king is listed but not placed", color), nil)
	}
	for _, p := range m.piecesOnBoard {
		if p.Color == color {
			continue
		}
		if m.candidates(p).At(*king.Position) {
			return true, nil
		}
	}
	return false, nil
}

// isCheckmate tries every candidate move of every piece of color and
// reports true only if none of them gets the king out of check.
func (m *Match) isCheckmate(color Color) (bool, error) {
	inCheck, err := m.isInCheck(color)
	if err != nil || !inCheck {
		return false, err
	}
	for _, p := range m.piecesOf(color) {
		if p.Position == nil {
			continue
		}
		from := *p.Position
		for _, target := range m.candidates(p).Targets() {
			stillInCheck, err := m.leavesInCheck(from, target, color)
			if err != nil {
				return false, err
			}
			if !stillInCheck {
				return false, nil
			}
		}
	}
	return true, nil
}

// settle derives check and checkmate for mover's opponent and passes the
// turn unless the opponent is mated.
func (m *Match) settle(mover Color) error {
	opponent := mover.Opponent()
	check, err := m.isInCheck(opponent)
	if err != nil {
		return err
	}
	mate := false
	if check {
		if mate, err = m.isCheckmate(opponent); err != nil {
			return err
		}
	}
	m.check, m.checkMate = check, mate
	if !mate {
		m.nextTurn()
	}
	return nil
}

func (m *Match) nextTurn() {
	m.turn++
	m.currentPlayer = m.currentPlayer.Opponent()
}

func (m *Match) candidates(p *Piece) MoveMatrix {
	return p.CandidateMoves(m.board, m.enPassantVulnerable)
}

// piecesOf returns a copy, so callers may move pieces while iterating.
func (m *Match) piecesOf(color Color) []*Piece {
	var pieces []*Piece
	for _, p := range m.piecesOnBoard {
		if p.Color == color {
			pieces = append(pieces, p)
		}
	}
	return pieces
}
