package model

import (
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/exp/slices"
)

// Match is a single game of chess: the board, whose turn it is and the
// check state. It is not safe for concurrent use; callers serialize access.
type Match struct {
	board               *Board
	turn                int
	currentPlayer       Color
	check               bool
	checkMate           bool
	enPassantVulnerable *Piece
	pendingPromotion    *Piece
	piecesOnBoard       []*Piece
	capturedPieces      []*Piece
	lastMove            *SimpleMove
}

// Placement puts one piece on a square when building a match.
type Placement struct {
	Type      PieceType     `json:"type"`
	Color     Color         `json:"color"`
	Square    ChessPosition `json:"square"`
	MoveCount int           `json:"moveCount"`
}

// NewMatch returns a match in the standard starting position, white to move.
func NewMatch() *Match {
	m, err := NewCustomMatch(initialPlacements(), White)
	if err != nil {
		panic(fmt.Sprintf("standard setup rejected: %v", err))
	}
	return m
}

// NewCustomMatch builds a match from an arbitrary position. The position
// needs exactly one king per color and the side not to move must not be in
// check.
func NewCustomMatch(placements []Placement, toMove Color) (*Match, error) {
	if !toMove.Valid() {
		return nil, fmt.Errorf("%w: unknown color %q to move", ErrInvalidSetup, toMove)
	}
	m := &Match{
		board:         newBoard(),
		turn:          1,
		currentPlayer: toMove,
	}

	kings := map[Color]int{}
	for _, pl := range placements {
		if !pl.Type.Valid() || !pl.Color.Valid() || pl.MoveCount < 0 {
			return nil, fmt.Errorf("%w: bad piece %q %q with %d moves", ErrInvalidSetup, pl.Color, pl.Type, pl.MoveCount)
		}
		if err := m.placeNewPiece(pl); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSetup, pl.Square, err)
		}
		if pl.Type == King {
			kings[pl.Color]++
		}
	}
	for _, color := range []Color{White, Black} {
		if kings[color] != 1 {
			return nil, fmt.Errorf("%w: %s has %d kings", ErrInvalidSetup, color, kings[color])
		}
	}

	waitingInCheck, err := m.isInCheck(toMove.Opponent())
	if err != nil {
		return nil, err
	}
	if waitingInCheck {
		return nil, fmt.Errorf("%w: %s is in check but it is %s's move", ErrInvalidSetup, toMove.Opponent(), toMove)
	}
	if m.check, err = m.isInCheck(toMove); err != nil {
		return nil, err
	}
	if m.checkMate, err = m.isCheckmate(toMove); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Match) placeNewPiece(pl Placement) error {
	at, err := pl.Square.ToCoordinate()
	if err != nil {
		return err
	}
	piece := NewPiece(pl.Type, pl.Color)
	piece.MoveCount = pl.MoveCount
	if err := m.board.Place(piece, at); err != nil {
		return err
	}
	m.piecesOnBoard = append(m.piecesOnBoard, piece)
	return nil
}

func (m *Match) Turn() int {
	return m.turn
}

func (m *Match) CurrentPlayer() Color {
	return m.currentPlayer
}

// Check reports whether the side to move (or the mated side) is in check.
func (m *Match) Check() bool {
	return m.check
}

func (m *Match) CheckMate() bool {
	return m.checkMate
}

// EnPassantVulnerable is the pawn that advanced two squares on the previous
// ply, or nil.
func (m *Match) EnPassantVulnerable() *Piece {
	return m.enPassantVulnerable
}

// PendingPromotion is the piece installed by the last promotion until the
// player confirms or changes it, or nil.
func (m *Match) PendingPromotion() *Piece {
	return m.pendingPromotion
}

func (m *Match) LastMove() *SimpleMove {
	return m.lastMove
}

// PiecesOnBoard returns a copy of the live roster.
func (m *Match) PiecesOnBoard() []*Piece {
	return append([]*Piece(nil), m.piecesOnBoard...)
}

// CapturedPieces returns a copy of the captured roster in capture order.
func (m *Match) CapturedPieces() []*Piece {
	return append([]*Piece(nil), m.capturedPieces...)
}

// PieceAt returns the piece on square, or nil.
func (m *Match) PieceAt(square ChessPosition) (*Piece, error) {
	at, err := square.ToCoordinate()
	if err != nil {
		return nil, err
	}
	return pieceAt(m.board, at), nil
}

// PossibleMoves returns the candidate matrix of the current player's piece on source.
func (m *Match) PossibleMoves(source ChessPosition) (MoveMatrix, error) {
	piece, err := m.validateSource(source)
	if err != nil {
		return nil, err
	}
	return m.candidates(piece), nil
}

// LegalMoves returns the squares the piece on source can move to without
// leaving its own king in check.
func (m *Match) LegalMoves(source ChessPosition) ([]ChessPosition, error) {
	piece, err := m.validateSource(source)
	if err != nil {
		return nil, err
	}
	from := *piece.Position
	var legal []ChessPosition
	for _, target := range m.candidates(piece).Targets() {
		exposed, err := m.leavesInCheck(from, target, piece.Color)
		if err != nil {
			return nil, err
		}
		if !exposed {
			legal = append(legal, FromCoordinate(target))
		}
	}
	return legal, nil
}

// PerformMove plays source -> target for the current player and returns the
// captured piece, if any. A rejected move leaves the match untouched.
func (m *Match) PerformMove(source, target ChessPosition) (*Piece, error) {
	if m.checkMate {
		return nil, &MoveError{Source: source, Target: &target, Err: ErrMatchOver}
	}
	piece, err := m.validateSource(source)
	if err != nil {
		return nil, err
	}
	from := *piece.Position
	to, err := target.ToCoordinate()
	if err != nil {
		return nil, err
	}
	if !m.candidates(piece).At(to) {
		return nil, &MoveError{Source: source, Target: &target, Err: ErrUnreachable}
	}

	mover := m.currentPlayer
	exposed, err := m.leavesInCheck(from, to, mover)
	if err != nil {
		return nil, err
	}
	if exposed {
		return nil, &MoveError{Source: source, Target: &target, Err: ErrSelfCheck}
	}

	record, err := m.execute(from, to)
	if err != nil {
		return nil, err
	}

	m.pendingPromotion = nil
	if piece.Type == Pawn && to.Row == promotionRow(piece.Color, m.board.Rows()) {
		m.pendingPromotion = piece
		if _, err := m.installPromotion(Queen); err != nil {
			return nil, err
		}
	}

	// Set before settling so the opponent's en passant replies count as escapes.
	m.enPassantVulnerable = nil
	if piece.Type == Pawn && abs(to.Row-from.Row) == 2 {
		m.enPassantVulnerable = piece
	}
	m.lastMove = &SimpleMove{From: source, To: target}

	if err := m.settle(mover); err != nil {
		return nil, err
	}
	log.Debugw("move performed", "from", source.String(), "to", target.String(),
		"captured", record.captured != nil, "check", m.check, "checkMate", m.checkMate, "turn", m.turn)
	return record.captured, nil
}

// ReplacePromotedPiece swaps the pending promotion for a piece of the given
// type. Types other than bishop, knight, rook and queen leave the pending
// piece in place and return it.
func (m *Match) ReplacePromotedPiece(pieceType PieceType) (*Piece, error) {
	if m.pendingPromotion == nil {
		return nil, ErrPromotionState
	}
	if !pieceType.promotable() {
		return m.pendingPromotion, nil
	}

	mover := m.pendingPromotion.Color
	replacement, err := m.installPromotion(pieceType)
	if err != nil {
		return nil, err
	}
	m.pendingPromotion = nil

	// Settle again from the final position. A mate flag means the turn was
	// never passed; otherwise take it back first.
	if !m.checkMate {
		m.turn--
		m.currentPlayer = mover
	}
	if err := m.settle(mover); err != nil {
		return nil, err
	}
	log.Debugw("promotion replaced", "type", string(pieceType), "color", string(mover), "checkMate", m.checkMate)
	return replacement, nil
}

// installPromotion replaces the pending piece with a new piece of pieceType
// on the same square and roster slot.
func (m *Match) installPromotion(pieceType PieceType) (*Piece, error) {
	old := m.pendingPromotion
	if old.Position == nil {
		return nil, invariant("promoted piece is not on the board", nil)
	}
	at := *old.Position
	if _, _, err := m.board.Remove(at); err != nil {
		return nil, invariant("lifting promoted piece", err)
	}
	replacement := NewPiece(pieceType, old.Color)
	replacement.MoveCount = old.MoveCount
	if err := m.board.Place(replacement, at); err != nil {
		return nil, invariant("placing promotion", err)
	}
	index := slices.Index(m.piecesOnBoard, old)
	if index < 0 {
		return nil, invariant("promoted piece missing from roster", nil)
	}
	m.piecesOnBoard[index] = replacement
	m.pendingPromotion = replacement
	return replacement, nil
}

func (m *Match) validateSource(source ChessPosition) (*Piece, error) {
	at, err := source.ToCoordinate()
	if err != nil {
		return nil, err
	}
	piece := pieceAt(m.board, at)
	if piece == nil {
		return nil, &MoveError{Source: source, Err: ErrNoPiece}
	}
	if piece.Color != m.currentPlayer {
		return nil, &MoveError{Source: source, Err: ErrNotYourPiece}
	}
	if !m.candidates(piece).Any() {
		return nil, &MoveError{Source: source, Err: ErrNoPossibleMoves}
	}
	return piece, nil
}

// coordinateOf is a convenience for accessors that report squares.
func coordinateOf(p *Piece) *ChessPosition {
	if p == nil || p.Position == nil {
		return nil
	}
	pos := FromCoordinate(*p.Position)
	return &pos
}
