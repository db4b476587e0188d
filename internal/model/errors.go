package model

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is to inspect what went wrong.
var (
	// ErrInvalidCoordinate indicates a malformed algebraic square.
	ErrInvalidCoordinate = errors.New("invalid chess coordinate")

	// ErrIllegalMove is matched by every move rejection.
	ErrIllegalMove = errors.New("illegal move")

	ErrNoPiece         = errors.New("there is no piece on source position")
	ErrNotYourPiece    = errors.New("the chosen piece is not yours")
	ErrNoPossibleMoves = errors.New("there are no possible moves for the chosen piece")
	ErrUnreachable     = errors.New("the chosen piece can't move to target position")
	ErrSelfCheck       = errors.New("you can't put yourself in check")
	ErrMatchOver       = errors.New("the match is over")

	// ErrPromotionState indicates a promotion request with none pending.
	ErrPromotionState = errors.New("there is no piece to be promoted")

	// ErrInvariant indicates a broken engine invariant, such as a missing king.
	// It is a programming error, not bad input.
	ErrInvariant = errors.New("invariant violation")

	// ErrInvalidSetup indicates a custom position the engine cannot play from.
	ErrInvalidSetup = errors.New("invalid setup")
)

// CoordinateError reports a square outside a..h / 1..8. Text is set when the
// square came from a string.
type CoordinateError struct {
	File byte
	Rank int
	Text string
}

func (e *CoordinateError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("%v: %q", ErrInvalidCoordinate, e.Text)
	}
	return fmt.Sprintf("%v: file %q rank %d", ErrInvalidCoordinate, e.File, e.Rank)
}

func (e *CoordinateError) Unwrap() error {
	return ErrInvalidCoordinate
}

// MoveError is returned when a move is rejected. It matches both
// ErrIllegalMove and the specific reason in Err.
type MoveError struct {
	Source ChessPosition
	Target *ChessPosition
	Err    error
}

func (e *MoveError) Error() string {
	if e.Target != nil {
		return fmt.Sprintf("%v %s-%s: %v", ErrIllegalMove, e.Source, e.Target, e.Err)
	}
	return fmt.Sprintf("%v from %s: %v", ErrIllegalMove, e.Source, e.Err)
}

func (e *MoveError) Unwrap() []error {
	return []error{e.Err, ErrIllegalMove}
}

type InvariantError struct {
	Detail string
	Err    error
}

func (e *InvariantError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", ErrInvariant, e.Detail, e.Err)
	}
	return fmt.Sprintf("%v: %s", ErrInvariant, e.Detail)
}

func (e *InvariantError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvariant, e.Err}
	}
	return []error{ErrInvariant}
}

func invariant(detail string, err error) error {
	return &InvariantError{Detail: detail, Err: err}
}
