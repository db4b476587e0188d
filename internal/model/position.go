package model

import (
	"fmt"
	"strconv"

	"github.com/benbeisheim/chessmatch/internal/grid"
)

// ChessPosition is an algebraic square: file 'a'..'h', rank 1..8.
type ChessPosition struct {
	File byte
	Rank int
}

func NewChessPosition(file byte, rank int) (ChessPosition, error) {
	p := ChessPosition{File: file, Rank: rank}
	if err := p.validate(); err != nil {
		return ChessPosition{}, err
	}
	return p, nil
}

// ParseChessPosition reads a square such as "e4".
func ParseChessPosition(s string) (ChessPosition, error) {
	if len(s) != 2 {
		return ChessPosition{}, &CoordinateError{Text: s}
	}
	rank, err := strconv.Atoi(s[1:])
	if err != nil {
		return ChessPosition{}, &CoordinateError{Text: s}
	}
	p, err := NewChessPosition(s[0], rank)
	if err != nil {
		return ChessPosition{}, &CoordinateError{Text: s}
	}
	return p, nil
}

// FromCoordinate converts a grid coordinate back to algebraic form.
func FromCoordinate(c grid.Coordinate) ChessPosition {
	return ChessPosition{File: byte('a' + c.Column), Rank: BoardRows - c.Row}
}

func (p ChessPosition) validate() error {
	if p.File < 'a' || p.File >= 'a'+BoardColumns || p.Rank < 1 || p.Rank > BoardRows {
		return &CoordinateError{File: p.File, Rank: p.Rank}
	}
	return nil
}

// ToCoordinate maps the square onto the grid: row = 8 - rank, column = file - 'a'.
func (p ChessPosition) ToCoordinate() (grid.Coordinate, error) {
	if err := p.validate(); err != nil {
		return grid.Coordinate{}, err
	}
	return grid.Coordinate{Row: BoardRows - p.Rank, Column: int(p.File - 'a')}, nil
}

func (p ChessPosition) String() string {
	return fmt.Sprintf("%c%d", p.File, p.Rank)
}

func (p ChessPosition) MarshalText() ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return []byte(p.String()), nil
}

func (p *ChessPosition) UnmarshalText(text []byte) error {
	parsed, err := ParseChessPosition(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
