package model

import (
	"sort"
	"testing"

	"github.com/benbeisheim/chessmatch/internal/grid"
	"github.com/benbeisheim/chessmatch/internal/testutil"
)

func sq(s string) ChessPosition {
	pos, err := ParseChessPosition(s)
	if err != nil {
		panic(err)
	}
	return pos
}

func put(pieceType PieceType, color Color, square string) Placement {
	return Placement{Type: pieceType, Color: color, Square: sq(square)}
}

func moved(pl Placement, count int) Placement {
	pl.MoveCount = count
	return pl
}

func customMatch(t *testing.T, toMove Color, placements ...Placement) *Match {
	t.Helper()
	m, err := NewCustomMatch(placements, toMove)
	testutil.AssertNoError(t, err, "NewCustomMatch")
	return m
}

func play(t *testing.T, m *Match, moves ...string) {
	t.Helper()
	for _, mv := range moves {
		if _, err := m.PerformMove(sq(mv[:2]), sq(mv[2:4])); err != nil {
			t.Fatalf("PerformMove(%s) error: %v", mv, err)
		}
	}
}

func pieceOn(t *testing.T, m *Match, square string) *Piece {
	t.Helper()
	p, err := m.PieceAt(sq(square))
	testutil.AssertNoError(t, err)
	return p
}

// targets lists the squares marked in mat, sorted.
func targets(mat MoveMatrix) []string {
	var out []string
	for _, c := range mat.Targets() {
		out = append(out, FromCoordinate(c).String())
	}
	sort.Strings(out)
	return out
}

// candidateSquares is the candidate list of the piece on square, computed
// straight from the piece so it works for either color.
func candidateSquares(t *testing.T, m *Match, square string) []string {
	t.Helper()
	p := pieceOn(t, m, square)
	if p == nil {
		t.Fatalf("no piece on %s", square)
	}
	return targets(m.candidates(p))
}

type pieceState struct {
	ID        int
	Type      PieceType
	Color     Color
	Square    string
	MoveCount int
}

// matchState is every observable field of a match, with pieces identified
// by a stable ID so that identity changes show up as diffs.
type matchState struct {
	Turn          int
	CurrentPlayer Color
	Check         bool
	CheckMate     bool
	EnPassant     int
	Pending       int
	Board         [BoardRows][BoardColumns]int
	OnBoard       []pieceState
	Captured      []pieceState
}

type observer struct {
	ids map[*Piece]int
}

func newObserver() *observer {
	return &observer{ids: map[*Piece]int{}}
}

func (o *observer) id(p *Piece) int {
	if p == nil {
		return 0
	}
	if id, ok := o.ids[p]; ok {
		return id
	}
	o.ids[p] = len(o.ids) + 1
	return o.ids[p]
}

func (o *observer) piece(p *Piece) pieceState {
	square := "-"
	if pos, ok := p.ChessPosition(); ok {
		square = pos.String()
	}
	return pieceState{ID: o.id(p), Type: p.Type, Color: p.Color, Square: square, MoveCount: p.MoveCount}
}

func (o *observer) observe(m *Match) matchState {
	s := matchState{
		Turn:          m.turn,
		CurrentPlayer: m.currentPlayer,
		Check:         m.check,
		CheckMate:     m.checkMate,
		EnPassant:     o.id(m.enPassantVulnerable),
		Pending:       o.id(m.pendingPromotion),
	}
	for _, p := range m.piecesOnBoard {
		s.OnBoard = append(s.OnBoard, o.piece(p))
	}
	for _, p := range m.capturedPieces {
		s.Captured = append(s.Captured, o.piece(p))
	}
	for row := 0; row < BoardRows; row++ {
		for column := 0; column < BoardColumns; column++ {
			s.Board[row][column] = o.id(pieceAt(m.board, grid.Coordinate{Row: row, Column: column}))
		}
	}
	return s
}

func (p ChessPosition) mustCoordinate() grid.Coordinate {
	c, err := p.ToCoordinate()
	if err != nil {
		panic(err)
	}
	return c
}
