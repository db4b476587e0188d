package model

import (
	"errors"
	"sort"
	"testing"

	"github.com/dylhunn/dragontoothmg"

	"github.com/benbeisheim/chessmatch/internal/testutil"
)

// The engine is checked against dragontoothmg, a bitboard move generator,
// in positions where the two rule sets agree: no promotions and no castling
// out of or through check.

func legalUCI(t *testing.T, m *Match) []string {
	t.Helper()
	var out []string
	for _, p := range m.PiecesOnBoard() {
		if p.Color != m.CurrentPlayer() {
			continue
		}
		from := FromCoordinate(*p.Position)
		legal, err := m.LegalMoves(from)
		if errors.Is(err, ErrNoPossibleMoves) {
			continue
		}
		testutil.AssertNoError(t, err, "LegalMoves(%s)", from)
		for _, to := range legal {
			out = append(out, from.String()+to.String())
		}
	}
	sort.Strings(out)
	return out
}

func referenceUCI(b *dragontoothmg.Board) []string {
	var out []string
	for _, mv := range b.GenerateLegalMoves() {
		out = append(out, mv.String())
	}
	sort.Strings(out)
	return out
}

func replay(t *testing.T, line []string) *Match {
	t.Helper()
	m := NewMatch()
	play(t, m, line...)
	return m
}

func findMove(t *testing.T, b *dragontoothmg.Board, uci string) dragontoothmg.Move {
	t.Helper()
	for _, mv := range b.GenerateLegalMoves() {
		if mv.String() == uci {
			return mv
		}
	}
	t.Fatalf("reference generator has no move %s in %s", uci, b.ToFen())
	return 0
}

// walk compares move lists at every node down to depth and returns the leaf count.
func walk(t *testing.T, b *dragontoothmg.Board, line []string, depth int) int {
	t.Helper()
	m := replay(t, line)
	got := legalUCI(t, m)
	testutil.AssertEqual(t, got, referenceUCI(b), "after %v", line)
	if depth == 1 {
		return len(got)
	}

	nodes := 0
	for _, mv := range b.GenerateLegalMoves() {
		unapply := b.Apply(mv)
		nodes += walk(t, b, append(append([]string(nil), line...), mv.String()), depth-1)
		unapply()
		if t.Failed() {
			return nodes
		}
	}
	return nodes
}

func TestPerft_StartPosition(t *testing.T) {
	if testing.Short() {
		t.Skip("perft walk in short mode")
	}
	b := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	testutil.AssertEqual(t, walk(t, &b, nil, 3), 8902)
}

func TestPerft_ScriptedLines(t *testing.T) {
	lines := map[string][]string{
		"en passant":       {"e2e4", "a7a6", "e4e5", "d7d5", "e5d6", "c7d6"},
		"check from queen": {"e2e4", "f7f6", "d1h5", "g7g6"},
		"castling":         {"e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "g8f6", "e1g1"},
		"black en passant": {"a2a3", "d7d5", "h2h3", "d5d4", "e2e4", "d4e3"},
	}

	for name, line := range lines {
		t.Run(name, func(t *testing.T) {
			b := dragontoothmg.ParseFen(dragontoothmg.Startpos)
			for i := 0; i <= len(line); i++ {
				m := replay(t, line[:i])
				testutil.AssertEqual(t, legalUCI(t, m), referenceUCI(&b), "after %v", line[:i])
				if i < len(line) {
					b.Apply(findMove(t, &b, line[i]))
				}
			}
		})
	}
}

func TestPerft_CheckLineHasSingleReply(t *testing.T) {
	m := replay(t, []string{"e2e4", "f7f6", "d1h5"})
	testutil.AssertTrue(t, m.Check(), "queen on h5 checks e8")
	testutil.AssertEqual(t, legalUCI(t, m), []string{"g7g6"})
}
