package model

// PieceView is what a renderer needs to draw a piece.
type PieceView struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

func (p *Piece) View() PieceView {
	return PieceView{Type: p.Type, Color: p.Color}
}

// CapturedPieces groups captured pieces by their own color.
type CapturedPieces struct {
	White []PieceView `json:"white"`
	Black []PieceView `json:"black"`
}

// Snapshot is a read-only copy of the match for presentation.
type Snapshot struct {
	Board               [][]*PieceView `json:"board"`
	Turn                int            `json:"turn"`
	CurrentPlayer       Color          `json:"currentPlayer"`
	Check               bool           `json:"check"`
	CheckMate           bool           `json:"checkMate"`
	EnPassantVulnerable *ChessPosition `json:"enPassantVulnerable"`
	PendingPromotion    *ChessPosition `json:"pendingPromotion"`
	CapturedPieces      CapturedPieces `json:"capturedPieces"`
	LastMove            *SimpleMove    `json:"lastMove"`
}

func (m *Match) Snapshot() Snapshot {
	board := make([][]*PieceView, m.board.Rows())
	for _, p := range m.piecesOnBoard {
		if p.Position == nil {
			continue
		}
		row := p.Position.Row
		if board[row] == nil {
			board[row] = make([]*PieceView, m.board.Columns())
		}
		view := p.View()
		board[row][p.Position.Column] = &view
	}
	for i := range board {
		if board[i] == nil {
			board[i] = make([]*PieceView, m.board.Columns())
		}
	}

	captured := CapturedPieces{White: []PieceView{}, Black: []PieceView{}}
	for _, p := range m.capturedPieces {
		if p.Color == White {
			captured.White = append(captured.White, p.View())
		} else {
			captured.Black = append(captured.Black, p.View())
		}
	}

	var lastMove *SimpleMove
	if m.lastMove != nil {
		mv := *m.lastMove
		lastMove = &mv
	}

	return Snapshot{
		Board:               board,
		Turn:                m.turn,
		CurrentPlayer:       m.currentPlayer,
		Check:               m.check,
		CheckMate:           m.checkMate,
		EnPassantVulnerable: coordinateOf(m.enPassantVulnerable),
		PendingPromotion:    coordinateOf(m.pendingPromotion),
		CapturedPieces:      captured,
		LastMove:            lastMove,
	}
}
