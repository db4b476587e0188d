package service

import (
	"io"
	"sync"

	"github.com/benbeisheim/chessmatch/internal/model"
	"github.com/benbeisheim/chessmatch/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

// Subscriber receives state broadcasts for a match. *websocket.Conn
// satisfies it, but writes from several goroutines must be serialized by
// the implementation. Subscribers that implement io.Closer are closed when
// their match is deleted.
type Subscriber interface {
	WriteJSON(v interface{}) error
}

// MoveHints is what a client needs to highlight a selected piece.
type MoveHints struct {
	Square        model.ChessPosition   `json:"square"`
	PossibleMoves model.MoveMatrix      `json:"possibleMoves"`
	LegalMoves    []model.ChessPosition `json:"legalMoves"`
}

type MoveResult struct {
	Captured *model.PieceView `json:"captured"`
	State    model.Snapshot   `json:"state"`
}

type PromotionResult struct {
	Piece model.PieceView `json:"piece"`
	State model.Snapshot  `json:"state"`
}

// Session owns one match. Every call takes the session lock, so a match is
// only ever touched by one goroutine at a time.
type Session struct {
	id string
	mu sync.Mutex
	// sendMu keeps broadcasts in move order. It is taken before mu is
	// released, so socket writes happen outside mu.
	sendMu      sync.Mutex
	match       *model.Match
	subscribers map[string]Subscriber
}

func newSession(id string, match *model.Match) *Session {
	return &Session{
		id:          id,
		match:       match,
		subscribers: make(map[string]Subscriber),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) State() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.Snapshot()
}

func (s *Session) Moves(square model.ChessPosition) (MoveHints, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	possible, err := s.match.PossibleMoves(square)
	if err != nil {
		return MoveHints{}, err
	}
	legal, err := s.match.LegalMoves(square)
	if err != nil {
		return MoveHints{}, err
	}
	if legal == nil {
		legal = []model.ChessPosition{}
	}
	return MoveHints{Square: square, PossibleMoves: possible, LegalMoves: legal}, nil
}

// PerformMove applies the move and broadcasts the new state to every
// subscriber before returning.
func (s *Session) PerformMove(from, to model.ChessPosition) (MoveResult, error) {
	s.mu.Lock()
	captured, err := s.match.PerformMove(from, to)
	if err != nil {
		s.mu.Unlock()
		return MoveResult{}, err
	}
	result := MoveResult{State: s.match.Snapshot()}
	if captured != nil {
		view := captured.View()
		result.Captured = &view
	}
	if result.State.CheckMate {
		log.Infow("checkmate", "match", s.id, "winner", string(result.State.CurrentPlayer), "turn", result.State.Turn)
	}
	s.broadcastAndUnlock(result.State, s.subscriberList())
	return result, nil
}

func (s *Session) ReplacePromotedPiece(pieceType model.PieceType) (PromotionResult, error) {
	s.mu.Lock()
	piece, err := s.match.ReplacePromotedPiece(pieceType)
	if err != nil {
		s.mu.Unlock()
		return PromotionResult{}, err
	}
	result := PromotionResult{Piece: piece.View(), State: s.match.Snapshot()}
	s.broadcastAndUnlock(result.State, s.subscriberList())
	return result, nil
}

// Subscribe registers sub under clientID, replacing any previous
// subscription of that client, and sends it the current state.
func (s *Session) Subscribe(clientID string, sub Subscriber) error {
	s.mu.Lock()
	s.subscribers[clientID] = sub
	log.Debugw("subscribed", "match", s.id, "client", clientID, "subscribers", len(s.subscribers))
	failed := s.broadcastAndUnlock(s.match.Snapshot(), []subscription{{clientID: clientID, sub: sub}})
	if len(failed) > 0 {
		return failed[0].err
	}
	return nil
}

// Unsubscribe removes sub. A newer subscription of the same client is left
// in place.
func (s *Session) Unsubscribe(clientID string, sub Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.subscribers[clientID]; ok && current == sub {
		delete(s.subscribers, clientID)
	}
}

// close forgets every subscriber and closes those that can be closed.
func (s *Session) close() {
	s.mu.Lock()
	subs := s.subscriberList()
	s.subscribers = make(map[string]Subscriber)
	s.mu.Unlock()

	for _, entry := range subs {
		if closer, ok := entry.sub.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				log.Debugw("closing subscriber", "match", s.id, "client", entry.clientID, "error", err)
			}
		}
	}
}

type subscription struct {
	clientID string
	sub      Subscriber
	err      error
}

// subscriberList must be called with s.mu held.
func (s *Session) subscriberList() []subscription {
	subs := make([]subscription, 0, len(s.subscribers))
	for clientID, sub := range s.subscribers {
		subs = append(subs, subscription{clientID: clientID, sub: sub})
	}
	return subs
}

// broadcastAndUnlock must be called with s.mu held and releases it. It
// writes state to subs, drops the ones that fail and returns them.
func (s *Session) broadcastAndUnlock(state model.Snapshot, subs []subscription) []subscription {
	s.sendMu.Lock()
	s.mu.Unlock()

	var failed []subscription
	msg, err := ws.NewMessage(ws.MessageTypeState, state)
	if err != nil {
		log.Errorw("encoding state", "match", s.id, "error", err)
		s.sendMu.Unlock()
		return nil
	}
	for _, entry := range subs {
		if err := entry.sub.WriteJSON(msg); err != nil {
			entry.err = err
			failed = append(failed, entry)
		}
	}
	s.sendMu.Unlock()

	for _, entry := range failed {
		log.Warnw("dropping subscriber", "match", s.id, "client", entry.clientID, "error", entry.err)
		s.Unsubscribe(entry.clientID, entry.sub)
	}
	return failed
}
