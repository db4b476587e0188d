package service

import (
	"fmt"

	"github.com/benbeisheim/chessmatch/internal/model"
	"github.com/benbeisheim/chessmatch/internal/ws"
)

// MatchService is the text-facing API over the match manager: squares and
// promotion codes arrive as strings and are parsed here.
type MatchService struct {
	matchManager *MatchManager
}

func NewMatchService(matchManager *MatchManager) *MatchService {
	return &MatchService{
		matchManager: matchManager,
	}
}

// NewMatchRequest describes a custom starting position. An empty request
// starts from the standard position.
type NewMatchRequest struct {
	Pieces []model.Placement `json:"pieces"`
	ToMove model.Color       `json:"toMove"`
}

func (ms *MatchService) CreateMatch(req *NewMatchRequest) (string, model.Snapshot, error) {
	var match *model.Match
	if req == nil || len(req.Pieces) == 0 {
		match = model.NewMatch()
	} else {
		toMove := req.ToMove
		if toMove == "" {
			toMove = model.White
		}
		var err error
		if match, err = model.NewCustomMatch(req.Pieces, toMove); err != nil {
			return "", model.Snapshot{}, fmt.Errorf("failed to create match: %w", err)
		}
	}
	session := ms.matchManager.AddMatch(match)
	return session.ID(), session.State(), nil
}

func (ms *MatchService) GetState(matchID string) (model.Snapshot, error) {
	session, err := ms.matchManager.GetSession(matchID)
	if err != nil {
		return model.Snapshot{}, err
	}
	return session.State(), nil
}

func (ms *MatchService) DeleteMatch(matchID string) error {
	return ms.matchManager.DeleteMatch(matchID)
}

func (ms *MatchService) Moves(matchID, square string) (MoveHints, error) {
	session, err := ms.matchManager.GetSession(matchID)
	if err != nil {
		return MoveHints{}, err
	}
	pos, err := model.ParseChessPosition(square)
	if err != nil {
		return MoveHints{}, err
	}
	return session.Moves(pos)
}

func (ms *MatchService) HandleMove(matchID string, move ws.MovePayload) (MoveResult, error) {
	session, err := ms.matchManager.GetSession(matchID)
	if err != nil {
		return MoveResult{}, err
	}
	from, err := model.ParseChessPosition(move.From)
	if err != nil {
		return MoveResult{}, err
	}
	to, err := model.ParseChessPosition(move.To)
	if err != nil {
		return MoveResult{}, err
	}
	return session.PerformMove(from, to)
}

// Promote replaces the pending promotion. Unlike the engine, which ignores
// unknown types, codes other than B, N, R and Q are an error here.
func (ms *MatchService) Promote(matchID string, code string) (PromotionResult, error) {
	session, err := ms.matchManager.GetSession(matchID)
	if err != nil {
		return PromotionResult{}, err
	}
	pieceType, ok := model.PromotionType(code)
	if !ok {
		return PromotionResult{}, fmt.Errorf("%w: %q", ErrInvalidPromotion, code)
	}
	return session.ReplacePromotedPiece(pieceType)
}

func (ms *MatchService) RegisterConnection(matchID, clientID string, sub Subscriber) error {
	return ms.matchManager.RegisterConnection(matchID, clientID, sub)
}

func (ms *MatchService) UnregisterConnection(matchID, clientID string, sub Subscriber) {
	ms.matchManager.UnregisterConnection(matchID, clientID, sub)
}
