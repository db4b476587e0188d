package service

import (
	"sync"

	"github.com/benbeisheim/chessmatch/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// MatchManager is the registry of live sessions keyed by match id.
type MatchManager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

func NewMatchManager() *MatchManager {
	return &MatchManager{
		sessions: make(map[string]*Session),
	}
}

// AddMatch registers match under a fresh uuid.
func (mm *MatchManager) AddMatch(match *model.Match) *Session {
	session := newSession(uuid.New().String(), match)

	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.sessions[session.id] = session
	log.Infow("match created", "match", session.id, "matches", len(mm.sessions))
	return session
}

func (mm *MatchManager) GetSession(matchID string) (*Session, error) {
	mm.mu.RLock()
	defer mm.mu.RUnlock()

	session, exists := mm.sessions[matchID]
	if !exists {
		return nil, ErrMatchNotFound
	}
	return session, nil
}

func (mm *MatchManager) DeleteMatch(matchID string) error {
	mm.mu.Lock()
	session, exists := mm.sessions[matchID]
	delete(mm.sessions, matchID)
	mm.mu.Unlock()

	if !exists {
		return ErrMatchNotFound
	}
	session.close()
	log.Infow("match deleted", "match", matchID)
	return nil
}

func (mm *MatchManager) Count() int {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	return len(mm.sessions)
}

func (mm *MatchManager) RegisterConnection(matchID, clientID string, sub Subscriber) error {
	session, err := mm.GetSession(matchID)
	if err != nil {
		return err
	}
	return session.Subscribe(clientID, sub)
}

func (mm *MatchManager) UnregisterConnection(matchID, clientID string, sub Subscriber) {
	session, err := mm.GetSession(matchID)
	if err != nil {
		return
	}
	session.Unsubscribe(clientID, sub)
	log.Debugw("connection unregistered", "match", matchID, "client", clientID)
}
