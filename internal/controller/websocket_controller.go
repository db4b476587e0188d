package controller

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessmatch/internal/middleware"
	"github.com/benbeisheim/chessmatch/internal/service"
	"github.com/benbeisheim/chessmatch/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	matchService *service.MatchService
}

func NewWebSocketController(matchService *service.MatchService) *WebSocketController {
	return &WebSocketController{
		matchService: matchService,
	}
}

// jsonWriter is the write half of a connection. Broadcasts from other
// connections and error replies from the read loop share it.
type jsonWriter interface {
	WriteJSON(v interface{}) error
	Close() error
}

// lockedConn serializes writes to a single connection.
type lockedConn struct {
	mu   sync.Mutex
	conn jsonWriter
}

func (lc *lockedConn) WriteJSON(v interface{}) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.WriteJSON(v)
}

// Close closes the connection; the read loop then ends and unregisters it.
func (lc *lockedConn) Close() error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.Close()
}

// HandleConnection runs for the lifetime of one websocket connection.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	matchID := c.Params("matchId")
	clientID, _ := c.Locals(middleware.ClientIDLocal).(string)
	conn := &lockedConn{conn: c}

	if err := wsc.matchService.RegisterConnection(matchID, clientID, conn); err != nil {
		log.Warnw("failed to register connection", "match", matchID, "client", clientID, "error", err)
		_ = conn.WriteJSON(ws.ErrorMessage(err))
		c.Close()
		return
	}
	log.Infow("websocket connected", "match", matchID, "client", clientID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugw("read error", "match", matchID, "client", clientID, "error", err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			_ = conn.WriteJSON(ws.ErrorMessage(fmt.Errorf("parse error: %w", err)))
			continue
		}
		if err := wsc.handleMessage(matchID, msg); err != nil {
			log.Debugw("message rejected", "match", matchID, "client", clientID, "type", string(msg.Type), "error", err)
			_ = conn.WriteJSON(ws.ErrorMessage(err))
		}
	}

	wsc.matchService.UnregisterConnection(matchID, clientID, conn)
	log.Infow("websocket disconnected", "match", matchID, "client", clientID)
}

// handleMessage applies a client message. Accepted changes reach the client
// through the session broadcast, so only failures are returned.
func (wsc *WebSocketController) handleMessage(matchID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		_, err := wsc.matchService.HandleMove(matchID, move)
		return err

	case ws.MessageTypePromote:
		var promotion ws.PromotePayload
		if err := json.Unmarshal(msg.Payload, &promotion); err != nil {
			return err
		}
		_, err := wsc.matchService.Promote(matchID, promotion.Type)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
