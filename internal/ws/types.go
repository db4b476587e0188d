package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages exchanged on a match socket
type MessageType string

const (
	// Client -> server.
	MessageTypeMove    MessageType = "move"
	MessageTypePromote MessageType = "promote"

	// Server -> client.
	MessageTypeState MessageType = "state"
	MessageTypeError MessageType = "error"
)

// Message is the envelope for every websocket frame
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload carries a move in algebraic squares, e.g. {"from":"e2","to":"e4"}.
type MovePayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// PromotePayload carries a promotion code: B, N, R or Q.
type PromotePayload struct {
	Type string `json:"type"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage marshals payload into a message of the given type.
func NewMessage(messageType MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: messageType, Payload: raw}, nil
}

func ErrorMessage(err error) Message {
	// ErrorPayload always marshals.
	msg, _ := NewMessage(MessageTypeError, ErrorPayload{Error: err.Error()})
	return msg
}
