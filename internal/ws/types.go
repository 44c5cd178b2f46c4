package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypePromotion MessageType = "promotion"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload carries a move in coordinate form, e.g. "e2e4" or "e7e8n".
type MovePayload struct {
	Move string `json:"move"`
}

// PromotionPayload selects the promotion piece: one of q, r, b, n.
type PromotionPayload struct {
	Piece string `json:"piece"`
}

// ErrorPayload is sent back when an inbound message is rejected.
type ErrorPayload struct {
	Error string `json:"error"`
}
