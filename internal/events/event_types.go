package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMessageSent EventType = "message_sent"
	EventMessageRead EventType = "message_read"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MessageSentPayload carries the stored message so subscribers can fan it out
// without a second read.
type MessageSentPayload struct {
	MessageID      string    `json:"message_id"`
	SenderID       string    `json:"sender_id"`
	ReceiverID     string    `json:"receiver_id"`
	Subject        string    `json:"subject"`
	ContentPreview string    `json:"content_preview"`
	Content        string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// MessageReadPayload payload.
type MessageReadPayload struct {
	MessageID string    `json:"message_id"`
	ReadAt    time.Time `json:"read_at"`
}
