package domain

import "time"

// Message is a direct message between two users.
type Message struct {
	ID         string
	SenderID   string
	ReceiverID string
	Subject    string
	Content    string
	CreatedAt  time.Time
	Read       bool
	ReadAt     *time.Time
}
