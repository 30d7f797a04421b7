package dto

import (
	"time"

	"github.com/spec-kit/staff-service/internal/domain"
	"github.com/spec-kit/staff-service/internal/messaging"
)

// ComposeRequest payload for POST /messages.
type ComposeRequest struct {
	RecipientID string `json:"recipient_id"`
	Subject     string `json:"subject"`
	Content     string `json:"content"`
}

// ReplyRequest payload for POST /messages/:id/reply.
type ReplyRequest struct {
	Content string `json:"content"`
}

// MessageResponse is the wire form of a message.
type MessageResponse struct {
	ID         string     `json:"id"`
	SenderID   string     `json:"sender_id"`
	ReceiverID string     `json:"receiver_id"`
	Subject    string     `json:"subject"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
	Read       bool       `json:"read"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
}

// RecipientGroupResponse lists recipients sharing a role.
type RecipientGroupResponse struct {
	Role  string         `json:"role"`
	Users []UserResponse `json:"users"`
}

// ToInput converts the request to a compose form.
func (r ComposeRequest) ToInput() messaging.ComposeInput {
	return messaging.ComposeInput{RecipientID: r.RecipientID, Subject: r.Subject, Content: r.Content}
}

// NewMessageResponse maps a message.
func NewMessageResponse(m domain.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Subject:    m.Subject,
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
		Read:       m.Read,
		ReadAt:     m.ReadAt,
	}
}

// NewMessageList maps messages preserving order.
func NewMessageList(msgs []domain.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, NewMessageResponse(m))
	}
	return out
}

// NewRecipientGroups maps grouped recipients.
func NewRecipientGroups(groups []messaging.RecipientGroup) []RecipientGroupResponse {
	out := make([]RecipientGroupResponse, 0, len(groups))
	for _, g := range groups {
		users := make([]UserResponse, 0, len(g.Users))
		for _, u := range g.Users {
			resp := NewUserResponse(u)
			resp.Email = ""
			users = append(users, resp)
		}
		out = append(out, RecipientGroupResponse{Role: string(g.Role), Users: users})
	}
	return out
}
