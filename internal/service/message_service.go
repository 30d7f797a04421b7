package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/staff-service/internal/domain"
	"github.com/spec-kit/staff-service/internal/events"
	"github.com/spec-kit/staff-service/internal/feed"
	"github.com/spec-kit/staff-service/internal/messaging"
	"github.com/spec-kit/staff-service/internal/repository"
	apperrors "github.com/spec-kit/staff-service/pkg/util/errorutil"
)

const previewLength = 80

// MessageService is the message store used by sessions. Every acknowledged
// write is announced on the dispatcher.
type MessageService struct {
	messages   repository.MessageRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	feed       feed.Feed
	logger     *zap.Logger
	sessionOps []messaging.Option
}

// MessageDependencies encapsulates repositories and transports for messaging.
type MessageDependencies struct {
	MessageRepo repository.MessageRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
	Feed        feed.Feed
}

// NewMessageService builds the service. opts are applied to every session it
// creates.
func NewMessageService(deps MessageDependencies, logger *zap.Logger, opts ...messaging.Option) *MessageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageService{
		messages:   deps.MessageRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		feed:       deps.Feed,
		logger:     logger,
		sessionOps: opts,
	}
}

var (
	_ messaging.Store            = (*MessageService)(nil)
	_ messaging.RecipientChecker = (*MessageService)(nil)
)

// NewSession opens a message session for userID.
func (s *MessageService) NewSession(userID string) *messaging.Session {
	return messaging.NewSession(userID, s, s.feed, s.logger, s.sessionOps...)
}

// ListForUser implements messaging.Store.
func (s *MessageService) ListForUser(ctx context.Context, userID string) ([]domain.Message, error) {
	return s.messages.ListForUser(ctx, userID)
}

// Insert implements messaging.Store and publishes EventMessageSent once the
// repository accepts the row.
func (s *MessageService) Insert(ctx context.Context, msg *domain.Message) error {
	if err := s.messages.Insert(ctx, msg); err != nil {
		return err
	}
	s.publish(ctx, events.Event{
		Type:    events.EventMessageSent,
		ActorID: msg.SenderID,
		Payload: events.MessageSentPayload{
			MessageID:      msg.ID,
			SenderID:       msg.SenderID,
			ReceiverID:     msg.ReceiverID,
			Subject:        msg.Subject,
			ContentPreview: preview(msg.Content),
			Content:        msg.Content,
			CreatedAt:      msg.CreatedAt,
		},
	})
	return nil
}

// CheckRecipient implements messaging.RecipientChecker. Only existing admin,
// doctor and nurse accounts can be messaged.
func (s *MessageService) CheckRecipient(ctx context.Context, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: unknown user %q", messaging.ErrInvalidRecipient, userID)
		}
		s.logger.Warn("failed to load recipient", zap.String("recipient_id", userID), zap.Error(err))
		return fmt.Errorf("%w: %w", messaging.ErrLoadFailed, err)
	}
	if !messaging.CanReceive(user.Role) {
		return fmt.Errorf("%w: role %q cannot receive messages", messaging.ErrInvalidRecipient, user.Role)
	}
	return nil
}

// MarkRead implements messaging.Store.
func (s *MessageService) MarkRead(ctx context.Context, id string, at time.Time) error {
	if err := s.messages.MarkRead(ctx, id, at); err != nil {
		return err
	}
	s.publish(ctx, events.Event{
		Type:    events.EventMessageRead,
		Payload: events.MessageReadPayload{MessageID: id, ReadAt: at},
	})
	return nil
}

// GetForUser returns message id when userID sent or received it.
func (s *MessageService) GetForUser(ctx context.Context, userID, id string) (*domain.Message, error) {
	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("message", map[string]any{"id": id})
		}
		return nil, apperrors.NewLoadFailed("message", err)
	}
	if !messaging.Involves(*msg, userID) {
		return nil, apperrors.NewNotFound("message", map[string]any{"id": id})
	}
	return msg, nil
}

// Recipients lists who can be messaged, grouped by role.
func (s *MessageService) Recipients(ctx context.Context) ([]messaging.RecipientGroup, error) {
	users, err := s.users.ListByRoles(ctx, messaging.RecipientRoles)
	if err != nil {
		s.logger.Warn("failed to load recipients", zap.Error(err))
		return nil, apperrors.NewLoadFailed("recipients", err)
	}
	return messaging.RecipientCandidates(users), nil
}

func (s *MessageService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func preview(content string) string {
	if utf8.RuneCountInString(content) <= previewLength {
		return content
	}
	runes := []rune(content)
	return string(runes[:previewLength]) + "…"
}
