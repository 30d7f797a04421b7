package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/staff-service/internal/config"
	"github.com/spec-kit/staff-service/internal/domain"
	"github.com/spec-kit/staff-service/internal/events"
	"github.com/spec-kit/staff-service/internal/feed"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	feed       feed.Feed
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service. Sent messages are forwarded to
// f so that listening sessions see them.
func NewNotificationService(dispatcher events.Dispatcher, f feed.Feed, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		feed:       f,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventMessageSent, n.handleMessageSent)
	n.dispatcher.Subscribe(events.EventMessageRead, n.handleMessageRead)
}

func (n *NotificationService) handleMessageSent(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MessageSentPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	n.logger.Info("MessageSent",
		zap.String("message_id", payload.MessageID),
		zap.String("sender_id", payload.SenderID),
		zap.String("receiver_id", payload.ReceiverID))

	if n.feed != nil {
		msg := domain.Message{
			ID:         payload.MessageID,
			SenderID:   payload.SenderID,
			ReceiverID: payload.ReceiverID,
			Subject:    payload.Subject,
			Content:    payload.Content,
			CreatedAt:  payload.CreatedAt,
		}
		if err := n.feed.Publish(ctx, msg); err != nil {
			return fmt.Errorf("publish to feed: %w", err)
		}
	}

	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleMessageRead(ctx context.Context, event events.Event) error {
	n.logger.Debug("MessageRead", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
}
