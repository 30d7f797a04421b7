package handlers

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/staff-service/internal/api/dto"
	"github.com/spec-kit/staff-service/internal/auth"
	"github.com/spec-kit/staff-service/internal/domain"
	"github.com/spec-kit/staff-service/internal/feed"
	"github.com/spec-kit/staff-service/internal/messaging"
	"github.com/spec-kit/staff-service/internal/service"
	apperrors "github.com/spec-kit/staff-service/pkg/util/errorutil"
)

const defaultHeartbeat = 25 * time.Second

// MessagesHandler exposes the caller's message session over HTTP.
type MessagesHandler struct {
	messages  *service.MessageService
	logger    *zap.Logger
	heartbeat time.Duration
}

// NewMessagesHandler constructs handler. A non-positive heartbeat uses the default.
func NewMessagesHandler(messageService *service.MessageService, logger *zap.Logger, heartbeat time.Duration) *MessagesHandler {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessagesHandler{messages: messageService, logger: logger, heartbeat: heartbeat}
}

// List handles GET /messages.
func (h *MessagesHandler) List(c *fiber.Ctx) error {
	session, err := h.loadedSession(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMessageList(session.Search(c.Query("search")))})
}

// Compose handles POST /messages.
func (h *MessagesHandler) Compose(c *fiber.Ctx) error {
	var req dto.ComposeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	session, err := h.session(c)
	if err != nil {
		return err
	}
	msg, err := session.Compose(c.UserContext(), req.ToInput())
	if err != nil {
		return mapMessagingError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewMessageResponse(*msg)})
}

// Open handles POST /messages/:id/open.
func (h *MessagesHandler) Open(c *fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}
	msg, err := h.messages.GetForUser(c.UserContext(), session.UserID(), c.Params("id"))
	if err != nil {
		return err
	}
	opened, err := session.Open(c.UserContext(), *msg)
	if err != nil {
		return mapMessagingError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewMessageResponse(opened)})
}

// Reply handles POST /messages/:id/reply.
func (h *MessagesHandler) Reply(c *fiber.Ctx) error {
	var req dto.ReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	session, err := h.session(c)
	if err != nil {
		return err
	}
	original, err := h.messages.GetForUser(c.UserContext(), session.UserID(), c.Params("id"))
	if err != nil {
		return err
	}
	reply, err := session.Reply(c.UserContext(), *original, req.Content)
	if err != nil {
		return mapMessagingError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewMessageResponse(*reply)})
}

// Recipients handles GET /messages/recipients.
func (h *MessagesHandler) Recipients(c *fiber.Ctx) error {
	groups, err := h.messages.Recipients(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRecipientGroups(groups)})
}

// Stream handles GET /messages/stream as Server-Sent Events. Each message
// delivered to the caller becomes a "message" event. The feed subscription
// lives exactly as long as the connection. The stream carries only messages
// inserted after the subscription opens; clients fetch history from GET /messages.
func (h *MessagesHandler) Stream(c *fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}
	encode := c.App().Config().JSONEncoder
	logger := h.logger.With(zap.String("user_id", session.UserID()))

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		inserts := make(chan domain.Message, 16)
		done := make(chan error, 1)
		go func() {
			done <- session.Listen(ctx, func(m domain.Message) {
				select {
				case inserts <- m:
				case <-ctx.Done():
				}
			})
		}()

		ticker := time.NewTicker(h.heartbeat)
		defer ticker.Stop()

		if !writeEvent(w, ": connected\n\n") {
			return
		}
		send := func(msg domain.Message) bool {
			payload, err := encode(dto.NewMessageResponse(msg))
			if err != nil {
				logger.Warn("failed to encode stream event", zap.Error(err))
				return true
			}
			return writeEvent(w, fmt.Sprintf("event: message\nid: %s\ndata: %s\n\n", msg.ID, payload))
		}

		for {
			select {
			case msg := <-inserts:
				if !send(msg) {
					logger.Debug("stream client disconnected")
					return
				}
			case <-ticker.C:
				if !writeEvent(w, ": ping\n\n") {
					logger.Debug("stream client disconnected")
					return
				}
			case err := <-done:
				if err != nil && !errors.Is(err, feed.ErrClosed) {
					logger.Warn("message stream ended", zap.Error(err))
				}
				// flush what Listen handed over before it returned
				for {
					select {
					case msg := <-inserts:
						if !send(msg) {
							return
						}
					default:
						return
					}
				}
			}
		}
	})
	return nil
}

func writeEvent(w *bufio.Writer, frame string) bool {
	if _, err := w.WriteString(frame); err != nil {
		return false
	}
	return w.Flush() == nil
}

func (h *MessagesHandler) session(c *fiber.Ctx) (*messaging.Session, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return h.messages.NewSession(principal.User.ID), nil
}

func (h *MessagesHandler) loadedSession(c *fiber.Ctx) (*messaging.Session, error) {
	session, err := h.session(c)
	if err != nil {
		return nil, err
	}
	if err := session.Load(c.UserContext()); err != nil {
		return nil, mapMessagingError(err)
	}
	return session, nil
}

func mapMessagingError(err error) error {
	var verr *messaging.ValidationError
	switch {
	case errors.As(err, &verr):
		return apperrors.NewValidationError("missing required fields", map[string]any{"fields": verr.Fields})
	case errors.Is(err, messaging.ErrInvalidRecipient):
		return apperrors.NewValidationError("recipient cannot receive messages", map[string]any{"fields": []string{"recipient_id"}})
	case errors.Is(err, messaging.ErrLoadFailed):
		return apperrors.NewLoadFailed("messages", err)
	case errors.Is(err, messaging.ErrWriteFailed):
		return apperrors.NewWriteFailed("message", err)
	default:
		return err
	}
}
