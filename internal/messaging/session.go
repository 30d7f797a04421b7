// Package messaging holds the per-user message session: a cached inbox kept in
// step with the store and the change feed.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/staff-service/internal/domain"
	"github.com/spec-kit/staff-service/internal/feed"
)

var (
	// ErrLoadFailed wraps store read failures.
	ErrLoadFailed = errors.New("load failed")
	// ErrWriteFailed wraps rejected inserts and updates.
	ErrWriteFailed = errors.New("write failed")
	// ErrNoFeed is returned by Listen when the session has no change feed.
	ErrNoFeed = errors.New("no change feed configured")
	// ErrInvalidRecipient means the recipient does not exist or may not
	// receive messages.
	ErrInvalidRecipient = errors.New("invalid recipient")
)

// Store is the source of truth for messages.
type Store interface {
	ListForUser(ctx context.Context, userID string) ([]domain.Message, error)
	Insert(ctx context.Context, msg *domain.Message) error
	MarkRead(ctx context.Context, id string, at time.Time) error
}

// RecipientChecker is implemented by stores that can vouch for a recipient.
// Compose consults it before inserting; it returns ErrInvalidRecipient for an
// unknown id or a role that cannot receive messages.
type RecipientChecker interface {
	CheckRecipient(ctx context.Context, userID string) error
}

// Session is one user's view of their messages. The inbox it holds is a cache
// of the store; every mutation of it goes through the session's lock, so
// concurrent callers are applied one at a time.
type Session struct {
	userID string
	store  Store
	feed   feed.Feed
	logger *zap.Logger
	now    func() time.Time
	newID  func() string

	mu       sync.Mutex
	messages []domain.Message
}

// Option customizes a Session.
type Option func(*Session)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithIDGenerator overrides how new message ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) { s.newID = fn }
}

// NewSession creates a session for userID. f may be nil when live updates are
// not needed.
func NewSession(userID string, store Store, f feed.Feed, logger *zap.Logger, opts ...Option) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		userID:   userID,
		store:    store,
		feed:     f,
		logger:   logger.With(zap.String("user_id", userID)),
		now:      time.Now,
		newID:    uuid.NewString,
		messages: []domain.Message{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UserID returns the session owner.
func (s *Session) UserID() string {
	return s.userID
}

// Load replaces the cache with every message the user sent or received,
// newest first. On failure the existing cache is kept.
func (s *Session) Load(ctx context.Context) error {
	fetched, err := s.store.ListForUser(ctx, s.userID)
	if err != nil {
		s.logger.Warn("failed to load messages", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	mine := make([]domain.Message, 0, len(fetched))
	for _, msg := range fetched {
		if Involves(msg, s.userID) {
			mine = append(mine, msg)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = SortNewestFirst(mine)
	return nil
}

// Inbox returns a copy of the cached messages, newest first.
func (s *Session) Inbox() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Search filters the cached inbox by subject or content.
func (s *Session) Search(term string) []domain.Message {
	return FilterBySearch(s.Inbox(), term)
}

// Compose validates in, stores a new unread message from the session user and
// adds it to the cache once the store has accepted it.
func (s *Session) Compose(ctx context.Context, in ComposeInput) (*domain.Message, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if checker, ok := s.store.(RecipientChecker); ok {
		if err := checker.CheckRecipient(ctx, in.RecipientID); err != nil {
			return nil, err
		}
	}

	msg := domain.Message{
		ID:         s.newID(),
		SenderID:   s.userID,
		ReceiverID: in.RecipientID,
		Subject:    in.Subject,
		Content:    in.Content,
		CreatedAt:  s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Insert(ctx, &msg); err != nil {
		s.logger.Warn("failed to send message", zap.String("receiver_id", msg.ReceiverID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	s.insertLocked(msg)
	return &msg, nil
}

// Reply sends content to the sender of original with a "Re: " subject.
func (s *Session) Reply(ctx context.Context, original domain.Message, content string) (*domain.Message, error) {
	return s.Compose(ctx, ReplyInput(original.SenderID, original.Subject, content))
}

// Open marks msg read when the session user is its receiver and it is still
// unread. In every other case msg is returned unchanged. If the store rejects
// the update the message stays unread.
func (s *Session) Open(ctx context.Context, msg domain.Message) (domain.Message, error) {
	if msg.ReceiverID != s.userID || msg.Read {
		return msg, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	at := s.now()
	if err := s.store.MarkRead(ctx, msg.ID, at); err != nil {
		s.logger.Warn("failed to mark message read", zap.String("message_id", msg.ID), zap.Error(err))
		return msg, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	msg.Read = true
	msg.ReadAt = &at
	for i := range s.messages {
		if s.messages[i].ID == msg.ID {
			s.messages[i].Read = true
			s.messages[i].ReadAt = &at
			break
		}
	}
	return msg, nil
}

// Listen subscribes to inserts addressed to the session user and applies each
// one to the cache, calling onInsert for messages not seen before. It returns
// nil when ctx ends and feed.ErrClosed if the feed goes away. The subscription
// is released on every return path.
func (s *Session) Listen(ctx context.Context, onInsert func(domain.Message)) error {
	if s.feed == nil {
		return ErrNoFeed
	}
	sub, err := s.feed.Subscribe(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	defer func() {
		if cerr := sub.Close(); cerr != nil {
			s.logger.Warn("failed to release feed subscription", zap.Error(cerr))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-sub.Events():
			if !ok {
				return feed.ErrClosed
			}
			if msg.ReceiverID != s.userID {
				continue
			}
			if s.apply(msg) && onInsert != nil {
				onInsert(msg)
			}
		}
	}
}

func (s *Session) apply(msg domain.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.messages {
		if existing.ID == msg.ID {
			return false
		}
	}
	s.insertLocked(msg)
	return true
}

// insertLocked places msg ahead of every cached message that is not newer
// than it. For a fresh message that is the front of the list.
func (s *Session) insertLocked(msg domain.Message) {
	pos := len(s.messages)
	for i, existing := range s.messages {
		if !existing.CreatedAt.After(msg.CreatedAt) {
			pos = i
			break
		}
	}
	s.messages = append(s.messages, domain.Message{})
	copy(s.messages[pos+1:], s.messages[pos:])
	s.messages[pos] = msg
}
