package feed

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/staff-service/internal/domain"
)

const channelPrefix = "messages:receiver:"

// RedisFeed carries message inserts over Redis Pub/Sub, one channel per receiver.
type RedisFeed struct {
	client     *redis.Client
	logger     *zap.Logger
	bufferSize int

	mu     sync.Mutex
	subs   map[*redisSubscription]struct{}
	closed bool
}

// NewRedisFeed wraps an existing client.
func NewRedisFeed(client *redis.Client, bufferSize int, logger *zap.Logger) *RedisFeed {
	if bufferSize <= 0 {
		bufferSize = 16
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisFeed{
		client:     client,
		logger:     logger,
		bufferSize: bufferSize,
		subs:       make(map[*redisSubscription]struct{}),
	}
}

// ChannelFor returns the Pub/Sub channel used for receiverID.
func ChannelFor(receiverID string) string {
	return channelPrefix + receiverID
}

// Publish sends msg to its receiver's channel.
func (f *RedisFeed) Publish(ctx context.Context, msg domain.Message) error {
	payload, err := json.Marshal(newInsertEvent(msg))
	if err != nil {
		return err
	}
	return f.client.Publish(ctx, ChannelFor(msg.ReceiverID), payload).Err()
}

// Subscribe opens a Pub/Sub subscription and waits for Redis to confirm it.
func (f *RedisFeed) Subscribe(ctx context.Context, receiverID string) (Subscription, error) {
	f.mu.Lock()
	closed := f.closed
	f.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	ps := f.client.Subscribe(ctx, ChannelFor(receiverID))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}

	sub := &redisSubscription{
		pubsub: ps,
		events: make(chan domain.Message, f.bufferSize),
		done:   make(chan struct{}),
		feed:   f,
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		_ = ps.Close()
		return nil, ErrClosed
	}
	f.subs[sub] = struct{}{}
	f.mu.Unlock()

	go sub.pump(f.logger.With(zap.String("receiver_id", receiverID)))
	return sub, nil
}

// Close releases every open subscription. The Redis client stays open.
func (f *RedisFeed) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	subs := f.subs
	f.subs = make(map[*redisSubscription]struct{})
	f.mu.Unlock()

	var errs []error
	for sub := range subs {
		if err := sub.release(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type redisSubscription struct {
	pubsub *redis.PubSub
	events chan domain.Message
	done   chan struct{}
	once   sync.Once
	feed   *RedisFeed
}

func (s *redisSubscription) Events() <-chan domain.Message {
	return s.events
}

func (s *redisSubscription) Close() error {
	s.feed.mu.Lock()
	delete(s.feed.subs, s)
	s.feed.mu.Unlock()
	return s.release()
}

func (s *redisSubscription) release() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
	})
	return err
}

func (s *redisSubscription) pump(logger *zap.Logger) {
	defer close(s.events)
	ch := s.pubsub.Channel()
	for {
		select {
		case <-s.done:
			return
		case raw, ok := <-ch:
			if !ok {
				return
			}
			var evt insertEvent
			if err := json.Unmarshal([]byte(raw.Payload), &evt); err != nil {
				logger.Warn("discarding malformed feed payload", zap.Error(err))
				continue
			}
			select {
			case s.events <- evt.toDomain():
			case <-s.done:
				return
			}
		}
	}
}

// insertEvent is the wire shape of a message insert.
type insertEvent struct {
	ID         string     `json:"id"`
	SenderID   string     `json:"sender_id"`
	ReceiverID string     `json:"receiver_id"`
	Subject    string     `json:"subject"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
}

func newInsertEvent(msg domain.Message) insertEvent {
	return insertEvent{
		ID:         msg.ID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Subject:    msg.Subject,
		Content:    msg.Content,
		CreatedAt:  msg.CreatedAt,
		ReadAt:     msg.ReadAt,
	}
}

func (e insertEvent) toDomain() domain.Message {
	return domain.Message{
		ID:         e.ID,
		SenderID:   e.SenderID,
		ReceiverID: e.ReceiverID,
		Subject:    e.Subject,
		Content:    e.Content,
		CreatedAt:  e.CreatedAt,
		Read:       e.ReadAt != nil,
		ReadAt:     e.ReadAt,
	}
}
