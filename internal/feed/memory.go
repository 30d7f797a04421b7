package feed

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/staff-service/internal/domain"
)

// MemoryFeed fans messages out to in-process subscribers.
type MemoryFeed struct {
	mu         sync.RWMutex
	bufferSize int
	logger     *zap.Logger
	nextID     uint64
	listeners  map[string]map[uint64]*memorySubscription
	closed     bool
}

// NewMemoryFeed creates a feed whose subscriptions buffer up to bufferSize
// messages. A subscriber that falls further behind misses messages.
func NewMemoryFeed(bufferSize int, logger *zap.Logger) *MemoryFeed {
	if bufferSize <= 0 {
		bufferSize = 16
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryFeed{
		bufferSize: bufferSize,
		logger:     logger,
		listeners:  make(map[string]map[uint64]*memorySubscription),
	}
}

// Publish delivers msg to every subscriber of msg.ReceiverID without blocking.
func (f *MemoryFeed) Publish(ctx context.Context, msg domain.Message) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return ErrClosed
	}
	for _, sub := range f.listeners[msg.ReceiverID] {
		sub.deliver(msg, f.logger)
	}
	return nil
}

// Subscribe registers a subscription for receiverID.
func (f *MemoryFeed) Subscribe(ctx context.Context, receiverID string) (Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, ErrClosed
	}
	f.nextID++
	sub := &memorySubscription{
		id:         f.nextID,
		receiverID: receiverID,
		events:     make(chan domain.Message, f.bufferSize),
		feed:       f,
	}
	if f.listeners[receiverID] == nil {
		f.listeners[receiverID] = make(map[uint64]*memorySubscription)
	}
	f.listeners[receiverID][sub.id] = sub
	return sub, nil
}

// Close releases every open subscription.
func (f *MemoryFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	for _, subs := range f.listeners {
		for _, sub := range subs {
			sub.closeChannel()
		}
	}
	f.listeners = map[string]map[uint64]*memorySubscription{}
	return nil
}

// Subscribers reports the number of open subscriptions for receiverID.
func (f *MemoryFeed) Subscribers(receiverID string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.listeners[receiverID])
}

func (f *MemoryFeed) remove(sub *memorySubscription) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if subs, ok := f.listeners[sub.receiverID]; ok {
		delete(subs, sub.id)
		if len(subs) == 0 {
			delete(f.listeners, sub.receiverID)
		}
	}
	sub.closeChannel()
}

type memorySubscription struct {
	id         uint64
	receiverID string
	events     chan domain.Message
	feed       *MemoryFeed

	mu     sync.Mutex
	closed bool
}

func (s *memorySubscription) Events() <-chan domain.Message {
	return s.events
}

func (s *memorySubscription) Close() error {
	s.feed.remove(s)
	return nil
}

func (s *memorySubscription) deliver(msg domain.Message, logger *zap.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.events <- msg:
	default:
		logger.Warn("feed subscriber lagging; dropping message",
			zap.String("receiver_id", s.receiverID),
			zap.String("message_id", msg.ID))
	}
}

func (s *memorySubscription) closeChannel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.events)
}
