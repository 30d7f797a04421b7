// Package feed delivers newly inserted messages to the sessions of their
// receivers.
package feed

import (
	"context"
	"errors"

	"github.com/spec-kit/staff-service/internal/domain"
)

// ErrClosed is returned when publishing to or subscribing on a closed feed.
var ErrClosed = errors.New("feed closed")

// Feed publishes message inserts and hands out per-receiver subscriptions.
type Feed interface {
	Publish(ctx context.Context, msg domain.Message) error
	Subscribe(ctx context.Context, receiverID string) (Subscription, error)
}

// Closer is a Feed that can end all of its subscriptions at once.
type Closer interface {
	Feed
	Close() error
}

// Subscription yields inserted messages addressed to one receiver. Events is
// closed once the subscription is released. Close is safe to call more than
// once.
type Subscription interface {
	Events() <-chan domain.Message
	Close() error
}
