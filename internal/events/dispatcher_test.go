package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_PublishRunsEveryHandler(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string
	d.Subscribe(EventMessageSent, func(context.Context, Event) error {
		calls = append(calls, "first")
		return errors.New("smtp unavailable")
	})
	d.Subscribe(EventMessageSent, func(context.Context, Event) error {
		calls = append(calls, "second")
		return nil
	})
	d.Subscribe(EventMessageRead, func(context.Context, Event) error {
		calls = append(calls, "read")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventMessageSent})

	assert.EqualError(t, err, "smtp unavailable")
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestDispatcher_PublishWithoutListeners(t *testing.T) {
	assert.NoError(t, NewInMemoryDispatcher().Publish(context.Background(), Event{Type: EventMessageRead}))
}
