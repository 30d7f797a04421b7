package feed

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/staff-service/internal/domain"
)

func newTestRedisFeed(t *testing.T) (*RedisFeed, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	f := NewRedisFeed(client, 4, zap.NewNop())
	t.Cleanup(func() { _ = f.Close() })
	return f, mr
}

func TestRedisFeed_DeliversOnlyToReceiver(t *testing.T) {
	f, _ := newTestRedisFeed(t)
	ctx := context.Background()

	alice, err := f.Subscribe(ctx, "alice")
	require.NoError(t, err)
	defer alice.Close()
	bob, err := f.Subscribe(ctx, "bob")
	require.NoError(t, err)
	defer bob.Close()

	createdAt := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, f.Publish(ctx, domain.Message{ID: "m1", SenderID: "carol", ReceiverID: "alice", Subject: "s", Content: "c", CreatedAt: createdAt}))
	require.NoError(t, f.Publish(ctx, domain.Message{ID: "m2", ReceiverID: "bob"}))

	got := receive(t, alice)
	assert.Equal(t, "m1", got.ID)
	assert.Equal(t, "carol", got.SenderID)
	assert.True(t, createdAt.Equal(got.CreatedAt))
	assert.False(t, got.Read)

	// bob's first event is his own message, not alice's
	assert.Equal(t, "m2", receive(t, bob).ID)
}

func TestRedisFeed_SkipsMalformedPayload(t *testing.T) {
	f, mr := newTestRedisFeed(t)
	ctx := context.Background()

	sub, err := f.Subscribe(ctx, "alice")
	require.NoError(t, err)
	defer sub.Close()

	mr.Publish(ChannelFor("alice"), "{not json")
	payload, err := json.Marshal(newInsertEvent(domain.Message{ID: "m1", ReceiverID: "alice"}))
	require.NoError(t, err)
	mr.Publish(ChannelFor("alice"), string(payload))

	assert.Equal(t, "m1", receive(t, sub).ID)
}

func TestRedisFeed_CloseReleasesSubscription(t *testing.T) {
	f, mr := newTestRedisFeed(t)
	ctx := context.Background()

	sub, err := f.Subscribe(ctx, "alice")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return mr.PubSubNumSub(ChannelFor("alice"))[ChannelFor("alice")] == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("events channel not closed")
	}
	require.Eventually(t, func() bool { return mr.PubSubNumSub(ChannelFor("alice"))[ChannelFor("alice")] == 0 }, time.Second, 5*time.Millisecond)
}

func TestRedisFeed_ClosedFeed(t *testing.T) {
	f, _ := newTestRedisFeed(t)
	ctx := context.Background()

	sub, err := f.Subscribe(ctx, "alice")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("events channel not closed")
	}
	assert.NoError(t, sub.Close())
	assert.NoError(t, f.Close())

	_, err = f.Subscribe(ctx, "alice")
	assert.ErrorIs(t, err, ErrClosed)
}
