package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/staff-service/internal/config"
	"github.com/spec-kit/staff-service/internal/domain"
	"github.com/spec-kit/staff-service/internal/events"
	"github.com/spec-kit/staff-service/internal/feed"
	"github.com/spec-kit/staff-service/internal/messaging"
	apperrors "github.com/spec-kit/staff-service/pkg/util/errorutil"
)

type messagingFixture struct {
	repo       *mockMessageRepo
	users      *mockUserRepo
	dispatcher events.Dispatcher
	feed       *feed.MemoryFeed
	svc        *MessageService
}

func newMessagingFixture(t *testing.T, msgs ...domain.Message) *messagingFixture {
	t.Helper()
	f := feed.NewMemoryFeed(8, zap.NewNop())
	t.Cleanup(func() { _ = f.Close() })

	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(dispatcher, f, zap.NewNop(), config.NotificationConfig{}).RegisterHandlers()

	fx := &messagingFixture{
		repo: newMockMessageRepo(msgs...),
		users: newMockUserRepo(
			domain.User{ID: "user1", Name: "Admin User", Role: domain.UserRoleAdmin},
			domain.User{ID: "user2", Name: "Dr. Sarah Johnson", Role: domain.UserRoleDoctor},
			domain.User{ID: "user4", Name: "Jane Smith", Role: domain.UserRolePatient},
			domain.User{ID: "user5", Name: "Dr. James Wilson", Role: domain.UserRoleDoctor},
		),
		dispatcher: dispatcher,
		feed:       f,
	}
	fx.svc = NewMessageService(MessageDependencies{
		MessageRepo: fx.repo,
		UserRepo:    fx.users,
		Dispatcher:  dispatcher,
		Feed:        f,
	}, zap.NewNop())
	return fx
}

func TestMessageService_ComposeReachesListeningReceiver(t *testing.T) {
	fx := newMessagingFixture(t)

	var sent []events.Event
	fx.dispatcher.Subscribe(events.EventMessageSent, func(_ context.Context, e events.Event) error {
		sent = append(sent, e)
		return nil
	})

	receiver := fx.svc.NewSession("user5")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan domain.Message, 1)
	go func() { _ = receiver.Listen(ctx, func(m domain.Message) { got <- m }) }()
	require.Eventually(t, func() bool { return fx.feed.Subscribers("user5") == 1 }, time.Second, 5*time.Millisecond)

	sender := fx.svc.NewSession("user2")
	msg, err := sender.Compose(context.Background(), messaging.ComposeInput{
		RecipientID: "user5",
		Subject:     "Consult",
		Content:     "Can you review bed 4?",
	})
	require.NoError(t, err)

	select {
	case delivered := <-got:
		assert.Equal(t, msg.ID, delivered.ID)
		assert.Equal(t, "Can you review bed 4?", delivered.Content)
	case <-time.After(time.Second):
		t.Fatal("receiver did not get the message")
	}
	assert.Equal(t, []string{msg.ID}, idsOf(receiver.Inbox()))

	require.Len(t, sent, 1)
	assert.Equal(t, "user2", sent[0].ActorID)
	assert.NotEmpty(t, sent[0].ID)
	stored, err := fx.repo.GetByID(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.False(t, stored.Read)
}

func TestMessageService_FailedInsertPublishesNothing(t *testing.T) {
	fx := newMessagingFixture(t)
	fx.repo.insertErr = errStoreDown

	published := 0
	fx.dispatcher.Subscribe(events.EventMessageSent, func(context.Context, events.Event) error {
		published++
		return nil
	})

	_, err := fx.svc.NewSession("user2").Compose(context.Background(), messaging.ComposeInput{
		RecipientID: "user5", Subject: "s", Content: "c",
	})
	assert.ErrorIs(t, err, messaging.ErrWriteFailed)
	assert.Zero(t, published)
}

func TestMessageService_CheckRecipient(t *testing.T) {
	fx := newMessagingFixture(t)

	assert.NoError(t, fx.svc.CheckRecipient(context.Background(), "user1"))
	assert.NoError(t, fx.svc.CheckRecipient(context.Background(), "user5"))
	assert.ErrorIs(t, fx.svc.CheckRecipient(context.Background(), "no-such-user"), messaging.ErrInvalidRecipient)
	assert.ErrorIs(t, fx.svc.CheckRecipient(context.Background(), "user4"), messaging.ErrInvalidRecipient, "patients cannot receive")

	fx.users.getErr = errStoreDown
	err := fx.svc.CheckRecipient(context.Background(), "user5")
	assert.ErrorIs(t, err, messaging.ErrLoadFailed)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestMessageService_ComposeToPatientStoresNothing(t *testing.T) {
	fx := newMessagingFixture(t)

	_, err := fx.svc.NewSession("user2").Compose(context.Background(), messaging.ComposeInput{
		RecipientID: "user4", Subject: "s", Content: "c",
	})
	assert.ErrorIs(t, err, messaging.ErrInvalidRecipient)

	stored, err := fx.repo.ListForUser(context.Background(), "user4")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestMessageService_OpenMarksRead(t *testing.T) {
	base := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	fx := newMessagingFixture(t, domain.Message{ID: "m1", SenderID: "user2", ReceiverID: "user5", Subject: "s", Content: "c", CreatedAt: base})

	var reads []events.MessageReadPayload
	fx.dispatcher.Subscribe(events.EventMessageRead, func(_ context.Context, e events.Event) error {
		reads = append(reads, e.Payload.(events.MessageReadPayload))
		return nil
	})

	session := fx.svc.NewSession("user5")
	require.NoError(t, session.Load(context.Background()))
	msg, err := fx.svc.GetForUser(context.Background(), "user5", "m1")
	require.NoError(t, err)

	opened, err := session.Open(context.Background(), *msg)
	require.NoError(t, err)
	assert.True(t, opened.Read)

	stored, _ := fx.repo.GetByID(context.Background(), "m1")
	assert.True(t, stored.Read)
	require.NotNil(t, stored.ReadAt)
	require.Len(t, reads, 1)
	assert.Equal(t, "m1", reads[0].MessageID)
}

func TestMessageService_GetForUser(t *testing.T) {
	fx := newMessagingFixture(t, domain.Message{ID: "m1", SenderID: "user2", ReceiverID: "user5"})

	_, err := fx.svc.GetForUser(context.Background(), "user2", "m1")
	assert.NoError(t, err)

	_, err = fx.svc.GetForUser(context.Background(), "user1", "m1")
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code, "not a participant")

	_, err = fx.svc.GetForUser(context.Background(), "user2", "missing")
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestMessageService_Recipients(t *testing.T) {
	fx := newMessagingFixture(t)

	groups, err := fx.svc.Recipients(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, domain.UserRoleAdmin, groups[0].Role)
	assert.Equal(t, domain.UserRoleDoctor, groups[1].Role)
	assert.Len(t, groups[1].Users, 2)

	fx.users.listErr = errStoreDown
	_, err = fx.svc.Recipients(context.Background())
	assert.Equal(t, "LOAD_FAILED", apperrors.ToDomainError(err).Code)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", preview("short"))
	long := strings.Repeat("é", 100)
	assert.Equal(t, strings.Repeat("é", 80)+"…", preview(long))
}

func idsOf(msgs []domain.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.ID)
	}
	return out
}
