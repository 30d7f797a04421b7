package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/staff-service/internal/domain"
)

func TestRepositoriesWithoutPool(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(nil)
	messages := NewMessageRepository(nil)

	_, err := users.GetByID(ctx, "user1")
	assert.ErrorIs(t, err, ErrNoDatabase)
	_, err = users.GetByEmail(ctx, "admin@hospital.com")
	assert.ErrorIs(t, err, ErrNoDatabase)
	_, err = users.ListByRoles(ctx, []domain.UserRole{domain.UserRoleAdmin})
	assert.ErrorIs(t, err, ErrNoDatabase)

	_, err = messages.ListForUser(ctx, "user1")
	assert.ErrorIs(t, err, ErrNoDatabase)
	_, err = messages.GetByID(ctx, "m1")
	assert.ErrorIs(t, err, ErrNoDatabase)
	assert.ErrorIs(t, messages.Insert(ctx, &domain.Message{ID: "m1"}), ErrNoDatabase)
	assert.ErrorIs(t, messages.MarkRead(ctx, "m1", time.Now()), ErrNoDatabase)

	_, err = NewStaffRepository(nil).List(ctx)
	assert.ErrorIs(t, err, ErrNoDatabase)
	_, err = NewShiftRepository(nil).List(ctx)
	assert.ErrorIs(t, err, ErrNoDatabase)
}
