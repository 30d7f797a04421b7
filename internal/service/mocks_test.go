package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/staff-service/internal/domain"
)

var errStoreDown = errors.New("store unavailable")

// ── staff / shifts ──

type mockStaffRepo struct {
	staff []domain.StaffMember
	err   error
}

func (m *mockStaffRepo) List(context.Context) ([]domain.StaffMember, error) {
	return m.staff, m.err
}

type mockShiftRepo struct {
	shifts []domain.ShiftRecord
	err    error
}

func (m *mockShiftRepo) List(context.Context) ([]domain.ShiftRecord, error) {
	return m.shifts, m.err
}

// ── users ──

type mockUserRepo struct {
	users   map[string]*domain.User
	order   []string
	listErr error
	getErr  error
}

func newMockUserRepo(users ...domain.User) *mockUserRepo {
	m := &mockUserRepo{users: map[string]*domain.User{}}
	for i := range users {
		u := users[i]
		m.users[u.ID] = &u
		m.order = append(m.order, u.ID)
	}
	return m
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, id := range m.order {
		if m.users[id].Email == email {
			return m.users[id], nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) ListByRoles(_ context.Context, roles []domain.UserRole) ([]domain.User, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	allowed := map[domain.UserRole]bool{}
	for _, r := range roles {
		allowed[r] = true
	}
	var out []domain.User
	for _, id := range m.order {
		if u := m.users[id]; allowed[u.Role] {
			out = append(out, *u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Role < out[j].Role })
	return out, nil
}

// ── messages ──

type mockMessageRepo struct {
	mu        sync.Mutex
	messages  map[string]domain.Message
	insertErr error
}

func newMockMessageRepo(msgs ...domain.Message) *mockMessageRepo {
	m := &mockMessageRepo{messages: map[string]domain.Message{}}
	for _, msg := range msgs {
		m.messages[msg.ID] = msg
	}
	return m
}

func (m *mockMessageRepo) ListForUser(_ context.Context, userID string) ([]domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Message
	for _, msg := range m.messages {
		if msg.SenderID == userID || msg.ReceiverID == userID {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockMessageRepo) GetByID(_ context.Context, id string) (*domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.messages[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &msg, nil
}

func (m *mockMessageRepo) Insert(_ context.Context, msg *domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	m.messages[msg.ID] = *msg
	return nil
}

func (m *mockMessageRepo) MarkRead(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.messages[id]
	if !ok {
		return pgx.ErrNoRows
	}
	msg.Read = true
	msg.ReadAt = &at
	m.messages[id] = msg
	return nil
}
