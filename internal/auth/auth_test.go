package auth

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/staff-service/internal/domain"
	apperrors "github.com/spec-kit/staff-service/pkg/util/errorutil"
)

type mapUsers map[string]*domain.User

func (m mapUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := m[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 15)
	token, exp, err := tm.GenerateToken("user2", domain.UserRoleDoctor)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user2", claims.UserID)
	assert.Equal(t, domain.UserRoleDoctor, claims.Role)
}

func TestTokenManager_Rejects(t *testing.T) {
	tm := NewTokenManager("secret", 15)
	token, _, err := tm.GenerateToken("user2", domain.UserRoleDoctor)
	require.NoError(t, err)

	_, err = NewTokenManager("other", 15).ParseToken(token)
	assert.Error(t, err, "wrong secret")

	expired := NewTokenManager("secret", 15)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, _, err := expired.GenerateToken("user2", domain.UserRoleDoctor)
	require.NoError(t, err)
	_, err = tm.ParseToken(old)
	assert.Error(t, err, "expired")
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter2", 4)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "hunter2"))
	assert.Error(t, ComparePassword(hash, "hunter3"))
}

func newTestApp(tm *TokenManager, users mapUsers) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": de.Code}})
		},
	})
	mw := NewAuthMiddleware(tm, users)
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) }
	app.Get("/any", mw.Handle, RequireAnyRole(), ok)
	app.Get("/roster", mw.Handle, RequireRosterAccess(), ok)
	app.Get("/admin", mw.Handle, RequireRole(domain.UserRoleAdmin), ok)
	return app
}

func TestAuthMiddleware(t *testing.T) {
	tm := NewTokenManager("secret", 15)
	users := mapUsers{
		"user1": {ID: "user1", Role: domain.UserRoleAdmin},
		"user2": {ID: "user2", Role: domain.UserRoleDoctor},
		"user4": {ID: "user4", Role: domain.UserRolePatient},
	}
	app := newTestApp(tm, users)

	tokenFor := func(id string, role domain.UserRole) string {
		token, _, err := tm.GenerateToken(id, role)
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{name: "missing_header", path: "/any", want: fiber.StatusUnauthorized},
		{name: "bad_scheme", path: "/any", header: "Basic abc", want: fiber.StatusUnauthorized},
		{name: "garbage_token", path: "/any", header: "Bearer nope", want: fiber.StatusUnauthorized},
		{name: "unknown_user", path: "/any", header: "Bearer " + tokenFor("ghost", domain.UserRoleAdmin), want: fiber.StatusUnauthorized},
		{name: "patient_any", path: "/any", header: "Bearer " + tokenFor("user4", domain.UserRolePatient), want: fiber.StatusNoContent},
		{name: "patient_roster", path: "/roster", header: "Bearer " + tokenFor("user4", domain.UserRolePatient), want: fiber.StatusForbidden},
		{name: "doctor_roster", path: "/roster", header: "Bearer " + tokenFor("user2", domain.UserRoleDoctor), want: fiber.StatusNoContent},
		{name: "doctor_admin_only", path: "/admin", header: "Bearer " + tokenFor("user2", domain.UserRoleDoctor), want: fiber.StatusForbidden},
		{name: "admin_admin_only", path: "/admin", header: "Bearer " + tokenFor("user1", domain.UserRoleAdmin), want: fiber.StatusNoContent},
		{name: "query_token", path: "/any?access_token=" + tokenFor("user2", domain.UserRoleDoctor), want: fiber.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAuthMiddleware_RoleComesFromStore(t *testing.T) {
	tm := NewTokenManager("secret", 15)
	// token claims admin, store says patient
	token, _, err := tm.GenerateToken("user4", domain.UserRoleAdmin)
	require.NoError(t, err)
	app := newTestApp(tm, mapUsers{"user4": {ID: "user4", Role: domain.UserRolePatient}})

	req := httptest.NewRequest(fiber.MethodGet, "/admin", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

type failingUsers struct{ err error }

func (f failingUsers) GetByID(context.Context, string) (*domain.User, error) {
	return nil, f.err
}

func TestAuthMiddleware_StoreFailureIsLoadFailed(t *testing.T) {
	tm := NewTokenManager("secret", 15)
	token, _, err := tm.GenerateToken("user2", domain.UserRoleDoctor)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": de.Code}})
		},
	})
	mw := NewAuthMiddleware(tm, failingUsers{err: errors.New("database not configured")})
	app.Get("/any", mw.Handle, func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	req := httptest.NewRequest(fiber.MethodGet, "/any", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
