package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staff-service/internal/domain"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByRoles(ctx context.Context, roles []domain.UserRole) ([]domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if r.pool == nil {
		return nil, ErrNoDatabase
	}

	const query = `
        SELECT id, email, name, role, password_hash
        FROM users WHERE id=$1`

	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if r.pool == nil {
		return nil, ErrNoDatabase
	}

	const query = `
        SELECT id, email, name, role, password_hash
        FROM users WHERE lower(email)=lower($1)`

	return scanUser(r.pool.QueryRow(ctx, query, email))
}

// ListByRoles returns users holding any of roles, ordered by role then name.
func (r *userRepository) ListByRoles(ctx context.Context, roles []domain.UserRole) ([]domain.User, error) {
	if r.pool == nil {
		return nil, ErrNoDatabase
	}

	const query = `
        SELECT id, email, name, role, password_hash
        FROM users WHERE role = ANY($1) ORDER BY role ASC, name ASC`

	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}

	rows, err := r.pool.Query(ctx, query, names)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *user)
	}
	return result, rows.Err()
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u userRow
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.PasswordHash); err != nil {
		return nil, err
	}
	user := u.toDomain()
	return &user, nil
}
