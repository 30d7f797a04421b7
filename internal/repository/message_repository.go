package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staff-service/internal/domain"
)

// MessageRepository persists direct messages.
type MessageRepository interface {
	ListForUser(ctx context.Context, userID string) ([]domain.Message, error)
	GetByID(ctx context.Context, id string) (*domain.Message, error)
	Insert(ctx context.Context, msg *domain.Message) error
	MarkRead(ctx context.Context, id string, at time.Time) error
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository builds repository.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) ListForUser(ctx context.Context, userID string) ([]domain.Message, error) {
	if r.pool == nil {
		return nil, ErrNoDatabase
	}

	const query = `
        SELECT id, sender_id, receiver_id, subject, content, read, read_at, created_at
        FROM messages WHERE sender_id=$1 OR receiver_id=$1
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Message{}
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *msg)
	}
	return result, rows.Err()
}

func (r *messageRepository) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	if r.pool == nil {
		return nil, ErrNoDatabase
	}

	const query = `
        SELECT id, sender_id, receiver_id, subject, content, read, read_at, created_at
        FROM messages WHERE id=$1`

	return scanMessage(r.pool.QueryRow(ctx, query, id))
}

func (r *messageRepository) Insert(ctx context.Context, msg *domain.Message) error {
	if r.pool == nil {
		return ErrNoDatabase
	}

	const query = `
        INSERT INTO messages (id, sender_id, receiver_id, subject, content, read, read_at, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	row := messageRowFrom(*msg)
	_, err := r.pool.Exec(ctx, query,
		row.ID,
		row.SenderID,
		row.ReceiverID,
		row.Subject,
		row.Content,
		row.Read,
		row.ReadAt,
		row.CreatedAt,
	)
	return err
}

func (r *messageRepository) MarkRead(ctx context.Context, id string, at time.Time) error {
	if r.pool == nil {
		return ErrNoDatabase
	}

	const query = `UPDATE messages SET read=TRUE, read_at=$1 WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, at, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var m messageRow
	if err := row.Scan(
		&m.ID,
		&m.SenderID,
		&m.ReceiverID,
		&m.Subject,
		&m.Content,
		&m.Read,
		&m.ReadAt,
		&m.CreatedAt,
	); err != nil {
		return nil, err
	}
	msg := m.toDomain()
	return &msg, nil
}
