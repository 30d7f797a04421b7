package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staff-service/internal/domain"
)

// ShiftRepository reads shift records.
type ShiftRepository interface {
	List(ctx context.Context) ([]domain.ShiftRecord, error)
}

type shiftRepository struct {
	pool *pgxpool.Pool
}

// NewShiftRepository builds a Postgres-backed shift repository.
func NewShiftRepository(pool *pgxpool.Pool) ShiftRepository {
	return &shiftRepository{pool: pool}
}

func (r *shiftRepository) List(ctx context.Context) ([]domain.ShiftRecord, error) {
	if r.pool == nil {
		return nil, ErrNoDatabase
	}

	const query = `
        SELECT id, staff_id, shift_date, start_time, end_time, shift_type, status, department
        FROM shifts ORDER BY shift_date ASC, start_time ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.ShiftRecord{}
	for rows.Next() {
		var row shiftRow
		if err := rows.Scan(
			&row.ID,
			&row.StaffID,
			&row.ShiftDate,
			&row.StartTime,
			&row.EndTime,
			&row.ShiftType,
			&row.Status,
			&row.Department,
		); err != nil {
			return nil, err
		}
		result = append(result, row.toDomain())
	}
	return result, rows.Err()
}
