package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staff-service/internal/domain"
)

// StaffRepository reads the staff directory.
type StaffRepository interface {
	List(ctx context.Context) ([]domain.StaffMember, error)
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

func (r *staffRepository) List(ctx context.Context) ([]domain.StaffMember, error) {
	if r.pool == nil {
		return nil, ErrNoDatabase
	}

	const query = `
        SELECT id, user_id, first_name, last_name, role, department, contact_number, email, employee_id
        FROM staff_members ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.StaffMember{}
	for rows.Next() {
		var row staffRow
		if err := rows.Scan(
			&row.ID,
			&row.UserID,
			&row.FirstName,
			&row.LastName,
			&row.Role,
			&row.Department,
			&row.ContactNumber,
			&row.Email,
			&row.EmployeeID,
		); err != nil {
			return nil, err
		}
		result = append(result, row.toDomain())
	}
	return result, rows.Err()
}
