// Command seed loads the demo accounts, staff directory and this week's shifts
// into Postgres so the API can run with ROSTER_SOURCE=postgres.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/staff-service/internal/auth"
	"github.com/spec-kit/staff-service/internal/config"
	"github.com/spec-kit/staff-service/internal/domain"
	"github.com/spec-kit/staff-service/internal/observability"
	"github.com/spec-kit/staff-service/internal/persistence"
	"github.com/spec-kit/staff-service/internal/repository"
)

var demoUsers = []domain.User{
	{ID: "user1", Email: "admin@hospital.com", Name: "Admin User", Role: domain.UserRoleAdmin},
	{ID: "user2", Email: "doctor@hospital.com", Name: "Dr. Sarah Johnson", Role: domain.UserRoleDoctor},
	{ID: "user3", Email: "nurse@hospital.com", Name: "Nurse Robert Chen", Role: domain.UserRoleNurse},
	{ID: "user4", Email: "patient@example.com", Name: "Jane Smith", Role: domain.UserRolePatient},
	{ID: "user5", Email: "dr.wilson@hospital.com", Name: "Dr. James Wilson", Role: domain.UserRoleDoctor},
	{ID: "user6", Email: "nurse.maria@hospital.com", Name: "Maria Rodriguez", Role: domain.UserRoleNurse},
	{ID: "user7", Email: "tech.david@hospital.com", Name: "David Kim", Role: domain.UserRolePatient},
	{ID: "user8", Email: "nurse.lisa@hospital.com", Name: "Lisa Thompson", Role: domain.UserRoleNurse},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	if pg.PoolHandle() == nil {
		logger.Fatal("POSTGRES_DSN is required")
	}

	if err := persistence.RunMigrations(pg.PoolHandle(), logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "password123"
	}
	hash, err := auth.HashPassword(password, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash seed password", zap.Error(err))
	}

	loc, err := cfg.App.Location()
	if err != nil {
		logger.Fatal("invalid timezone", zap.Error(err))
	}
	static := repository.NewStaticRoster(time.Now, loc)
	staff, _ := static.Staff().List(ctx)
	shifts, _ := static.Shifts().List(ctx)

	if err := seed(ctx, pg.PoolHandle(), hash, staff, shifts); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
	logger.Info("seed complete",
		zap.Int("users", len(demoUsers)),
		zap.Int("staff", len(staff)),
		zap.Int("shifts", len(shifts)))
}

func seed(ctx context.Context, pool *pgxpool.Pool, passwordHash string, staff []domain.StaffMember, shifts []domain.ShiftRecord) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, u := range demoUsers {
			batch.Queue(`
				INSERT INTO users (id, email, name, role, password_hash)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (id) DO UPDATE
				SET email = EXCLUDED.email, name = EXCLUDED.name, role = EXCLUDED.role, password_hash = EXCLUDED.password_hash`,
				u.ID, u.Email, u.Name, string(u.Role), passwordHash)
		}
		for _, m := range staff {
			batch.Queue(`
				INSERT INTO staff_members (id, user_id, first_name, last_name, role, department, contact_number, email, employee_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				ON CONFLICT (id) DO UPDATE
				SET user_id = EXCLUDED.user_id, first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name,
				    role = EXCLUDED.role, department = EXCLUDED.department, contact_number = EXCLUDED.contact_number,
				    email = EXCLUDED.email, employee_id = EXCLUDED.employee_id`,
				m.ID, m.UserID, m.FirstName, m.LastName, string(m.Role), m.Department, m.ContactNumber, m.Email, m.EmployeeID)
		}
		for _, s := range shifts {
			batch.Queue(`
				INSERT INTO shifts (id, staff_id, shift_date, start_time, end_time, shift_type, status, department)
				VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8)
				ON CONFLICT (id) DO UPDATE
				SET staff_id = EXCLUDED.staff_id, shift_date = EXCLUDED.shift_date, start_time = EXCLUDED.start_time,
				    end_time = EXCLUDED.end_time, shift_type = EXCLUDED.shift_type, status = EXCLUDED.status,
				    department = EXCLUDED.department`,
				s.ID, s.StaffID, s.Date, s.StartTime, s.EndTime, s.Type, string(s.Status), s.Department)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}
