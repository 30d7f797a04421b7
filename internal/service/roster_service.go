package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/staff-service/internal/domain"
	"github.com/spec-kit/staff-service/internal/repository"
	"github.com/spec-kit/staff-service/internal/roster"
	apperrors "github.com/spec-kit/staff-service/pkg/util/errorutil"
)

// RosterService assembles roster views from the staff and shift sources.
type RosterService struct {
	staff  repository.StaffRepository
	shifts repository.ShiftRepository
	logger *zap.Logger
	now    func() time.Time
	loc    *time.Location
}

// RosterDependencies encapsulates what the roster service reads from.
type RosterDependencies struct {
	StaffRepo repository.StaffRepository
	ShiftRepo repository.ShiftRepository
	// Clock defaults to time.Now.
	Clock func() time.Time
	// Location decides which calendar day "today" is. Defaults to time.Local.
	Location *time.Location
}

// RosterQuery narrows the roster listing.
type RosterQuery struct {
	Search     string
	Department string
}

// RosterRow is one staff member with their duty status for today.
type RosterRow struct {
	Staff       domain.StaffMember
	DisplayName string
	Duty        roster.DutyStatus
}

// RosterView is the filtered roster for the current day.
type RosterView struct {
	Date        string
	Departments []string
	Rows        []RosterRow
}

// WeekView holds the shifts of one Sunday-to-Saturday week.
type WeekView struct {
	Dates []string
	Days  []roster.WeekdayShifts
}

// NewRosterService constructs the service.
func NewRosterService(deps RosterDependencies, logger *zap.Logger) *RosterService {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Location == nil {
		deps.Location = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{
		staff:  deps.StaffRepo,
		shifts: deps.ShiftRepo,
		logger: logger,
		now:    deps.Clock,
		loc:    deps.Location,
	}
}

// Roster filters the staff directory and attaches today's duty status to each
// remaining member.
func (s *RosterService) Roster(ctx context.Context, q RosterQuery) (*RosterView, error) {
	staff, shifts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	today := now.Format(roster.DateLayout)
	todays := roster.ShiftsForDate(shifts, today)

	filtered := roster.FilterStaff(staff, q.Search, q.Department)
	rows := make([]RosterRow, 0, len(filtered))
	for _, member := range filtered {
		rows = append(rows, RosterRow{
			Staff:       member,
			DisplayName: roster.DisplayName(member),
			Duty:        roster.CurrentDutyStatus(member.ID, todays, now),
		})
	}

	return &RosterView{
		Date:        today,
		Departments: roster.Departments(staff),
		Rows:        rows,
	}, nil
}

// Departments lists the distinct staff departments in first-seen order.
func (s *RosterService) Departments(ctx context.Context) ([]string, error) {
	staff, err := s.staff.List(ctx)
	if err != nil {
		s.logger.Warn("failed to load staff", zap.Error(err))
		return nil, apperrors.NewLoadFailed("staff", err)
	}
	return roster.Departments(staff), nil
}

// Schedule builds the day schedule for date, or for today when date is empty.
func (s *RosterService) Schedule(ctx context.Context, date string) (*roster.DaySchedule, error) {
	now := s.clock()
	date, err := s.resolveDate(date, now)
	if err != nil {
		return nil, err
	}

	staff, shifts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	sched := roster.BuildSchedule(shifts, staff, date, now)
	return &sched, nil
}

// Week groups the shifts of the week containing date by weekday.
func (s *RosterService) Week(ctx context.Context, date string) (*WeekView, error) {
	date, err := s.resolveDate(date, s.clock())
	if err != nil {
		return nil, err
	}
	dates, err := roster.WeekOf(date)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date", map[string]any{"date": date})
	}

	shifts, err := s.shifts.List(ctx)
	if err != nil {
		s.logger.Warn("failed to load shifts", zap.Error(err))
		return nil, apperrors.NewLoadFailed("shifts", err)
	}

	week := roster.ShiftsForDates(shifts, dates)
	return &WeekView{Dates: dates, Days: roster.GroupByWeekday(week)}, nil
}

func (s *RosterService) clock() time.Time {
	return s.now().In(s.loc)
}

func (s *RosterService) resolveDate(date string, now time.Time) (string, error) {
	if date == "" {
		return now.Format(roster.DateLayout), nil
	}
	if _, err := time.ParseInLocation(roster.DateLayout, date, s.loc); err != nil {
		return "", apperrors.NewValidationError("date must be YYYY-MM-DD", map[string]any{"date": date})
	}
	return date, nil
}

func (s *RosterService) load(ctx context.Context) ([]domain.StaffMember, []domain.ShiftRecord, error) {
	staff, err := s.staff.List(ctx)
	if err != nil {
		s.logger.Warn("failed to load staff", zap.Error(err))
		return nil, nil, apperrors.NewLoadFailed("staff", err)
	}
	shifts, err := s.shifts.List(ctx)
	if err != nil {
		s.logger.Warn("failed to load shifts", zap.Error(err))
		return nil, nil, apperrors.NewLoadFailed("shifts", err)
	}
	return staff, shifts, nil
}
