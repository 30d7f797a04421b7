package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/spec-kit/staff-service/internal/domain"
)

// StaticRoster serves a fixed demo staff directory and a generated week of
// shifts around the current date. It backs ROSTER_SOURCE=static deployments
// through its Staff and Shifts views.
type StaticRoster struct {
	now func() time.Time
	loc *time.Location
}

// NewStaticRoster builds the static source. now and loc default to time.Now
// and time.Local.
func NewStaticRoster(now func() time.Time, loc *time.Location) *StaticRoster {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &StaticRoster{now: now, loc: loc}
}

var staticStaff = []domain.StaffMember{
	{ID: "staff1", UserID: "user2", FirstName: "Sarah", LastName: "Johnson", Role: domain.StaffRoleDoctor, Department: "Cardiology", ContactNumber: "555-4321", Email: "dr.sarah@hospital.com", EmployeeID: "EMP001"},
	{ID: "staff2", UserID: "user5", FirstName: "James", LastName: "Wilson", Role: domain.StaffRoleDoctor, Department: "Neurology", ContactNumber: "555-8642", Email: "dr.wilson@hospital.com", EmployeeID: "EMP002"},
	{ID: "staff3", UserID: "user3", FirstName: "Robert", LastName: "Chen", Role: domain.StaffRoleNurse, Department: "ICU", ContactNumber: "555-7890", Email: "nurse.robert@hospital.com", EmployeeID: "EMP003"},
	{ID: "staff4", UserID: "user6", FirstName: "Maria", LastName: "Rodriguez", Role: domain.StaffRoleNurse, Department: "Emergency", ContactNumber: "555-3456", Email: "nurse.maria@hospital.com", EmployeeID: "EMP004"},
	{ID: "staff5", UserID: "user7", FirstName: "David", LastName: "Kim", Role: domain.StaffRoleTechnician, Department: "Radiology", ContactNumber: "555-6789", Email: "tech.david@hospital.com", EmployeeID: "EMP005"},
	{ID: "staff6", UserID: "user8", FirstName: "Lisa", LastName: "Thompson", Role: domain.StaffRoleNurse, Department: "Pediatrics", ContactNumber: "555-2345", Email: "nurse.lisa@hospital.com", EmployeeID: "EMP006"},
}

type shiftPattern struct {
	slot       int
	staffID    string
	start, end string
	department string
	onDay      func(offset int) bool
}

var staticPatterns = []shiftPattern{
	{slot: 1, staffID: "staff1", start: "07:00", end: "15:00", department: "Cardiology", onDay: func(int) bool { return true }},
	{slot: 2, staffID: "staff3", start: "06:00", end: "18:00", department: "ICU", onDay: func(int) bool { return true }},
	// evening cover every other day
	{slot: 3, staffID: "staff4", start: "18:00", end: "06:00", department: "Emergency", onDay: func(d int) bool { return d%2 == 0 }},
	// weekends
	{slot: 4, staffID: "staff2", start: "08:00", end: "20:00", department: "Neurology", onDay: func(d int) bool { return d == 0 || d == 6 }},
}

func (s *StaticRoster) listStaff() []domain.StaffMember {
	out := make([]domain.StaffMember, len(staticStaff))
	copy(out, staticStaff)
	return out
}

// Staff adapts the source to StaffRepository.
func (s *StaticRoster) Staff() StaffRepository { return staticStaffSource{s} }

// Shifts adapts the source to ShiftRepository.
func (s *StaticRoster) Shifts() ShiftRepository { return staticShiftSource{s} }

// listShifts generates the Sunday-to-Saturday week containing today. Days
// before today are completed, today is active and later days are scheduled.
func (s *StaticRoster) listShifts() []domain.ShiftRecord {
	today := s.now().In(s.loc)
	todayOffset := int(today.Weekday())
	weekStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, -todayOffset)

	shifts := []domain.ShiftRecord{}
	for offset := 0; offset < 7; offset++ {
		date := weekStart.AddDate(0, 0, offset).Format(time.DateOnly)
		status := domain.ShiftStatusScheduled
		switch {
		case offset < todayOffset:
			status = domain.ShiftStatusCompleted
		case offset == todayOffset:
			status = domain.ShiftStatusActive
		}

		for _, p := range staticPatterns {
			if !p.onDay(offset) {
				continue
			}
			shifts = append(shifts, domain.ShiftRecord{
				ID:         fmt.Sprintf("shift_%d_%d", offset, p.slot),
				StaffID:    p.staffID,
				Date:       date,
				StartTime:  p.start,
				EndTime:    p.end,
				Type:       "regular",
				Status:     status,
				Department: p.department,
			})
		}
	}
	return shifts
}

type staticStaffSource struct{ s *StaticRoster }

func (a staticStaffSource) List(_ context.Context) ([]domain.StaffMember, error) {
	return a.s.listStaff(), nil
}

type staticShiftSource struct{ s *StaticRoster }

func (a staticShiftSource) List(_ context.Context) ([]domain.ShiftRecord, error) {
	return a.s.listShifts(), nil
}
