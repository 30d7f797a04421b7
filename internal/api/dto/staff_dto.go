package dto

import (
	"github.com/spec-kit/staff-service/internal/domain"
	"github.com/spec-kit/staff-service/internal/roster"
	"github.com/spec-kit/staff-service/internal/service"
)

// StaffResponse is a staff directory entry.
type StaffResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id,omitempty"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	DisplayName   string `json:"display_name"`
	Role          string `json:"role"`
	Department    string `json:"department"`
	ContactNumber string `json:"contact_number,omitempty"`
	Email         string `json:"email,omitempty"`
	EmployeeID    string `json:"employee_id,omitempty"`
}

// ShiftResponse is one shift record.
type ShiftResponse struct {
	ID         string `json:"id"`
	StaffID    string `json:"staff_id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Type       string `json:"type,omitempty"`
	Status     string `json:"status"`
	Department string `json:"department"`
}

// RemainingResponse renders time left on a shift.
type RemainingResponse struct {
	Hours   int    `json:"hours"`
	Minutes int    `json:"minutes"`
	Label   string `json:"label"`
}

// DutyResponse is a staff member's current duty status.
type DutyResponse struct {
	OnDuty    bool               `json:"on_duty"`
	Shift     *ShiftResponse     `json:"shift,omitempty"`
	Remaining *RemainingResponse `json:"remaining,omitempty"`
}

// RosterRowResponse pairs a staff member with their duty status.
type RosterRowResponse struct {
	Staff StaffResponse `json:"staff"`
	Duty  DutyResponse  `json:"duty"`
}

// RosterResponse is the body of GET /staff.
type RosterResponse struct {
	Date        string              `json:"date"`
	Departments []string            `json:"departments"`
	Staff       []RosterRowResponse `json:"staff"`
}

// ScheduleEntryResponse is a timeline row.
type ScheduleEntryResponse struct {
	Shift     ShiftResponse      `json:"shift"`
	Staff     StaffResponse      `json:"staff"`
	Remaining *RemainingResponse `json:"remaining,omitempty"`
}

// CoverageResponse summarizes one department's shifts.
type CoverageResponse struct {
	Department      string                  `json:"department"`
	TotalShifts     int                     `json:"total_shifts"`
	ScheduledShifts int                     `json:"scheduled_shifts"`
	Active          []ScheduleEntryResponse `json:"active"`
}

// SummaryResponse holds the day's headline counts.
type SummaryResponse struct {
	OnDuty    int `json:"on_duty"`
	Scheduled int `json:"scheduled"`
	Total     int `json:"total"`
}

// ScheduleResponse is the body of GET /staff/schedule.
type ScheduleResponse struct {
	Date     string                  `json:"date"`
	Summary  SummaryResponse         `json:"summary"`
	Entries  []ScheduleEntryResponse `json:"entries"`
	Coverage []CoverageResponse      `json:"coverage"`
}

// WeekdayResponse is one weekday bucket.
type WeekdayResponse struct {
	Weekday string          `json:"weekday"`
	Shifts  []ShiftResponse `json:"shifts"`
}

// WeekResponse is the body of GET /staff/schedule/week.
type WeekResponse struct {
	Dates []string          `json:"dates"`
	Days  []WeekdayResponse `json:"days"`
}

// NewStaffResponse maps a staff member.
func NewStaffResponse(m domain.StaffMember) StaffResponse {
	return StaffResponse{
		ID:            m.ID,
		UserID:        m.UserID,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		DisplayName:   roster.DisplayName(m),
		Role:          string(m.Role),
		Department:    m.Department,
		ContactNumber: m.ContactNumber,
		Email:         m.Email,
		EmployeeID:    m.EmployeeID,
	}
}

// NewShiftResponse maps a shift record.
func NewShiftResponse(s domain.ShiftRecord) ShiftResponse {
	return ShiftResponse{
		ID:         s.ID,
		StaffID:    s.StaffID,
		Date:       s.Date,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		Type:       s.Type,
		Status:     string(s.Status),
		Department: s.Department,
	}
}

func newRemainingResponse(r *roster.Remaining) *RemainingResponse {
	if r == nil {
		return nil
	}
	return &RemainingResponse{Hours: r.Hours, Minutes: r.Minutes, Label: r.String()}
}

// NewRosterResponse maps the roster view.
func NewRosterResponse(view *service.RosterView) RosterResponse {
	rows := make([]RosterRowResponse, 0, len(view.Rows))
	for _, row := range view.Rows {
		duty := DutyResponse{OnDuty: row.Duty.OnDuty, Remaining: newRemainingResponse(row.Duty.Remaining)}
		if row.Duty.Shift != nil {
			shift := NewShiftResponse(*row.Duty.Shift)
			duty.Shift = &shift
		}
		rows = append(rows, RosterRowResponse{Staff: NewStaffResponse(row.Staff), Duty: duty})
	}
	return RosterResponse{Date: view.Date, Departments: view.Departments, Staff: rows}
}

// NewScheduleResponse maps a day schedule.
func NewScheduleResponse(s *roster.DaySchedule) ScheduleResponse {
	entries := make([]ScheduleEntryResponse, 0, len(s.Entries))
	for _, e := range s.Entries {
		entries = append(entries, ScheduleEntryResponse{
			Shift:     NewShiftResponse(e.Shift),
			Staff:     NewStaffResponse(e.Staff),
			Remaining: newRemainingResponse(e.Remaining),
		})
	}

	coverage := make([]CoverageResponse, 0, len(s.Coverage))
	for _, c := range s.Coverage {
		active := make([]ScheduleEntryResponse, 0, len(c.ActiveShifts))
		for _, a := range c.ActiveShifts {
			active = append(active, ScheduleEntryResponse{
				Shift: NewShiftResponse(a.Shift),
				Staff: NewStaffResponse(a.Staff),
			})
		}
		coverage = append(coverage, CoverageResponse{
			Department:      c.Department,
			TotalShifts:     c.TotalShifts,
			ScheduledShifts: c.ScheduledShifts,
			Active:          active,
		})
	}

	return ScheduleResponse{
		Date:     s.Date,
		Summary:  SummaryResponse{OnDuty: s.Summary.OnDuty, Scheduled: s.Summary.Scheduled, Total: s.Summary.Total},
		Entries:  entries,
		Coverage: coverage,
	}
}

// NewWeekResponse maps a week view.
func NewWeekResponse(w *service.WeekView) WeekResponse {
	days := make([]WeekdayResponse, 0, len(w.Days))
	for _, d := range w.Days {
		shifts := make([]ShiftResponse, 0, len(d.Shifts))
		for _, s := range d.Shifts {
			shifts = append(shifts, NewShiftResponse(s))
		}
		days = append(days, WeekdayResponse{Weekday: d.Weekday.String(), Shifts: shifts})
	}
	return WeekResponse{Dates: w.Dates, Days: days}
}
