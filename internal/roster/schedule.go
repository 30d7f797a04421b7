package roster

import (
	"time"

	"github.com/spec-kit/staff-service/internal/domain"
)

// Summary counts a day's shifts.
type Summary struct {
	OnDuty    int
	Scheduled int
	Total     int
}

// Summarize counts active, scheduled and total shifts.
func Summarize(dayShifts []domain.ShiftRecord) Summary {
	s := Summary{Total: len(dayShifts)}
	for _, shift := range dayShifts {
		switch shift.Status {
		case domain.ShiftStatusActive:
			s.OnDuty++
		case domain.ShiftStatusScheduled:
			s.Scheduled++
		}
	}
	return s
}

// ScheduleEntry is one row of a day's timeline.
type ScheduleEntry struct {
	Shift       domain.ShiftRecord
	Staff       domain.StaffMember
	DisplayName string
	// Remaining is set for active shifts only.
	Remaining *Remaining
}

// DaySchedule is the full schedule view for a date.
type DaySchedule struct {
	Date     string
	Summary  Summary
	Entries  []ScheduleEntry
	Coverage []Coverage
}

// BuildSchedule assembles the timeline, summary and department coverage for
// date. Entries are sorted by start time and shifts for unknown staff are
// skipped. Coverage lists every staff department, even those without shifts,
// followed by departments that only appear on shifts.
func BuildSchedule(allShifts []domain.ShiftRecord, allStaff []domain.StaffMember, date string, now time.Time) DaySchedule {
	dayShifts := ShiftsForDate(allShifts, date)
	staff := indexStaff(allStaff)

	entries := make([]ScheduleEntry, 0, len(dayShifts))
	for _, shift := range SortByStartTime(dayShifts) {
		member, ok := staff[shift.StaffID]
		if !ok {
			continue
		}
		entry := ScheduleEntry{Shift: shift, Staff: member, DisplayName: DisplayName(member)}
		if shift.Status == domain.ShiftStatusActive {
			if rem, err := ComputeRemaining(shift.EndTime, now); err == nil {
				entry.Remaining = &rem
			}
		}
		entries = append(entries, entry)
	}

	departments := Departments(allStaff)
	known := make(map[string]struct{}, len(departments))
	for _, dept := range departments {
		known[dept] = struct{}{}
	}
	for _, shift := range dayShifts {
		if _, ok := known[shift.Department]; ok {
			continue
		}
		known[shift.Department] = struct{}{}
		departments = append(departments, shift.Department)
	}

	return DaySchedule{
		Date:     date,
		Summary:  Summarize(dayShifts),
		Entries:  entries,
		Coverage: coverageFor(departments, dayShifts, staff),
	}
}
