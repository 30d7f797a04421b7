package roster

import "github.com/spec-kit/staff-service/internal/domain"

// ActiveEntry pairs an active shift with the staff member working it.
type ActiveEntry struct {
	Staff domain.StaffMember
	Shift domain.ShiftRecord
}

// Coverage aggregates one department's shifts for a date.
type Coverage struct {
	Department      string
	TotalShifts     int
	ScheduledShifts int
	ActiveShifts    []ActiveEntry
}

// DepartmentCoverage groups the shifts on date by department, in the order the
// departments first appear. Active shifts whose staff id is unknown are
// dropped from ActiveShifts but still counted in TotalShifts.
func DepartmentCoverage(allShifts []domain.ShiftRecord, allStaff []domain.StaffMember, date string) []Coverage {
	dayShifts := ShiftsForDate(allShifts, date)
	order := make([]string, 0)
	seen := map[string]struct{}{}
	for _, shift := range dayShifts {
		if _, ok := seen[shift.Department]; ok {
			continue
		}
		seen[shift.Department] = struct{}{}
		order = append(order, shift.Department)
	}
	return coverageFor(order, dayShifts, indexStaff(allStaff))
}

func coverageFor(departments []string, dayShifts []domain.ShiftRecord, staff map[string]domain.StaffMember) []Coverage {
	byDept := make(map[string]*Coverage, len(departments))
	result := make([]Coverage, len(departments))
	for i, dept := range departments {
		result[i] = Coverage{Department: dept, ActiveShifts: []ActiveEntry{}}
		byDept[dept] = &result[i]
	}

	for _, shift := range dayShifts {
		cov, ok := byDept[shift.Department]
		if !ok {
			continue
		}
		cov.TotalShifts++
		switch shift.Status {
		case domain.ShiftStatusScheduled:
			cov.ScheduledShifts++
		case domain.ShiftStatusActive:
			member, found := staff[shift.StaffID]
			if !found {
				continue
			}
			cov.ActiveShifts = append(cov.ActiveShifts, ActiveEntry{Staff: member, Shift: shift})
		}
	}
	return result
}
