// Package roster answers who is on duty, which shifts fall on a date and how
// long an active shift has left. Every function works on caller-supplied
// slices and never mutates them.
package roster

import (
	"sort"
	"strings"

	"github.com/spec-kit/staff-service/internal/domain"
)

// DateLayout is the ISO calendar date format used by ShiftRecord.Date.
const DateLayout = "2006-01-02"

// FilterStaff returns the members whose "first last role department" text
// contains searchTerm (case-insensitive) and, when department is non-empty,
// whose department matches it exactly. Relative order is preserved.
func FilterStaff(all []domain.StaffMember, searchTerm, department string) []domain.StaffMember {
	term := strings.ToLower(searchTerm)
	result := make([]domain.StaffMember, 0, len(all))
	for _, member := range all {
		if department != "" && member.Department != department {
			continue
		}
		if strings.Contains(searchText(member), term) {
			result = append(result, member)
		}
	}
	return result
}

func searchText(m domain.StaffMember) string {
	return strings.ToLower(strings.Join([]string{m.FirstName, m.LastName, string(m.Role), m.Department}, " "))
}

// Departments lists distinct staff departments in order of first occurrence.
func Departments(all []domain.StaffMember) []string {
	seen := make(map[string]struct{}, len(all))
	result := make([]string, 0)
	for _, member := range all {
		if _, ok := seen[member.Department]; ok {
			continue
		}
		seen[member.Department] = struct{}{}
		result = append(result, member.Department)
	}
	return result
}

// ShiftsForDate keeps the shifts whose date equals date exactly.
func ShiftsForDate(all []domain.ShiftRecord, date string) []domain.ShiftRecord {
	result := make([]domain.ShiftRecord, 0)
	for _, shift := range all {
		if shift.Date == date {
			result = append(result, shift)
		}
	}
	return result
}

// SortByStartTime returns a copy ordered by start time. Lexicographic order is
// chronological because times are zero-padded "HH:MM".
func SortByStartTime(shifts []domain.ShiftRecord) []domain.ShiftRecord {
	sorted := make([]domain.ShiftRecord, len(shifts))
	copy(sorted, shifts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})
	return sorted
}

// DisplayName renders a member's name the way the roster shows it.
func DisplayName(m domain.StaffMember) string {
	name := m.FirstName + " " + m.LastName
	if m.Role == domain.StaffRoleDoctor {
		return "Dr. " + name
	}
	return name
}

// CanViewRoster reports whether an account role may see the staff roster.
func CanViewRoster(role domain.UserRole) bool {
	switch role {
	case domain.UserRoleDoctor, domain.UserRoleNurse, domain.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func indexStaff(all []domain.StaffMember) map[string]domain.StaffMember {
	idx := make(map[string]domain.StaffMember, len(all))
	for _, member := range all {
		if _, exists := idx[member.ID]; !exists {
			idx[member.ID] = member
		}
	}
	return idx
}
