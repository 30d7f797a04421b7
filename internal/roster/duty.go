package roster

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/staff-service/internal/domain"
)

// ErrInvalidClock is returned for a shift time that is not "HH:MM".
var ErrInvalidClock = errors.New("invalid clock time")

// Remaining is the whole hours and minutes left on a shift.
type Remaining struct {
	Hours   int
	Minutes int
}

// String renders "{h}h {m}m", or "{m}m" when under an hour.
func (r Remaining) String() string {
	if r.Hours > 0 {
		return fmt.Sprintf("%dh %dm", r.Hours, r.Minutes)
	}
	return fmt.Sprintf("%dm", r.Minutes)
}

// Duration converts r back to a time.Duration.
func (r Remaining) Duration() time.Duration {
	return time.Duration(r.Hours)*time.Hour + time.Duration(r.Minutes)*time.Minute
}

// DutyStatus describes whether a staff member is currently on an active shift.
type DutyStatus struct {
	OnDuty    bool
	Shift     *domain.ShiftRecord
	Remaining *Remaining
}

// CurrentDutyStatus picks the first active shift for staffID. If several are
// active the first one wins. Remaining is nil when the shift end time cannot be
// parsed.
func CurrentDutyStatus(staffID string, shiftsForToday []domain.ShiftRecord, now time.Time) DutyStatus {
	for i := range shiftsForToday {
		shift := shiftsForToday[i]
		if shift.StaffID != staffID || shift.Status != domain.ShiftStatusActive {
			continue
		}
		status := DutyStatus{OnDuty: true, Shift: &shift}
		if rem, err := ComputeRemaining(shift.EndTime, now); err == nil {
			status.Remaining = &rem
		}
		return status
	}
	return DutyStatus{}
}

// ComputeRemaining returns the time from now until endHHMM on now's calendar
// day. An end strictly before now is taken to fall on the next day, which
// covers shifts that run past midnight. The result is floored to whole minutes
// and never negative. Callers must re-evaluate it as the clock moves.
func ComputeRemaining(endHHMM string, now time.Time) (Remaining, error) {
	hour, minute, err := ParseClock(endHHMM)
	if err != nil {
		return Remaining{}, err
	}

	end := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if end.Before(now) {
		end = end.AddDate(0, 0, 1)
	}

	diff := end.Sub(now)
	if diff < 0 {
		diff = 0
	}
	return Remaining{
		Hours:   int(diff / time.Hour),
		Minutes: int((diff % time.Hour) / time.Minute),
	}, nil
}

// ParseClock splits "HH:MM" into hour and minute.
func ParseClock(value string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	return hour, minute, nil
}
