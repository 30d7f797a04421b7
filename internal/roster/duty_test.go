package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/staff-service/internal/domain"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, time.May, 1, hour, minute, 0, 0, time.UTC)
}

func TestComputeRemaining(t *testing.T) {
	tests := []struct {
		name string
		end  string
		now  time.Time
		want Remaining
		text string
	}{
		{name: "same_day", end: "15:00", now: at(9, 15), want: Remaining{Hours: 5, Minutes: 45}, text: "5h 45m"},
		{name: "overnight_wraps_to_next_day", end: "06:00", now: at(23, 30), want: Remaining{Hours: 6, Minutes: 30}, text: "6h 30m"},
		{name: "under_an_hour", end: "18:00", now: at(17, 20), want: Remaining{Minutes: 40}, text: "40m"},
		{name: "exactly_now", end: "12:00", now: at(12, 0), want: Remaining{}, text: "0m"},
		{name: "one_minute_past_wraps", end: "12:00", now: at(12, 1), want: Remaining{Hours: 23, Minutes: 59}, text: "23h 59m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeRemaining(tt.end, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.text, got.String())
			assert.GreaterOrEqual(t, got.Duration(), time.Duration(0))
		})
	}
}

func TestComputeRemaining_FloorsSeconds(t *testing.T) {
	now := time.Date(2024, time.May, 1, 14, 58, 59, 0, time.UTC)
	got, err := ComputeRemaining("15:00", now)
	require.NoError(t, err)
	assert.Equal(t, Remaining{Minutes: 1}, got)
}

func TestComputeRemaining_InvalidClock(t *testing.T) {
	for _, value := range []string{"", "7", "25:00", "10:60", "ab:cd", "10:00:00"} {
		_, err := ComputeRemaining(value, at(10, 0))
		assert.ErrorIs(t, err, ErrInvalidClock, value)
	}
}

func TestCurrentDutyStatus(t *testing.T) {
	shifts := []domain.ShiftRecord{
		{ID: "s1", StaffID: "staff1", Status: domain.ShiftStatusScheduled, EndTime: "15:00"},
		{ID: "s2", StaffID: "staff1", Status: domain.ShiftStatusActive, EndTime: "15:00"},
		{ID: "s3", StaffID: "staff1", Status: domain.ShiftStatusActive, EndTime: "20:00"},
		{ID: "s4", StaffID: "staff2", Status: domain.ShiftStatusCompleted, EndTime: "20:00"},
	}

	t.Run("first_active_match_wins", func(t *testing.T) {
		status := CurrentDutyStatus("staff1", shifts, at(10, 0))
		require.True(t, status.OnDuty)
		require.NotNil(t, status.Shift)
		assert.Equal(t, "s2", status.Shift.ID)
		require.NotNil(t, status.Remaining)
		assert.Equal(t, "5h 0m", status.Remaining.String())
	})

	t.Run("no_active_shift", func(t *testing.T) {
		status := CurrentDutyStatus("staff2", shifts, at(10, 0))
		assert.Equal(t, DutyStatus{}, status)
		assert.Nil(t, status.Shift)
		assert.Nil(t, status.Remaining)
	})

	t.Run("unknown_staff", func(t *testing.T) {
		assert.False(t, CurrentDutyStatus("nobody", shifts, at(10, 0)).OnDuty)
	})

	t.Run("malformed_end_time", func(t *testing.T) {
		bad := []domain.ShiftRecord{{ID: "x", StaffID: "staff9", Status: domain.ShiftStatusActive, EndTime: "late"}}
		status := CurrentDutyStatus("staff9", bad, at(10, 0))
		assert.True(t, status.OnDuty)
		assert.Nil(t, status.Remaining)
	})
}
