package roster

import (
	"sort"
	"time"

	"github.com/spec-kit/staff-service/internal/domain"
)

// WeekdayShifts holds the shifts falling on one day of the week.
type WeekdayShifts struct {
	Weekday time.Weekday
	Shifts  []domain.ShiftRecord
}

// GroupByWeekday buckets shifts by the weekday of their date, Sunday first.
// All seven days are present. Within a day shifts are ordered by date, then
// start time. Shifts with an unparseable date are skipped.
func GroupByWeekday(shifts []domain.ShiftRecord) []WeekdayShifts {
	result := make([]WeekdayShifts, 7)
	for d := range result {
		result[d] = WeekdayShifts{Weekday: time.Weekday(d), Shifts: []domain.ShiftRecord{}}
	}
	for _, shift := range shifts {
		day, err := time.Parse(DateLayout, shift.Date)
		if err != nil {
			continue
		}
		wd := day.Weekday()
		result[wd].Shifts = append(result[wd].Shifts, shift)
	}
	for d := range result {
		bucket := result[d].Shifts
		sort.SliceStable(bucket, func(i, j int) bool {
			if bucket[i].Date != bucket[j].Date {
				return bucket[i].Date < bucket[j].Date
			}
			return bucket[i].StartTime < bucket[j].StartTime
		})
	}
	return result
}

// WeekOf returns the Sunday..Saturday dates of the week containing date.
func WeekOf(date string) ([]string, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil, err
	}
	start := day.AddDate(0, 0, -int(day.Weekday()))
	dates := make([]string, 7)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i).Format(DateLayout)
	}
	return dates, nil
}

// ShiftsForDates keeps shifts whose date is in dates, preserving order.
func ShiftsForDates(all []domain.ShiftRecord, dates []string) []domain.ShiftRecord {
	want := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		want[d] = struct{}{}
	}
	result := make([]domain.ShiftRecord, 0)
	for _, shift := range all {
		if _, ok := want[shift.Date]; ok {
			result = append(result, shift)
		}
	}
	return result
}
