package domain

// ShiftStatus is assigned by the data source; it is never derived locally.
type ShiftStatus string

const (
	ShiftStatusScheduled ShiftStatus = "scheduled"
	ShiftStatusActive    ShiftStatus = "active"
	ShiftStatusCompleted ShiftStatus = "completed"
	ShiftStatusCancelled ShiftStatus = "cancelled"
)

// ShiftRecord is one staff member's shift on a calendar date.
//
// Date is an ISO calendar date ("2006-01-02"). StartTime and EndTime are
// zero-padded 24-hour "HH:MM" wall-clock times; EndTime may be earlier than
// StartTime for shifts that cross midnight.
type ShiftRecord struct {
	ID         string
	StaffID    string
	Date       string
	StartTime  string
	EndTime    string
	Type       string
	Status     ShiftStatus
	Department string
}
