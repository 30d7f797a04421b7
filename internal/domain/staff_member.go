package domain

// StaffRole enumerates hospital staff roles.
type StaffRole string

const (
	StaffRoleDoctor     StaffRole = "doctor"
	StaffRoleNurse      StaffRole = "nurse"
	StaffRoleTechnician StaffRole = "technician"
	StaffRoleAdmin      StaffRole = "admin"
)

// StaffMember models an employee on the roster. Immutable for the life of a session.
type StaffMember struct {
	ID            string
	UserID        string
	FirstName     string
	LastName      string
	Role          StaffRole
	Department    string
	ContactNumber string
	Email         string
	EmployeeID    string
}
