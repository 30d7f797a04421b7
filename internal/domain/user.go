package domain

// UserRole enumerates account roles known to the store.
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleDoctor  UserRole = "doctor"
	UserRoleNurse   UserRole = "nurse"
	UserRolePatient UserRole = "patient"
)

// User is an account that can sign in and exchange messages.
type User struct {
	ID           string
	Email        string
	Name         string
	Role         UserRole
	PasswordHash string
}
