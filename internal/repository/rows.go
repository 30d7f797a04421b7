package repository

import (
	"time"

	"github.com/spec-kit/staff-service/internal/domain"
)

// Row types mirror table columns. Column naming stays inside this package.

type userRow struct {
	ID           string
	Email        string
	Name         string
	Role         string
	PasswordHash string
}

func (r userRow) toDomain() domain.User {
	return domain.User{
		ID:           r.ID,
		Email:        r.Email,
		Name:         r.Name,
		Role:         domain.UserRole(r.Role),
		PasswordHash: r.PasswordHash,
	}
}

// staffRow doubles as the cached JSON form of a staff member.
type staffRow struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Role          string `json:"role"`
	Department    string `json:"department"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
	EmployeeID    string `json:"employee_id"`
}

func (r staffRow) toDomain() domain.StaffMember {
	return domain.StaffMember{
		ID:            r.ID,
		UserID:        r.UserID,
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Role:          domain.StaffRole(r.Role),
		Department:    r.Department,
		ContactNumber: r.ContactNumber,
		Email:         r.Email,
		EmployeeID:    r.EmployeeID,
	}
}

func staffRowFrom(m domain.StaffMember) staffRow {
	return staffRow{
		ID:            m.ID,
		UserID:        m.UserID,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Role:          string(m.Role),
		Department:    m.Department,
		ContactNumber: m.ContactNumber,
		Email:         m.Email,
		EmployeeID:    m.EmployeeID,
	}
}

type shiftRow struct {
	ID         string
	StaffID    string
	ShiftDate  time.Time
	StartTime  string
	EndTime    string
	ShiftType  string
	Status     string
	Department string
}

func (r shiftRow) toDomain() domain.ShiftRecord {
	return domain.ShiftRecord{
		ID:         r.ID,
		StaffID:    r.StaffID,
		Date:       r.ShiftDate.Format(time.DateOnly),
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Type:       r.ShiftType,
		Status:     domain.ShiftStatus(r.Status),
		Department: r.Department,
	}
}

type messageRow struct {
	ID         string
	SenderID   string
	ReceiverID string
	Subject    string
	Content    string
	Read       bool
	ReadAt     *time.Time
	CreatedAt  time.Time
}

func (r messageRow) toDomain() domain.Message {
	return domain.Message{
		ID:         r.ID,
		SenderID:   r.SenderID,
		ReceiverID: r.ReceiverID,
		Subject:    r.Subject,
		Content:    r.Content,
		CreatedAt:  r.CreatedAt,
		Read:       r.Read,
		ReadAt:     r.ReadAt,
	}
}

func messageRowFrom(m domain.Message) messageRow {
	return messageRow{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Subject:    m.Subject,
		Content:    m.Content,
		Read:       m.Read,
		ReadAt:     m.ReadAt,
		CreatedAt:  m.CreatedAt,
	}
}
