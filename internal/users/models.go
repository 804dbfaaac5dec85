package users

import (
	"time"

	"github.com/google/uuid"
)

// Role is the fixed RBAC role set. Authorization decisions everywhere in the
// application are made against these three values.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// Status describes whether an account may authenticate. Checked at login and
// refresh only; already-issued access tokens stay valid until expiry.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
	StatusInactive  Status = "INACTIVE"
)

type User struct {
	ID           uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"` // hide in json
	Role         Role      `json:"role" gorm:"not null;default:'STUDENT'"`
	Status       Status    `json:"status" gorm:"not null;default:'ACTIVE'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func IsValidRole(role string) bool {
	switch role {
	case string(RoleAdmin), string(RoleTeacher), string(RoleStudent):
		return true
	default:
		return false
	}
}

// DashboardPath returns the landing route prefix owned by a role.
func DashboardPath(role Role) string {
	switch role {
	case RoleAdmin:
		return "/admin"
	case RoleTeacher:
		return "/teacher"
	case RoleStudent:
		return "/student"
	default:
		return "/"
	}
}
