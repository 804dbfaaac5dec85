package teachers

import (
	"time"

	"github.com/google/uuid"
)

// Teacher is the profile record linked one-to-one with a TEACHER-role user.
type Teacher struct {
	ID            uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	FirstName     string    `json:"first_name" gorm:"not null"`
	LastName      string    `json:"last_name" gorm:"not null"`
	EmployeeNo    string    `json:"employee_no" gorm:"uniqueIndex;not null"`
	Qualification string    `json:"qualification"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (t *Teacher) FullName() string {
	return t.FirstName + " " + t.LastName
}
