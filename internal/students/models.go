package students

import (
	"time"

	"github.com/google/uuid"

	"gradely/internal/classes"
)

// Student is the profile record linked one-to-one with a STUDENT-role user.
// The link via UserID is what resolves "my own record" for self-scoped
// endpoints.
type Student struct {
	ID          uuid.UUID        `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID      uuid.UUID        `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	FirstName   string           `json:"first_name" gorm:"not null"`
	LastName    string           `json:"last_name" gorm:"not null"`
	AdmissionNo string           `json:"admission_no" gorm:"uniqueIndex;not null"`
	ClassID     *uuid.UUID       `json:"class_id" gorm:"type:uuid;index"`
	SectionID   *uuid.UUID       `json:"section_id" gorm:"type:uuid;index"`
	Class       *classes.Class   `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	Section     *classes.Section `json:"section,omitempty" gorm:"foreignKey:SectionID"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// FullName joins the name parts for display.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
