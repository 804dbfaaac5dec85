package subjects

import (
	"time"

	"github.com/google/uuid"
)

type Subject struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"not null"`
	Code      string    `json:"code" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SubjectTeacher assigns a teacher to teach a subject.
type SubjectTeacher struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	SubjectID uuid.UUID `json:"subject_id" gorm:"type:uuid;not null;uniqueIndex:idx_subject_teacher"`
	TeacherID uuid.UUID `json:"teacher_id" gorm:"type:uuid;not null;uniqueIndex:idx_subject_teacher"`
	CreatedAt time.Time `json:"created_at"`
}

// SubjectGrade attaches a subject to a class's curriculum.
type SubjectGrade struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	SubjectID uuid.UUID `json:"subject_id" gorm:"type:uuid;not null;uniqueIndex:idx_subject_grade"`
	ClassID   uuid.UUID `json:"class_id" gorm:"type:uuid;not null;uniqueIndex:idx_subject_grade"`
	CreatedAt time.Time `json:"created_at"`
}

// AssignTeacherRequest assigns a teacher to a subject.
type AssignTeacherRequest struct {
	TeacherID string `json:"teacher_id" validate:"required,uuid"`
}

// AssignGradeRequest attaches a subject to a class.
type AssignGradeRequest struct {
	ClassID string `json:"class_id" validate:"required,uuid"`
}
