package classes

import (
	"time"

	"github.com/google/uuid"
)

// Class is a grade level (e.g. "Grade 5"). Order drives display sorting.
type Class struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Order     int       `json:"order" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Section subdivides a class (e.g. "5-A", "5-B").
type Section struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"not null"`
	ClassID   uuid.UUID `json:"class_id" gorm:"type:uuid;not null;index"`
	Class     *Class    `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
