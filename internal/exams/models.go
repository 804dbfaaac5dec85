package exams

import (
	"time"

	"github.com/google/uuid"

	"gradely/internal/classes"
	"gradely/internal/subjects"
)

// Exam is an examination window for one class (e.g. "Midterm, Grade 5").
type Exam struct {
	ID        uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name      string         `json:"name" gorm:"not null"`
	Term      string         `json:"term" gorm:"not null"`
	ClassID   uuid.UUID      `json:"class_id" gorm:"type:uuid;not null;index"`
	Class     *classes.Class `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	StartDate time.Time      `json:"start_date" gorm:"not null"`
	EndDate   time.Time      `json:"end_date" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ExamSubject attaches a subject to an exam with its maximum marks.
type ExamSubject struct {
	ID        uuid.UUID         `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	ExamID    uuid.UUID         `json:"exam_id" gorm:"type:uuid;not null;uniqueIndex:idx_exam_subject"`
	SubjectID uuid.UUID         `json:"subject_id" gorm:"type:uuid;not null;uniqueIndex:idx_exam_subject"`
	Subject   *subjects.Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	MaxMarks  int               `json:"max_marks" gorm:"not null"`
	CreatedAt time.Time         `json:"created_at"`
}

// Result is one student's marks in one exam subject.
type Result struct {
	ID          uuid.UUID         `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	ExamID      uuid.UUID         `json:"exam_id" gorm:"type:uuid;not null"`
	SubjectID   uuid.UUID         `json:"subject_id" gorm:"type:uuid;not null"`
	Subject     *subjects.Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	StudentID   uuid.UUID         `json:"student_id" gorm:"type:uuid;not null;index"`
	Marks       int               `json:"marks" gorm:"not null"`
	Grade       string            `json:"grade" gorm:"not null"`
	EnteredByID uuid.UUID         `json:"entered_by_id" gorm:"type:uuid;not null"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (Result) TableName() string { return "exam_results" }

// CreateExamRequest creates a new exam (admin only).
type CreateExamRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Term      string `json:"term" validate:"required,min=2,max=50"`
	ClassID   string `json:"class_id" validate:"required,uuid"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// AttachSubjectEntry attaches one subject with its maximum marks.
type AttachSubjectEntry struct {
	SubjectID string `json:"subject_id" validate:"required,uuid"`
	MaxMarks  int    `json:"max_marks" validate:"required,min=1,max=1000"`
}

// AttachSubjectsRequest attaches subjects to an exam (admin only).
type AttachSubjectsRequest struct {
	Subjects []AttachSubjectEntry `json:"subjects" validate:"required,min=1,dive"`
}

// ResultEntry is one student's marks for one subject.
type ResultEntry struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
	SubjectID string `json:"subject_id" validate:"required,uuid"`
	Marks     int    `json:"marks" validate:"min=0,max=1000"`
}

// EnterResultsRequest records a batch of results (teacher only).
type EnterResultsRequest struct {
	Results []ResultEntry `json:"results" validate:"required,min=1,dive"`
}

// SubjectResult is one row of a student's report card for an exam.
type SubjectResult struct {
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	SubjectCode string `json:"subject_code"`
	MaxMarks    int    `json:"max_marks"`
	Marks       *int   `json:"marks"`
	Grade       string `json:"grade,omitempty"`
}

// ExamReport is a student's outcome across one exam.
type ExamReport struct {
	ExamID       string          `json:"exam_id"`
	ExamName     string          `json:"exam_name"`
	Term         string          `json:"term"`
	Subjects     []SubjectResult `json:"subjects"`
	TotalMarks   int             `json:"total_marks"`
	TotalMax     int             `json:"total_max_marks"`
	Percentage   float64         `json:"percentage"`
	OverallGrade string          `json:"overall_grade"`
}

// StudentResults is the full results payload for one student.
type StudentResults struct {
	StudentID string       `json:"student_id"`
	Name      string       `json:"name"`
	Class     string       `json:"class"`
	Exams     []ExamReport `json:"exams"`
}
