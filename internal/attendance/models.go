package attendance

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusLate    Status = "LATE"
	StatusExcused Status = "EXCUSED"
)

func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusPresent, StatusAbsent, StatusLate, StatusExcused:
		return true
	default:
		return false
	}
}

// Record is one student's attendance on one day. Date is stored truncated
// to midnight UTC; the (student_id, date) pair is unique and marking is an
// upsert against it.
type Record struct {
	ID         uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	StudentID  uuid.UUID `json:"student_id" gorm:"type:uuid;not null"`
	Date       time.Time `json:"date" gorm:"type:date;not null"`
	Status     Status    `json:"status" gorm:"not null"`
	MarkedByID uuid.UUID `json:"marked_by_id" gorm:"type:uuid;not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Record) TableName() string { return "attendance_records" }

// MarkEntry is one student's status within a marking request.
type MarkEntry struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
	Status    string `json:"status" validate:"required,oneof=PRESENT ABSENT LATE EXCUSED"`
}

// MarkRequest marks a whole class section for one day.
type MarkRequest struct {
	ClassID   string      `json:"class_id" validate:"required,uuid"`
	SectionID string      `json:"section_id" validate:"required,uuid"`
	Date      string      `json:"date" validate:"required,datetime=2006-01-02"`
	Records   []MarkEntry `json:"records" validate:"required,min=1,dive"`
}

// StudentInfo describes the student a summary belongs to.
type StudentInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AdmissionNo string `json:"admission_no"`
	Class       string `json:"class"`
	Section     string `json:"section"`
}

// SummaryTotals aggregates a student's whole history.
type SummaryTotals struct {
	TotalDays  int     `json:"total_days"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Late       int     `json:"late"`
	Excused    int     `json:"excused"`
	Percentage float64 `json:"attendance_percentage"`
}

// MonthBreakdown aggregates one calendar month (key formatted YYYY-MM).
type MonthBreakdown struct {
	Month   string `json:"month"`
	Total   int    `json:"total"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	Late    int    `json:"late"`
	Excused int    `json:"excused"`
}

// DayRecord is one line of the recent-history tail.
type DayRecord struct {
	Date   string `json:"date"`
	Status Status `json:"status"`
}

// Summary is the full student attendance report.
type Summary struct {
	Student          StudentInfo      `json:"student"`
	Totals           SummaryTotals    `json:"summary"`
	MonthlyBreakdown []MonthBreakdown `json:"monthly_breakdown"`
	RecentRecords    []DayRecord      `json:"recent_records"`
}

// ClassDayEntry is one student's row in a class-day view.
type ClassDayEntry struct {
	StudentID   string `json:"student_id"`
	Name        string `json:"name"`
	AdmissionNo string `json:"admission_no"`
	Status      Status `json:"status,omitempty"` // empty when unmarked
}
