package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds database constraints the attendance and results
// upserts depend on.
func MigrateConstraints(db *gorm.DB) error {
	// One attendance record per student per day; marking is an upsert on
	// this index.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_student_per_day
		ON attendance_records (student_id, date);
	`).Error
	if err != nil {
		return err
	}

	// One result per student per exam subject.
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_result_per_exam_subject
		ON exam_results (exam_id, subject_id, student_id);
	`).Error
	if err != nil {
		return err
	}

	// Index for summary queries scanning a student's history.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_attendance_student_date
		ON attendance_records (student_id, date DESC);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
