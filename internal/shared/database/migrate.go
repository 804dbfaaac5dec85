package database

import (
	"gradely/internal/attendance"
	"gradely/internal/classes"
	"gradely/internal/exams"
	"gradely/internal/students"
	"gradely/internal/subjects"
	"gradely/internal/teachers"
	"gradely/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// uuid_generate_v4() defaults on the models need the extension.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&users.User{},
		&classes.Class{},
		&classes.Section{},
		&subjects.Subject{},
		&subjects.SubjectTeacher{},
		&subjects.SubjectGrade{},
		&students.Student{},
		&teachers.Teacher{},
		&attendance.Record{},
		&exams.Exam{},
		&exams.ExamSubject{},
		&exams.Result{},
	)
}
