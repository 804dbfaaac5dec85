package admissions

import (
	"gradely/internal/students"
	"gradely/internal/teachers"
	"gradely/internal/users"
)

// AdmitStudentRequest creates a STUDENT account and its profile together.
type AdmitStudentRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	AdmissionNo string `json:"admission_no" validate:"required"`
	ClassID     string `json:"class_id" validate:"omitempty,uuid"`
	SectionID   string `json:"section_id" validate:"omitempty,uuid"`
}

// AdmitTeacherRequest creates a TEACHER account and its profile together.
type AdmitTeacherRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	EmployeeNo    string `json:"employee_no" validate:"required"`
	Qualification string `json:"qualification"`
}

type StudentAdmission struct {
	User    *users.User       `json:"user"`
	Student *students.Student `json:"student"`
}

type TeacherAdmission struct {
	User    *users.User       `json:"user"`
	Teacher *teachers.Teacher `json:"teacher"`
}
