package exams

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gradely/internal/auth"
	"gradely/internal/shared/constants"
	"gradely/internal/students"
	"gradely/internal/teachers"
	"gradely/internal/users"
	"gradely/pkg/cache"
	"gradely/pkg/logger"
)

type Service interface {
	Create(ctx context.Context, req *CreateExamRequest) (*Exam, error)
	List(ctx context.Context, classID string) ([]Exam, error)
	AttachSubjects(ctx context.Context, examID string, req *AttachSubjectsRequest) (int, error)
	EnterResults(ctx context.Context, identity *auth.Identity, examID string, req *EnterResultsRequest) (int, error)
	StudentResults(ctx context.Context, identity *auth.Identity, requestedStudentID string) (*StudentResults, error)
}

type service struct {
	repo        Repository
	studentRepo students.Repository
	teacherRepo teachers.Repository
	cache       cache.Service
	resultsTTL  time.Duration
	log         *logger.Logger
}

func NewService(repo Repository, studentRepo students.Repository, teacherRepo teachers.Repository, cacheService cache.Service, resultsTTL time.Duration) Service {
	return &service{
		repo:        repo,
		studentRepo: studentRepo,
		teacherRepo: teacherRepo,
		cache:       cacheService,
		resultsTTL:  resultsTTL,
		log:         logger.GetDefault(),
	}
}

func (s *service) Create(ctx context.Context, req *CreateExamRequest) (*Exam, error) {
	classID, err := uuid.Parse(req.ClassID)
	if err != nil {
		return nil, auth.BadRequest("class_id must be a valid id")
	}
	startDate, err := time.ParseInLocation("2006-01-02", req.StartDate, time.UTC)
	if err != nil {
		return nil, auth.BadRequest("start_date must be formatted YYYY-MM-DD")
	}
	endDate, err := time.ParseInLocation("2006-01-02", req.EndDate, time.UTC)
	if err != nil {
		return nil, auth.BadRequest("end_date must be formatted YYYY-MM-DD")
	}
	if endDate.Before(startDate) {
		return nil, auth.BadRequest("end_date must not be before start_date")
	}

	exam := &Exam{
		Name:      req.Name,
		Term:      req.Term,
		ClassID:   classID,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if err := s.repo.Create(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *service) List(ctx context.Context, classID string) ([]Exam, error) {
	return s.repo.List(ctx, classID)
}

func (s *service) AttachSubjects(ctx context.Context, examID string, req *AttachSubjectsRequest) (int, error) {
	exam, err := s.repo.GetByID(ctx, examID)
	if err != nil {
		if err == ErrExamNotFound {
			return 0, auth.NotFound("Exam not found")
		}
		return 0, err
	}

	entries := make([]ExamSubject, 0, len(req.Subjects))
	for _, entry := range req.Subjects {
		subjectID, err := uuid.Parse(entry.SubjectID)
		if err != nil {
			return 0, auth.BadRequest("subject_id must be a valid id")
		}
		entries = append(entries, ExamSubject{
			ExamID:    exam.ID,
			SubjectID: subjectID,
			MaxMarks:  entry.MaxMarks,
		})
	}

	if err := s.repo.AttachSubjects(ctx, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// EnterResults records marks for an exam. The grade per subject is derived
// from the marks against the exam subject's maximum.
func (s *service) EnterResults(ctx context.Context, identity *auth.Identity, examID string, req *EnterResultsRequest) (int, error) {
	teacher, err := s.teacherRepo.GetByUserID(ctx, identity.UserID)
	if err != nil {
		if err == teachers.ErrTeacherNotFound {
			return 0, auth.NotFound("Teacher profile not found")
		}
		return 0, err
	}

	exam, err := s.repo.GetByID(ctx, examID)
	if err != nil {
		if err == ErrExamNotFound {
			return 0, auth.NotFound("Exam not found")
		}
		return 0, err
	}

	examSubjects, err := s.repo.ListSubjects(ctx, examID)
	if err != nil {
		return 0, err
	}
	maxBySubject := make(map[string]int, len(examSubjects))
	for _, es := range examSubjects {
		maxBySubject[es.SubjectID.String()] = es.MaxMarks
	}

	results := make([]Result, 0, len(req.Results))
	for _, entry := range req.Results {
		maxMarks, ok := maxBySubject[entry.SubjectID]
		if !ok {
			return 0, auth.BadRequest("subject " + entry.SubjectID + " is not attached to this exam")
		}
		if entry.Marks > maxMarks {
			return 0, auth.BadRequest("marks exceed the subject maximum")
		}
		studentID, err := uuid.Parse(entry.StudentID)
		if err != nil {
			return 0, auth.BadRequest("student_id must be a valid id")
		}
		subjectID, _ := uuid.Parse(entry.SubjectID)

		results = append(results, Result{
			ExamID:      exam.ID,
			SubjectID:   subjectID,
			StudentID:   studentID,
			Marks:       entry.Marks,
			Grade:       gradeFor(entry.Marks, maxMarks),
			EnteredByID: teacher.ID,
		})
	}

	if err := s.repo.UpsertResults(ctx, results); err != nil {
		return 0, err
	}

	for _, result := range results {
		if err := s.cache.Delete(ctx, constants.StudentResultsKey(result.StudentID.String())); err != nil {
			s.log.WithError(err).Warn("student results invalidation failed")
		}
	}

	s.log.LogResultsEntered(ctx, teacher.ID.String(), examID, len(results))
	return len(results), nil
}

// StudentResults applies the same self-or-privileged rule as the attendance
// summary: STUDENT gets their own record, any supplied target is ignored;
// ADMIN and TEACHER must supply one.
func (s *service) StudentResults(ctx context.Context, identity *auth.Identity, requestedStudentID string) (*StudentResults, error) {
	var studentID string

	if identity.Role == users.RoleStudent {
		own, err := s.studentRepo.GetByUserID(ctx, identity.UserID)
		if err != nil {
			if err == students.ErrStudentNotFound {
				return nil, auth.NotFound("Student profile not found")
			}
			return nil, err
		}
		studentID = own.ID.String()
	} else {
		if requestedStudentID == "" {
			return nil, auth.BadRequest("studentId query parameter required for admin/teacher")
		}
		studentID = requestedStudentID
	}

	var results StudentResults
	err := s.cache.GetOrSet(ctx, constants.StudentResultsKey(studentID), s.resultsTTL,
		func() (interface{}, error) {
			return s.buildStudentResults(ctx, studentID)
		}, &results)
	if err != nil {
		return nil, err
	}
	return &results, nil
}

func (s *service) buildStudentResults(ctx context.Context, studentID string) (*StudentResults, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		if err == students.ErrStudentNotFound {
			return nil, auth.NotFound("Student not found")
		}
		return nil, err
	}

	out := &StudentResults{
		StudentID: student.ID.String(),
		Name:      student.FullName(),
		Class:     "Not assigned",
		Exams:     []ExamReport{},
	}
	if student.Class != nil {
		out.Class = student.Class.Name
	}
	if student.ClassID == nil {
		return out, nil
	}

	exams, err := s.repo.ListByClass(ctx, student.ClassID.String())
	if err != nil {
		return nil, err
	}
	marks, err := s.repo.ListResultsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	byExamSubject := make(map[string]Result, len(marks))
	for _, result := range marks {
		byExamSubject[result.ExamID.String()+"/"+result.SubjectID.String()] = result
	}

	for _, exam := range exams {
		examSubjects, err := s.repo.ListSubjects(ctx, exam.ID.String())
		if err != nil {
			return nil, err
		}

		report := ExamReport{
			ExamID:   exam.ID.String(),
			ExamName: exam.Name,
			Term:     exam.Term,
			Subjects: make([]SubjectResult, 0, len(examSubjects)),
		}

		for _, es := range examSubjects {
			row := SubjectResult{
				SubjectID: es.SubjectID.String(),
				MaxMarks:  es.MaxMarks,
			}
			if es.Subject != nil {
				row.SubjectName = es.Subject.Name
				row.SubjectCode = es.Subject.Code
			}
			if result, ok := byExamSubject[exam.ID.String()+"/"+es.SubjectID.String()]; ok {
				m := result.Marks
				row.Marks = &m
				row.Grade = result.Grade
				report.TotalMarks += m
			}
			report.TotalMax += es.MaxMarks
			report.Subjects = append(report.Subjects, row)
		}

		if report.TotalMax > 0 {
			ratio := float64(report.TotalMarks) / float64(report.TotalMax) * 100
			report.Percentage = float64(int(ratio*100+0.5)) / 100
			report.OverallGrade = gradeFor(report.TotalMarks, report.TotalMax)
		}
		out.Exams = append(out.Exams, report)
	}

	return out, nil
}

// gradeFor maps a score against its maximum onto the report-card scale.
func gradeFor(marks, maxMarks int) string {
	if maxMarks <= 0 {
		return "F"
	}
	percent := float64(marks) / float64(maxMarks) * 100
	switch {
	case percent >= 90:
		return "A"
	case percent >= 80:
		return "B"
	case percent >= 70:
		return "C"
	case percent >= 60:
		return "D"
	default:
		return "F"
	}
}
