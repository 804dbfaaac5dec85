package subjects

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"gradely/internal/auth"
	"gradely/internal/teachers"
)

type Service interface {
	List(ctx context.Context) ([]Subject, error)
	AssignTeacher(ctx context.Context, subjectID string, req *AssignTeacherRequest) error
	AssignGrade(ctx context.Context, subjectID string, req *AssignGradeRequest) error
}

type service struct {
	repo        Repository
	teacherRepo teachers.Repository
}

func NewService(repo Repository, teacherRepo teachers.Repository) Service {
	return &service{repo: repo, teacherRepo: teacherRepo}
}

func (s *service) List(ctx context.Context) ([]Subject, error) {
	return s.repo.List(ctx)
}

func (s *service) AssignTeacher(ctx context.Context, subjectID string, req *AssignTeacherRequest) error {
	subject, err := s.resolveSubject(ctx, subjectID)
	if err != nil {
		return err
	}

	teacher, err := s.teacherRepo.GetByID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, teachers.ErrTeacherNotFound) {
			return auth.NotFound("Teacher not found")
		}
		return err
	}

	return s.repo.AssignTeacher(ctx, &SubjectTeacher{
		SubjectID: subject.ID,
		TeacherID: teacher.ID,
	})
}

func (s *service) AssignGrade(ctx context.Context, subjectID string, req *AssignGradeRequest) error {
	subject, err := s.resolveSubject(ctx, subjectID)
	if err != nil {
		return err
	}

	classID, err := uuid.Parse(req.ClassID)
	if err != nil {
		return auth.BadRequest("Invalid class id")
	}

	return s.repo.AssignGrade(ctx, &SubjectGrade{
		SubjectID: subject.ID,
		ClassID:   classID,
	})
}

func (s *service) resolveSubject(ctx context.Context, subjectID string) (*Subject, error) {
	subject, err := s.repo.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, ErrSubjectNotFound) {
			return nil, auth.NotFound("Subject not found")
		}
		return nil, err
	}
	return subject, nil
}
