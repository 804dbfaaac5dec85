package admissions

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"gradely/internal/audit"
	"gradely/internal/auth"
	"gradely/internal/students"
	"gradely/internal/teachers"
	"gradely/internal/users"
	"gradely/pkg/logger"
)

type Service interface {
	AdmitStudent(ctx context.Context, actor *auth.Identity, req *AdmitStudentRequest) (*StudentAdmission, error)
	AdmitTeacher(ctx context.Context, actor *auth.Identity, req *AdmitTeacherRequest) (*TeacherAdmission, error)
}

type service struct {
	repo  Repository
	audit audit.Producer
	log   *logger.Logger
}

func NewService(repo Repository, auditProducer audit.Producer) Service {
	return &service{
		repo:  repo,
		audit: auditProducer,
		log:   logger.GetDefault(),
	}
}

func (s *service) AdmitStudent(ctx context.Context, actor *auth.Identity, req *AdmitStudentRequest) (*StudentAdmission, error) {
	user, err := s.newUser(ctx, req.Email, req.Password, users.RoleStudent)
	if err != nil {
		return nil, err
	}

	student := &students.Student{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		AdmissionNo: req.AdmissionNo,
	}
	if req.ClassID != "" {
		id, parseErr := uuid.Parse(req.ClassID)
		if parseErr != nil {
			return nil, auth.BadRequest("Invalid class id")
		}
		student.ClassID = &id
	}
	if req.SectionID != "" {
		id, parseErr := uuid.Parse(req.SectionID)
		if parseErr != nil {
			return nil, auth.BadRequest("Invalid section id")
		}
		student.SectionID = &id
	}

	if err := s.repo.AdmitStudent(ctx, user, student); err != nil {
		return nil, err
	}

	s.recordAdmission(ctx, actor, user, "student admitted")
	return &StudentAdmission{User: user, Student: student}, nil
}

func (s *service) AdmitTeacher(ctx context.Context, actor *auth.Identity, req *AdmitTeacherRequest) (*TeacherAdmission, error) {
	user, err := s.newUser(ctx, req.Email, req.Password, users.RoleTeacher)
	if err != nil {
		return nil, err
	}

	teacher := &teachers.Teacher{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		EmployeeNo:    req.EmployeeNo,
		Qualification: req.Qualification,
	}

	if err := s.repo.AdmitTeacher(ctx, user, teacher); err != nil {
		return nil, err
	}

	s.recordAdmission(ctx, actor, user, "teacher admitted")
	return &TeacherAdmission{User: user, Teacher: teacher}, nil
}

func (s *service) newUser(ctx context.Context, email, password string, role users.Role) (*users.User, error) {
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, auth.BadRequest("User with this email already exists")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &users.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       users.StatusActive,
	}, nil
}

func (s *service) recordAdmission(ctx context.Context, actor *auth.Identity, admitted *users.User, detail string) {
	actorID := ""
	if actor != nil {
		actorID = actor.UserID
	}
	s.log.LogAdmission(ctx, actorID, string(admitted.Role), admitted.ID.String())

	event := audit.NewEvent(audit.EventAdmission)
	event.ActorID = actorID
	event.Email = admitted.Email
	event.Role = string(admitted.Role)
	event.Detail = detail
	if err := s.audit.Publish(ctx, event); err != nil {
		s.log.WarnContext(ctx, "audit publish failed",
			slog.String("event_type", string(event.Type)),
			slog.String("error", err.Error()),
		)
	}
}
