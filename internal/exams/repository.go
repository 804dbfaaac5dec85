package exams

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrExamNotFound = errors.New("exam not found")

type Repository interface {
	Create(ctx context.Context, exam *Exam) error
	GetByID(ctx context.Context, id string) (*Exam, error)
	List(ctx context.Context, classID string) ([]Exam, error)
	ListByClass(ctx context.Context, classID string) ([]Exam, error)
	AttachSubjects(ctx context.Context, entries []ExamSubject) error
	ListSubjects(ctx context.Context, examID string) ([]ExamSubject, error)
	UpsertResults(ctx context.Context, results []Result) error
	ListResultsByStudent(ctx context.Context, studentID string) ([]Result, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, exam *Exam) error {
	return r.db.WithContext(ctx).Create(exam).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*Exam, error) {
	var exam Exam
	err := r.db.WithContext(ctx).Preload("Class").Where("id = ?", id).First(&exam).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}
	return &exam, nil
}

// List returns exams, optionally filtered to one class.
func (r *repository) List(ctx context.Context, classID string) ([]Exam, error) {
	query := r.db.WithContext(ctx).Preload("Class").Order("start_date DESC")
	if classID != "" {
		query = query.Where("class_id = ?", classID)
	}
	var list []Exam
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) ListByClass(ctx context.Context, classID string) ([]Exam, error) {
	var list []Exam
	err := r.db.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("start_date DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) AttachSubjects(ctx context.Context, entries []ExamSubject) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "exam_id"}, {Name: "subject_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"max_marks"}),
		}).
		Create(&entries).Error
}

func (r *repository) ListSubjects(ctx context.Context, examID string) ([]ExamSubject, error) {
	var list []ExamSubject
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("exam_id = ?", examID).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) UpsertResults(ctx context.Context, results []Result) error {
	if len(results) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "exam_id"}, {Name: "subject_id"}, {Name: "student_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"marks", "grade", "entered_by_id", "updated_at"}),
		}).
		Create(&results).Error
}

func (r *repository) ListResultsByStudent(ctx context.Context, studentID string) ([]Result, error) {
	var list []Result
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("student_id = ?", studentID).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
