package subjects

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSubjectNotFound = errors.New("subject not found")

type Repository interface {
	GetByID(ctx context.Context, id string) (*Subject, error)
	List(ctx context.Context) ([]Subject, error)
	AssignTeacher(ctx context.Context, assignment *SubjectTeacher) error
	AssignGrade(ctx context.Context, assignment *SubjectGrade) error
	IsAttachedToClass(ctx context.Context, subjectID, classID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id string) (*Subject, error) {
	var subject Subject
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&subject).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	return &subject, nil
}

func (r *repository) List(ctx context.Context) ([]Subject, error) {
	var list []Subject
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// AssignTeacher is idempotent on the (subject_id, teacher_id) constraint.
func (r *repository) AssignTeacher(ctx context.Context, assignment *SubjectTeacher) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subject_id"}, {Name: "teacher_id"}},
			DoNothing: true,
		}).
		Create(assignment).Error
}

// AssignGrade is idempotent on the (subject_id, class_id) constraint.
func (r *repository) AssignGrade(ctx context.Context, assignment *SubjectGrade) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subject_id"}, {Name: "class_id"}},
			DoNothing: true,
		}).
		Create(assignment).Error
}

func (r *repository) IsAttachedToClass(ctx context.Context, subjectID, classID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&SubjectGrade{}).
		Where("subject_id = ? AND class_id = ?", subjectID, classID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
