package students

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrStudentNotFound = errors.New("student not found")

type Repository interface {
	GetByID(ctx context.Context, id string) (*Student, error)
	GetByUserID(ctx context.Context, userID string) (*Student, error)
	ListByClassSection(ctx context.Context, classID, sectionID string) ([]Student, error)
	Create(ctx context.Context, student *Student) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id string) (*Student, error) {
	var student Student
	err := r.db.WithContext(ctx).
		Preload("Class").
		Preload("Section").
		Where("id = ?", id).
		First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID string) (*Student, error) {
	var student Student
	err := r.db.WithContext(ctx).
		Preload("Class").
		Preload("Section").
		Where("user_id = ?", userID).
		First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (r *repository) ListByClassSection(ctx context.Context, classID, sectionID string) ([]Student, error) {
	var list []Student
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND section_id = ?", classID, sectionID).
		Order("last_name, first_name").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) Create(ctx context.Context, student *Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}
