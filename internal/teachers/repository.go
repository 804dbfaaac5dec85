package teachers

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrTeacherNotFound = errors.New("teacher not found")

type Repository interface {
	GetByID(ctx context.Context, id string) (*Teacher, error)
	GetByUserID(ctx context.Context, userID string) (*Teacher, error)
	Create(ctx context.Context, teacher *Teacher) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id string) (*Teacher, error) {
	var teacher Teacher
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&teacher).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	return &teacher, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID string) (*Teacher, error) {
	var teacher Teacher
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&teacher).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	return &teacher, nil
}

func (r *repository) Create(ctx context.Context, teacher *Teacher) error {
	return r.db.WithContext(ctx).Create(teacher).Error
}
