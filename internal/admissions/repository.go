package admissions

import (
	"context"

	"gorm.io/gorm"

	"gradely/internal/students"
	"gradely/internal/teachers"
	"gradely/internal/users"
)

type Repository interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	AdmitStudent(ctx context.Context, user *users.User, student *students.Student) error
	AdmitTeacher(ctx context.Context, user *users.User, teacher *teachers.Teacher) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&users.User{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AdmitStudent creates the account and the profile in one transaction so a
// profile failure never leaves an orphaned login.
func (r *repository) AdmitStudent(ctx context.Context, user *users.User, student *students.Student) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		student.UserID = user.ID
		return tx.Create(student).Error
	})
}

// AdmitTeacher mirrors AdmitStudent for teacher accounts.
func (r *repository) AdmitTeacher(ctx context.Context, user *users.User, teacher *teachers.Teacher) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		teacher.UserID = user.ID
		return tx.Create(teacher).Error
	})
}
