package attendance

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Upsert(ctx context.Context, records []Record) error
	ListByStudent(ctx context.Context, studentID string) ([]Record, error)
	ListByStudentsOnDate(ctx context.Context, studentIDs []string, date time.Time) ([]Record, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Upsert writes the batch in one transaction; re-marking a day overwrites
// status and marker on the (student_id, date) constraint.
func (r *repository) Upsert(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "marked_by_id", "updated_at"}),
		}).
		Create(&records).Error
}

func (r *repository) ListByStudent(ctx context.Context, studentID string) ([]Record, error) {
	var list []Record
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) ListByStudentsOnDate(ctx context.Context, studentIDs []string, date time.Time) ([]Record, error) {
	var list []Record
	err := r.db.WithContext(ctx).
		Where("student_id IN ? AND date = ?", studentIDs, date).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
