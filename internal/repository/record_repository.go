package repository

import (
	"context"

	"gorm.io/gorm"

	"storefront/internal/model"
)

// RecordRepository defines persistence operations for generic records.
type RecordRepository interface {
	Create(ctx context.Context, record *model.Record) error
	List(ctx context.Context) ([]model.Record, error)
}

type recordRepository struct {
	db *gorm.DB
}

// NewRecordRepository builds a GORM-backed repository.
func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) Create(ctx context.Context, record *model.Record) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *recordRepository) List(ctx context.Context) ([]model.Record, error) {
	var records []model.Record
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
