package repositories

import (
	"context"

	gormModels "arkfleet/opsboard/internal/models/gorm"

	"gorm.io/gorm"
)

// UploadRepository persists the ingestion audit trail via GORM.
type UploadRepository struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

func (r *UploadRepository) Record(ctx context.Context, upload *gormModels.Upload) error {
	return r.db.WithContext(ctx).Create(upload).Error
}

func (r *UploadRepository) Recent(ctx context.Context, limit int) ([]gormModels.Upload, error) {
	var uploads []gormModels.Upload
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&uploads).Error
	return uploads, err
}
