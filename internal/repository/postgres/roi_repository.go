package postgres

import (
	"context"
	"fmt"

	"aiAutomate/business/roi"
	"aiAutomate/domain"

	"gorm.io/gorm"
)

type ROIRepository struct {
	DB *gorm.DB
}

var _ roi.CalculationRepository = (*ROIRepository)(nil)

func NewROIRepository(db *gorm.DB) *ROIRepository {
	return &ROIRepository{DB: db}
}

func (r *ROIRepository) Save(ctx context.Context, record domain.ROICalculationRecord) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to save roi calculation: %w", err)
	}
	return nil
}

func (r *ROIRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.ROICalculationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var records []domain.ROICalculationRecord
	err := r.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query roi_calculations: %w", err)
	}
	return records, nil
}
