package postgres

import (
	"context"
	"fmt"
	"time"

	"aiAutomate/business/content"
	"aiAutomate/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContentRepository struct {
	DB *gorm.DB
}

var (
	_ content.EventRepository = (*ContentRepository)(nil)
	_ content.StatsRepository = (*ContentRepository)(nil)
)

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

// ---- Events ----

func (r *ContentRepository) SaveEvent(ctx context.Context, event domain.ContentEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("failed to save content event: %w", err)
	}

	return nil
}

// ---- Stats ----

// Increment upserts the counter row, adding to the stored values in SQL.
func (r *ContentRepository) Increment(ctx context.Context, audience domain.IntentType, variantID string, impressions, conversions int64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	row := domain.ContentVariantStats{
		Audience:    string(audience),
		VariantID:   variantID,
		Impressions: impressions,
		Conversions: conversions,
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "audience"}, {Name: "variant_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"impressions": gorm.Expr("content_variant_stats.impressions + ?", impressions),
				"conversions": gorm.Expr("content_variant_stats.conversions + ?", conversions),
				"updated_at":  time.Now(),
			}),
		},
	).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to upsert content_variant_stats: %w", err)
	}

	return nil
}

func (r *ContentRepository) LoadAll(ctx context.Context) ([]domain.ContentVariantStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.ContentVariantStats
	if err := r.DB.WithContext(ctx).Order("audience, variant_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query content_variant_stats: %w", err)
	}
	return rows, nil
}

// RecentEvents lists the newest events for a variant, newest first.
func (r *ContentRepository) RecentEvents(ctx context.Context, audience domain.IntentType, variantID string, limit int) ([]domain.ContentEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = 50
	}

	var events []domain.ContentEvent
	err := r.DB.WithContext(ctx).
		Where("audience = ? AND variant_id = ?", string(audience), variantID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query content_events: %w", err)
	}
	return events, nil
}
