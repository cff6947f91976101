//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"

	"aiAutomate/domain"
	"aiAutomate/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, db.Exec("TRUNCATE content_events, content_variant_stats, roi_calculations").Error)
	return db
}

func TestContentRepository_IncrementAccumulates(t *testing.T) {
	repo := NewContentRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Increment(ctx, domain.IntentSME, "m1", 1, 0))
	require.NoError(t, repo.Increment(ctx, domain.IntentSME, "m1", 1, 0))
	require.NoError(t, repo.Increment(ctx, domain.IntentSME, "m1", 0, 1))

	rows, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(2), rows[0].Impressions)
	assert.Equal(t, int64(1), rows[0].Conversions)
}

func TestContentRepository_SaveEvent(t *testing.T) {
	repo := NewContentRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.SaveEvent(ctx, domain.ContentEvent{
		SessionID: "s",
		VariantID: "m1",
		Audience:  string(domain.IntentSME),
		EventType: domain.ContentEventImpression,
		Context:   map[string]any{"page": "/mkb"},
	}))

	events, err := repo.RecentEvents(ctx, domain.IntentSME, "m1", 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "/mkb", events[0].Context["page"])
}

func TestROIRepository_SaveAndList(t *testing.T) {
	repo := NewROIRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.ROICalculationRecord{SessionID: "s", HoursPerWeek: 10, HourlyWage: 50, ImplementationCost: 5000}))

	records, err := repo.ListBySession(ctx, "s")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 10.0, records[0].HoursPerWeek)
}
