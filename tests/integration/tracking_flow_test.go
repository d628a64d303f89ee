package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	analyticsapp "github.com/minilytics/backend/internal/application/analytics"
	"github.com/minilytics/backend/internal/application/registry"
	trackingapp "github.com/minilytics/backend/internal/application/tracking"
	"github.com/minilytics/backend/internal/domain/shared"
	"github.com/minilytics/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestTrackingFlow_Integration exercises the full ingest-to-dashboard
// path against a real database: register a site, ingest events for it,
// then read the summary and recent events back.
func TestTrackingFlow_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	ctx := context.Background()

	siteRepo := persistence.NewGormSiteRepository(testDB.DB)
	pageViewRepo := persistence.NewGormPageViewRepository(testDB.DB)

	siteService := registry.NewSiteService(siteRepo)
	analyticsService := analyticsapp.NewService(pageViewRepo)

	userID := uuid.New()

	created, err := siteService.Create(ctx, userID, registry.CreateSiteRequest{Domain: "Example.COM"})
	require.NoError(t, err)
	assert.Equal(t, "example.com", created.Domain)
	require.NotEmpty(t, created.SiteID)

	// Ingest a handful of events. Close flushes the background writes
	// before the assertions run.
	ingestService := trackingapp.NewIngestService(pageViewRepo, zap.NewNop())
	payloads := []trackingapp.TrackRequest{
		{Domain: "example.com", Path: "/", SiteID: &created.SiteID},
		{Domain: "example.com", Path: "/", SiteID: &created.SiteID},
		{Domain: "example.com", Path: "/pricing", SiteID: &created.SiteID},
		{Domain: "example.com", Path: "/signup", SiteID: &created.SiteID,
			EventName:  strPtr("signup"),
			Properties: map[string]any{"plan": "pro"}},
	}
	for _, p := range payloads {
		require.NoError(t, ingestService.Ingest(ctx, p))
	}
	ingestService.Close()

	t.Run("Summary reflects ingested events", func(t *testing.T) {
		summary, err := analyticsService.Summarize(ctx, &created.SiteID, "7d")
		require.NoError(t, err)

		assert.Equal(t, 4, summary.Total)
		assert.Equal(t, 4, summary.Today)
		// 4 / 7 rounds to 1.
		assert.Equal(t, 1.0, summary.AvgPerDay)
		require.Len(t, summary.Daily, 7)
		assert.Equal(t, 4, summary.Daily[6].Count)

		require.NotEmpty(t, summary.TopPages)
		assert.Equal(t, "/", summary.TopPages[0].Path)
		assert.Equal(t, 2, summary.TopPages[0].Count)
	})

	t.Run("Summary for unknown site is empty", func(t *testing.T) {
		unknown := "no-such-site"
		summary, err := analyticsService.Summarize(ctx, &unknown, "7d")
		require.NoError(t, err)
		assert.Equal(t, 0, summary.Total)
	})

	t.Run("Recent events include custom event payload", func(t *testing.T) {
		events, err := analyticsService.RecentEvents(ctx, &created.SiteID, 10)
		require.NoError(t, err)
		require.Len(t, events, 4)

		var sawSignup bool
		for _, ev := range events {
			if ev.EventName != nil && *ev.EventName == "signup" {
				sawSignup = true
				assert.Equal(t, "pro", ev.Properties["plan"])
			}
		}
		assert.True(t, sawSignup, "expected the signup event in recent events")
	})

	t.Run("Invalid window is rejected", func(t *testing.T) {
		_, err := analyticsService.Summarize(ctx, nil, "14d")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})

	t.Run("Deleting the site keeps its events", func(t *testing.T) {
		require.NoError(t, siteService.Delete(ctx, userID, created.ID))

		sites, err := siteService.List(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, sites)

		summary, err := analyticsService.Summarize(ctx, &created.SiteID, "7d")
		require.NoError(t, err)
		assert.Equal(t, 4, summary.Total)
	})

	t.Run("Delete by another user surfaces as not found", func(t *testing.T) {
		again, err := siteService.Create(ctx, userID, registry.CreateSiteRequest{Domain: "again.example"})
		require.NoError(t, err)

		err = siteService.Delete(ctx, uuid.New(), again.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

// TestIngestService_BackgroundWrite verifies the write completes off
// the request path without the caller waiting on it.
func TestIngestService_BackgroundWrite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	ctx := context.Background()

	pageViewRepo := persistence.NewGormPageViewRepository(testDB.DB)
	ingestService := trackingapp.NewIngestService(pageViewRepo, zap.NewNop())

	require.NoError(t, ingestService.Ingest(ctx, trackingapp.TrackRequest{
		Domain: "example.com",
		Path:   "/async",
	}))

	require.Eventually(t, func() bool {
		views, err := pageViewRepo.FindRecent(ctx, nil, 1)
		return err == nil && len(views) == 1
	}, 5*time.Second, 50*time.Millisecond, "event was not persisted")

	ingestService.Close()
}
