package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minilytics/backend/internal/domain/tracking"
	"github.com/minilytics/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// savePageViewAt stores an event with an explicit timestamp so window
// queries can be exercised against backdated data.
func savePageViewAt(t *testing.T, repo tracking.Repository, siteID string, path string, at time.Time) *tracking.PageView {
	t.Helper()

	pv := &tracking.PageView{
		ID:         uuid.New(),
		CreatedAt:  at,
		Domain:     "example.com",
		Path:       path,
		SiteID:     strPtr(siteID),
		Properties: "{}",
	}
	require.NoError(t, repo.Save(context.Background(), pv))
	return pv
}

// TestPageViewRepository_Integration runs the PageViewRepository
// against a real PostgreSQL database.
func TestPageViewRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	repo := persistence.NewGormPageViewRepository(testDB.DB)
	ctx := context.Background()

	t.Run("Save and read back", func(t *testing.T) {
		pv, err := tracking.NewPageView(tracking.NewPageViewInput{
			Domain:    "example.com",
			Path:      "/pricing",
			Referrer:  strPtr("https://google.com"),
			SiteID:    strPtr("ext-1"),
			EventName: strPtr("signup"),
			Properties: map[string]any{
				"plan": "pro",
			},
		})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, pv))

		views, err := repo.FindRecent(ctx, nil, 10)
		require.NoError(t, err)
		require.Len(t, views, 1)

		got := views[0]
		assert.Equal(t, pv.ID, got.ID)
		assert.Equal(t, "example.com", got.Domain)
		assert.Equal(t, "/pricing", got.Path)
		require.NotNil(t, got.Referrer)
		assert.Equal(t, "https://google.com", *got.Referrer)
		require.NotNil(t, got.EventName)
		assert.Equal(t, "signup", *got.EventName)
		assert.JSONEq(t, `{"plan":"pro"}`, got.Properties)
	})

	t.Run("FindSince filters by window start", func(t *testing.T) {
		testDB.CleanTables()

		now := time.Now()
		savePageViewAt(t, repo, "ext-1", "/old", now.AddDate(0, 0, -40))
		savePageViewAt(t, repo, "ext-1", "/recent", now.AddDate(0, 0, -3))
		savePageViewAt(t, repo, "ext-1", "/today", now)

		views, err := repo.FindSince(ctx, nil, now.AddDate(0, 0, -7))
		require.NoError(t, err)
		require.Len(t, views, 2)

		// Oldest first.
		assert.Equal(t, "/recent", views[0].Path)
		assert.Equal(t, "/today", views[1].Path)
	})

	t.Run("FindSince filters by site", func(t *testing.T) {
		testDB.CleanTables()

		now := time.Now()
		savePageViewAt(t, repo, "ext-1", "/a", now)
		savePageViewAt(t, repo, "ext-2", "/b", now)
		savePageViewAt(t, repo, "ext-2", "/c", now)

		siteID := "ext-2"
		views, err := repo.FindSince(ctx, &siteID, now.AddDate(0, 0, -1))
		require.NoError(t, err)
		require.Len(t, views, 2)
		for _, v := range views {
			require.NotNil(t, v.SiteID)
			assert.Equal(t, "ext-2", *v.SiteID)
		}
	})

	t.Run("FindRecent newest first with limit", func(t *testing.T) {
		testDB.CleanTables()

		now := time.Now()
		for i := 0; i < 5; i++ {
			savePageViewAt(t, repo, "ext-1", "/page", now.Add(-time.Duration(i)*time.Hour))
		}

		views, err := repo.FindRecent(ctx, nil, 3)
		require.NoError(t, err)
		require.Len(t, views, 3)
		for i := 1; i < len(views); i++ {
			assert.False(t, views[i-1].CreatedAt.Before(views[i].CreatedAt),
				"events must be ordered newest first")
		}
	})

	t.Run("Events survive site deletion", func(t *testing.T) {
		testDB.CleanTables()

		// site_id is a soft reference; rows keep their identifier even
		// when no matching site exists.
		savePageViewAt(t, repo, "gone-site", "/orphan", time.Now())

		siteID := "gone-site"
		views, err := repo.FindRecent(ctx, &siteID, 10)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "/orphan", views[0].Path)
	})
}
