package tracking

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/minilytics/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewPageView(t *testing.T) {
	t.Run("creates page view with required fields", func(t *testing.T) {
		pv, err := NewPageView(NewPageViewInput{
			Domain: "example.com",
			Path:   "/pricing",
		})
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, pv.ID)
		assert.Equal(t, "example.com", pv.Domain)
		assert.Equal(t, "/pricing", pv.Path)
		assert.Nil(t, pv.Referrer)
		assert.Nil(t, pv.SiteID)
		assert.Nil(t, pv.EventName)
		assert.Equal(t, "{}", pv.Properties)
		assert.False(t, pv.CreatedAt.IsZero())
	})

	t.Run("keeps optional fields when present", func(t *testing.T) {
		pv, err := NewPageView(NewPageViewInput{
			Domain:    "example.com",
			Path:      "/",
			Referrer:  strPtr("https://news.ycombinator.com/"),
			SiteID:    strPtr("abc-123"),
			EventName: strPtr("signup_click"),
			Properties: map[string]any{
				"plan": "pro",
			},
		})
		require.NoError(t, err)

		require.NotNil(t, pv.Referrer)
		assert.Equal(t, "https://news.ycombinator.com/", *pv.Referrer)
		require.NotNil(t, pv.SiteID)
		assert.Equal(t, "abc-123", *pv.SiteID)
		require.NotNil(t, pv.EventName)
		assert.Equal(t, "signup_click", *pv.EventName)

		var props map[string]any
		require.NoError(t, json.Unmarshal([]byte(pv.Properties), &props))
		assert.Equal(t, "pro", props["plan"])
	})

	t.Run("treats empty optional strings as absent", func(t *testing.T) {
		pv, err := NewPageView(NewPageViewInput{
			Domain:   "example.com",
			Path:     "/",
			Referrer: strPtr(""),
			SiteID:   strPtr(""),
		})
		require.NoError(t, err)

		assert.Nil(t, pv.Referrer)
		assert.Nil(t, pv.SiteID)
	})

	t.Run("rejects missing domain", func(t *testing.T) {
		_, err := NewPageView(NewPageViewInput{Path: "/"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})

	t.Run("rejects missing path", func(t *testing.T) {
		_, err := NewPageView(NewPageViewInput{Domain: "example.com"})
		require.Error(t, err)
	})

	t.Run("rejects whitespace-only fields", func(t *testing.T) {
		_, err := NewPageView(NewPageViewInput{Domain: "  ", Path: "  "})
		require.Error(t, err)
	})

	t.Run("caps property count", func(t *testing.T) {
		props := make(map[string]any, MaxProperties+1)
		for i := 0; i <= MaxProperties; i++ {
			props[fmt.Sprintf("key%d", i)] = i
		}

		_, err := NewPageView(NewPageViewInput{
			Domain:     "example.com",
			Path:       "/",
			EventName:  strPtr("bulk"),
			Properties: props,
		})
		require.Error(t, err)

		delete(props, "key0")
		pv, err := NewPageView(NewPageViewInput{
			Domain:     "example.com",
			Path:       "/",
			EventName:  strPtr("bulk"),
			Properties: props,
		})
		require.NoError(t, err)
		assert.NotEqual(t, "{}", pv.Properties)
	})
}
