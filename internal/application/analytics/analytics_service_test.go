package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minilytics/backend/internal/domain/shared"
	"github.com/minilytics/backend/internal/domain/tracking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPageViewRepository is a mock implementation of tracking.Repository
type MockPageViewRepository struct {
	mock.Mock
}

func (m *MockPageViewRepository) Save(ctx context.Context, pv *tracking.PageView) error {
	args := m.Called(ctx, pv)
	return args.Error(0)
}

func (m *MockPageViewRepository) FindSince(ctx context.Context, siteID *string, since time.Time) ([]tracking.PageView, error) {
	args := m.Called(ctx, siteID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tracking.PageView), args.Error(1)
}

func (m *MockPageViewRepository) FindRecent(ctx context.Context, siteID *string, limit int) ([]tracking.PageView, error) {
	args := m.Called(ctx, siteID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tracking.PageView), args.Error(1)
}

func TestService_Summarize(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local)

	newService := func(repo *MockPageViewRepository) *Service {
		s := NewService(repo)
		s.now = func() time.Time { return now }
		return s
	}

	t.Run("queries only the requested window", func(t *testing.T) {
		repo := new(MockPageViewRepository)
		service := newService(repo)

		repo.On("FindSince", mock.Anything, (*string)(nil), WindowStart(now, 7)).
			Return([]tracking.PageView{
				{Domain: "example.com", Path: "/", CreatedAt: now},
			}, nil)

		summary, err := service.Summarize(context.Background(), nil, "7d")
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Total)
		assert.Len(t, summary.Daily, 7)
		repo.AssertExpectations(t)
	})

	t.Run("defaults to thirty days", func(t *testing.T) {
		repo := new(MockPageViewRepository)
		service := newService(repo)

		repo.On("FindSince", mock.Anything, (*string)(nil), WindowStart(now, 30)).
			Return([]tracking.PageView{}, nil)

		summary, err := service.Summarize(context.Background(), nil, "")
		require.NoError(t, err)
		assert.Len(t, summary.Daily, 30)
	})

	t.Run("passes the site filter through", func(t *testing.T) {
		repo := new(MockPageViewRepository)
		service := newService(repo)
		siteID := "abc-123"

		repo.On("FindSince", mock.Anything, &siteID, mock.Anything).
			Return([]tracking.PageView{}, nil)

		_, err := service.Summarize(context.Background(), &siteID, "90d")
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects unknown windows", func(t *testing.T) {
		repo := new(MockPageViewRepository)
		service := newService(repo)

		_, err := service.Summarize(context.Background(), nil, "14d")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
		repo.AssertNotCalled(t, "FindSince")
	})
}

func TestService_RecentEvents(t *testing.T) {
	t.Run("applies the default limit", func(t *testing.T) {
		repo := new(MockPageViewRepository)
		service := NewService(repo)

		repo.On("FindRecent", mock.Anything, (*string)(nil), defaultEventLimit).
			Return([]tracking.PageView{}, nil)

		result, err := service.RecentEvents(context.Background(), nil, 0)
		require.NoError(t, err)
		assert.Empty(t, result)
		repo.AssertExpectations(t)
	})

	t.Run("caps oversized limits", func(t *testing.T) {
		repo := new(MockPageViewRepository)
		service := NewService(repo)

		repo.On("FindRecent", mock.Anything, (*string)(nil), maxEventLimit).
			Return([]tracking.PageView{}, nil)

		_, err := service.RecentEvents(context.Background(), nil, 10000)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("decodes stored properties", func(t *testing.T) {
		repo := new(MockPageViewRepository)
		service := NewService(repo)
		name := "signup_click"

		repo.On("FindRecent", mock.Anything, (*string)(nil), 10).
			Return([]tracking.PageView{
				{
					ID:         uuid.New(),
					Domain:     "example.com",
					Path:       "/",
					EventName:  &name,
					Properties: `{"plan":"pro"}`,
					CreatedAt:  time.Now(),
				},
			}, nil)

		result, err := service.RecentEvents(context.Background(), nil, 10)
		require.NoError(t, err)
		require.Len(t, result, 1)
		require.NotNil(t, result[0].Properties)
		assert.Equal(t, "pro", result[0].Properties["plan"])
	})
}
