package persistence

import (
	"context"
	"time"

	"github.com/minilytics/backend/internal/domain/tracking"
	"gorm.io/gorm"
)

// GormPageViewRepository implements tracking.Repository using GORM
type GormPageViewRepository struct {
	db *gorm.DB
}

// NewGormPageViewRepository creates a new GormPageViewRepository
func NewGormPageViewRepository(db *gorm.DB) *GormPageViewRepository {
	return &GormPageViewRepository{db: db}
}

// Save persists a single event row
func (r *GormPageViewRepository) Save(ctx context.Context, pv *tracking.PageView) error {
	return r.db.WithContext(ctx).Create(pv).Error
}

// FindSince returns events created at or after the given instant,
// oldest first, optionally filtered by external site identifier.
func (r *GormPageViewRepository) FindSince(ctx context.Context, siteID *string, since time.Time) ([]tracking.PageView, error) {
	query := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at ASC")
	if siteID != nil {
		query = query.Where("site_id = ?", *siteID)
	}

	var views []tracking.PageView
	if err := query.Find(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// FindRecent returns the most recent events, newest first,
// optionally filtered by external site identifier.
func (r *GormPageViewRepository) FindRecent(ctx context.Context, siteID *string, limit int) ([]tracking.PageView, error) {
	query := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit)
	if siteID != nil {
		query = query.Where("site_id = ?", *siteID)
	}

	var views []tracking.PageView
	if err := query.Find(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// Ensure GormPageViewRepository implements tracking.Repository
var _ tracking.Repository = (*GormPageViewRepository)(nil)
