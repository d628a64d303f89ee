package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/minilytics/backend/internal/domain/shared"
	"github.com/minilytics/backend/internal/domain/site"
	"gorm.io/gorm"
)

// GormSiteRepository implements site.Repository using GORM
type GormSiteRepository struct {
	db *gorm.DB
}

// NewGormSiteRepository creates a new GormSiteRepository
func NewGormSiteRepository(db *gorm.DB) *GormSiteRepository {
	return &GormSiteRepository{db: db}
}

// FindAllForUser returns all sites owned by the user, newest first
func (r *GormSiteRepository) FindAllForUser(ctx context.Context, userID uuid.UUID) ([]site.Site, error) {
	var sites []site.Site
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sites).Error; err != nil {
		return nil, err
	}
	return sites, nil
}

// FindByIDForUser finds a site by ID, scoped to its owner
func (r *GormSiteRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*site.Site, error) {
	var s site.Site
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Save persists a site
func (r *GormSiteRepository) Save(ctx context.Context, s *site.Site) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// DeleteForUser deletes a site only if the user owns it. The owner
// predicate is part of the delete itself so a foreign site and a
// missing site both come back as shared.ErrNotFound.
func (r *GormSiteRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&site.Site{}, "user_id = ? AND id = ?", userID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForUser counts the sites owned by the user
func (r *GormSiteRepository) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&site.Site{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormSiteRepository implements site.Repository
var _ site.Repository = (*GormSiteRepository)(nil)
