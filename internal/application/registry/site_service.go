package registry

import (
	"context"

	"github.com/google/uuid"
	"github.com/minilytics/backend/internal/domain/site"
)

// SiteService handles site registry operations
type SiteService struct {
	siteRepo site.Repository
}

// NewSiteService creates a new SiteService
func NewSiteService(siteRepo site.Repository) *SiteService {
	return &SiteService{siteRepo: siteRepo}
}

// List retrieves all sites owned by the user, newest first
func (s *SiteService) List(ctx context.Context, userID uuid.UUID) ([]SiteResponse, error) {
	sites, err := s.siteRepo.FindAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]SiteResponse, len(sites))
	for i, st := range sites {
		responses[i] = *ToSiteResponse(&st)
	}

	return responses, nil
}

// Create registers a new site for the user. The domain is normalized
// before persisting; duplicate domains are allowed and each
// registration gets its own external site identifier.
func (s *SiteService) Create(ctx context.Context, userID uuid.UUID, req CreateSiteRequest) (*SiteResponse, error) {
	newSite, err := site.NewSite(userID, req.Domain)
	if err != nil {
		return nil, err
	}

	if err := s.siteRepo.Save(ctx, newSite); err != nil {
		return nil, err
	}

	return ToSiteResponse(newSite), nil
}

// Delete removes a site owned by the user. A site that does not exist
// and a site owned by someone else are indistinguishable to the
// caller; both surface as not found.
func (s *SiteService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.siteRepo.DeleteForUser(ctx, userID, id)
}
