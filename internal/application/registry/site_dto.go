package registry

import (
	"time"

	"github.com/google/uuid"
	"github.com/minilytics/backend/internal/domain/site"
)

// CreateSiteRequest is the payload for registering a site. Domain is
// deliberately unbound from binding validation; the domain constructor
// rejects an empty normalized domain so that a missing domain and a
// blank one surface the same way.
type CreateSiteRequest struct {
	Domain string `json:"domain"`
}

// SiteResponse represents a site in API responses
type SiteResponse struct {
	ID        uuid.UUID `json:"id"`
	Domain    string    `json:"domain"`
	SiteID    string    `json:"site_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ToSiteResponse converts a domain site to a response DTO
func ToSiteResponse(s *site.Site) *SiteResponse {
	return &SiteResponse{
		ID:        s.ID,
		Domain:    s.Domain,
		SiteID:    s.SiteID,
		CreatedAt: s.CreatedAt,
	}
}
