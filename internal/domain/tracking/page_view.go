package tracking

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minilytics/backend/internal/domain/shared"
)

// MaxProperties bounds the custom-event properties bag so a single
// payload cannot grow without limit.
const MaxProperties = 20

// PageView represents one observed client interaction: a page view or
// a named custom event. Rows are immutable once written. SiteID is a
// soft reference to sites.site_id; no referential integrity is
// enforced, so a view may reference a site that no longer exists.
type PageView struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt  time.Time `gorm:"not null;index"`
	Domain     string    `gorm:"type:varchar(255);not null"`
	Path       string    `gorm:"type:text;not null"`
	Referrer   *string   `gorm:"type:text"`
	SiteID     *string   `gorm:"type:varchar(64);index"`
	EventName  *string   `gorm:"type:varchar(255)"`
	Properties string    `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (PageView) TableName() string {
	return "page_views"
}

// NewPageViewInput carries the client-reported fields of an event.
type NewPageViewInput struct {
	Domain     string
	Path       string
	Referrer   *string
	SiteID     *string
	EventName  *string
	Properties map[string]any
}

// NewPageView builds an event row from client-reported values. Domain
// and path are required; everything else defaults to null. The
// creation timestamp is server-assigned and authoritative for
// ordering. The declared site identifier is trusted as-is.
func NewPageView(in NewPageViewInput) (*PageView, error) {
	domain := strings.TrimSpace(in.Domain)
	path := strings.TrimSpace(in.Path)
	if domain == "" || path == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Missing domain or path")
	}
	if len(in.Properties) > MaxProperties {
		return nil, shared.NewDomainError("INVALID_INPUT", "Too many event properties")
	}

	properties := "{}"
	if len(in.Properties) > 0 {
		raw, err := json.Marshal(in.Properties)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Properties are not serializable")
		}
		properties = string(raw)
	}

	return &PageView{
		ID:         uuid.New(),
		CreatedAt:  time.Now(),
		Domain:     domain,
		Path:       path,
		Referrer:   emptyToNil(in.Referrer),
		SiteID:     emptyToNil(in.SiteID),
		EventName:  emptyToNil(in.EventName),
		Properties: properties,
	}, nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
