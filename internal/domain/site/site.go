package site

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minilytics/backend/internal/domain/shared"
)

// Site represents a tracked domain registered by a user.
// The external SiteID is the opaque token embedded in client
// integrations; it is unguessable but not a secret.
type Site struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;index"`
	Domain    string    `gorm:"type:varchar(255);not null"`
	SiteID    string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (Site) TableName() string {
	return "sites"
}

// NormalizeDomain trims surrounding whitespace and lower-cases a
// user-supplied domain. The result may be empty.
func NormalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}

// NewSite creates a site for the given owner. The domain is normalized;
// an empty result is rejected. A fresh external site identifier is
// generated at creation time. Duplicate domains per user are allowed.
func NewSite(userID uuid.UUID, domain string) (*Site, error) {
	normalized := NormalizeDomain(domain)
	if normalized == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Domain is required")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Owner is required")
	}

	return &Site{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		Domain:    normalized,
		SiteID:    uuid.NewString(),
		UserID:    userID,
	}, nil
}
