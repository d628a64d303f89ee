package tracking

import (
	"context"
	"time"
)

// Repository defines the interface for page view persistence
type Repository interface {
	// Save persists a single event row
	Save(ctx context.Context, pv *PageView) error

	// FindSince returns events created at or after the given instant,
	// oldest first, optionally filtered by external site identifier.
	FindSince(ctx context.Context, siteID *string, since time.Time) ([]PageView, error)

	// FindRecent returns the most recent events, newest first,
	// optionally filtered by external site identifier.
	FindRecent(ctx context.Context, siteID *string, limit int) ([]PageView, error)
}
