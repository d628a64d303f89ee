package site

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for site persistence
type Repository interface {
	// FindAllForUser returns all sites owned by the user, newest first
	FindAllForUser(ctx context.Context, userID uuid.UUID) ([]Site, error)

	// FindByIDForUser finds a site by ID, scoped to its owner
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Site, error)

	// Save persists a new site
	Save(ctx context.Context, s *Site) error

	// DeleteForUser deletes a site only if the user owns it.
	// Returns shared.ErrNotFound when no row matches both the id and
	// the owner; callers cannot distinguish "missing" from "not yours".
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error

	// CountForUser counts the sites owned by the user
	CountForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
