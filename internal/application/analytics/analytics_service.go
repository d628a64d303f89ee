package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/minilytics/backend/internal/domain/shared"
	"github.com/minilytics/backend/internal/domain/tracking"
)

// Window identifiers accepted by the summary endpoint.
var windowDays = map[string]int{
	"7d":  7,
	"30d": 30,
	"90d": 90,
}

// DefaultWindow is applied when the caller does not pick one.
const DefaultWindow = "30d"

const (
	defaultEventLimit = 50
	maxEventLimit     = 200
)

// EventResponse represents one stored event in API responses.
type EventResponse struct {
	ID         uuid.UUID      `json:"id"`
	Domain     string         `json:"domain"`
	Path       string         `json:"path"`
	Referrer   *string        `json:"referrer,omitempty"`
	SiteID     *string        `json:"site_id,omitempty"`
	EventName  *string        `json:"event_name,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Service answers dashboard queries over stored events
type Service struct {
	pageViewRepo tracking.Repository
	now          func() time.Time
}

// NewService creates a new analytics Service
func NewService(pageViewRepo tracking.Repository) *Service {
	return &Service{
		pageViewRepo: pageViewRepo,
		now:          time.Now,
	}
}

// Summarize computes the dashboard summary for the given window.
// siteID filters by external site identifier; nil means all sites.
func (s *Service) Summarize(ctx context.Context, siteID *string, window string) (*Summary, error) {
	if window == "" {
		window = DefaultWindow
	}
	days, ok := windowDays[window]
	if !ok {
		return nil, shared.NewDomainError("INVALID_INPUT", "Window must be one of 7d, 30d, 90d")
	}

	now := s.now()
	events, err := s.pageViewRepo.FindSince(ctx, siteID, WindowStart(now, days))
	if err != nil {
		return nil, err
	}

	summary := Summarize(events, now, days)
	return &summary, nil
}

// RecentEvents returns the most recent events, newest first.
func (s *Service) RecentEvents(ctx context.Context, siteID *string, limit int) ([]EventResponse, error) {
	if limit <= 0 {
		limit = defaultEventLimit
	}
	if limit > maxEventLimit {
		limit = maxEventLimit
	}

	events, err := s.pageViewRepo.FindRecent(ctx, siteID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]EventResponse, len(events))
	for i, ev := range events {
		responses[i] = toEventResponse(&ev)
	}
	return responses, nil
}

func toEventResponse(ev *tracking.PageView) EventResponse {
	resp := EventResponse{
		ID:        ev.ID,
		Domain:    ev.Domain,
		Path:      ev.Path,
		Referrer:  ev.Referrer,
		SiteID:    ev.SiteID,
		EventName: ev.EventName,
		CreatedAt: ev.CreatedAt,
	}
	if ev.Properties != "" && ev.Properties != "{}" {
		var props map[string]any
		if err := json.Unmarshal([]byte(ev.Properties), &props); err == nil {
			resp.Properties = props
		}
	}
	return resp
}
