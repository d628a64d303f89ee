package tracking

import (
	"context"
	"sync"
	"time"

	"github.com/minilytics/backend/internal/domain/tracking"
	"go.uber.org/zap"
)

// TrackRequest is the payload accepted from tracking clients. Only
// domain and path are required; the rest is best effort.
type TrackRequest struct {
	Domain     string         `json:"domain"`
	Path       string         `json:"path"`
	Referrer   *string        `json:"referrer"`
	SiteID     *string        `json:"site_id"`
	EventName  *string        `json:"event_name"`
	Properties map[string]any `json:"properties"`
}

// IngestService accepts tracking events and persists them off the
// request path. Callers get an answer as soon as the payload is
// validated; the write itself happens on a background goroutine and
// failures are logged, never surfaced to the client.
type IngestService struct {
	pageViewRepo tracking.Repository
	logger       *zap.Logger
	writeTimeout time.Duration

	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// NewIngestService creates a new IngestService
func NewIngestService(pageViewRepo tracking.Repository, logger *zap.Logger) *IngestService {
	return &IngestService{
		pageViewRepo: pageViewRepo,
		logger:       logger,
		writeTimeout: 10 * time.Second,
	}
}

// Ingest validates the payload and schedules the write. The returned
// error reflects validation only; persistence outcome is not awaited.
func (s *IngestService) Ingest(ctx context.Context, req TrackRequest) error {
	pv, err := tracking.NewPageView(tracking.NewPageViewInput{
		Domain:     req.Domain,
		Path:       req.Path,
		Referrer:   req.Referrer,
		SiteID:     req.SiteID,
		EventName:  req.EventName,
		Properties: req.Properties,
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		// Shutting down; drop the event rather than race the pool close.
		s.logger.Warn("dropping event during shutdown",
			zap.String("domain", pv.Domain),
			zap.String("path", pv.Path))
		return nil
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()

		// The request context ends when the handler returns, so the
		// background write gets its own deadline.
		writeCtx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
		defer cancel()

		if err := s.pageViewRepo.Save(writeCtx, pv); err != nil {
			s.logger.Error("failed to persist tracking event",
				zap.String("domain", pv.Domain),
				zap.String("path", pv.Path),
				zap.Error(err))
		}
	}()

	return nil
}

// Close waits for in-flight writes to finish. New events arriving
// after Close are dropped.
func (s *IngestService) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.wg.Wait()
}
