package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Lixing-Zhang/course-catalog/internal/catalogview"
)

var (
	ErrInvalidSession = errors.New("session id is required")
)

// SessionOptions bounds the session store
type SessionOptions struct {
	MaxSessions int
	TTL         time.Duration
}

// SessionService keeps one catalog view per browser session.
// Every read or write restarts the session's TTL; a session that is missing
// or idle for longer than the TTL starts over with a fresh view.
type SessionService struct {
	catalog *CatalogService
	views   *expirable.LRU[string, catalogview.View]
	log     *slog.Logger

	// serializes read-modify-write of a view
	mu sync.Mutex
}

// NewSessionService creates a new session service
func NewSessionService(catalog *CatalogService, opts SessionOptions, log *slog.Logger) *SessionService {
	s := &SessionService{
		catalog: catalog,
		log:     log,
	}

	s.views = expirable.NewLRU[string, catalogview.View](opts.MaxSessions, func(id string, _ catalogview.View) {
		s.log.Debug("session evicted", "session_id", id)
	}, opts.TTL)

	return s
}

// View returns the session's current view, mounting a new one if needed
func (s *SessionService) View(ctx context.Context, id string) (catalogview.View, error) {
	if id == "" {
		return catalogview.View{}, ErrInvalidSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx, id)
}

// Update applies fn to the session's view and stores the result
func (s *SessionService) Update(ctx context.Context, id string, fn func(catalogview.View) catalogview.View) (catalogview.View, error) {
	if id == "" {
		return catalogview.View{}, ErrInvalidSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.load(ctx, id)
	if err != nil {
		return catalogview.View{}, err
	}

	v = fn(v)
	s.views.Add(id, v)
	return v, nil
}

// Reset discards the session's state. It reports whether the session existed.
func (s *SessionService) Reset(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.views.Remove(id)
}

// Len returns the number of live sessions
func (s *SessionService) Len() int {
	return s.views.Len()
}

func (s *SessionService) load(ctx context.Context, id string) (catalogview.View, error) {
	if v, ok := s.views.Get(id); ok {
		// Get does not extend the entry's lifetime; re-adding does
		s.views.Add(id, v)
		return v, nil
	}

	v, err := s.catalog.NewView(ctx)
	if err != nil {
		return catalogview.View{}, err
	}

	s.views.Add(id, v)
	s.log.Debug("session mounted", "session_id", id)
	return v, nil
}
