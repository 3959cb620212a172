// Package session keeps the live selection controllers of in-progress forms.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"storefront-location/internal/cascade"
)

// ErrNotFound is returned for unknown or expired session ids
var ErrNotFound = errors.New("selection session not found")

// Session is one form interaction and its controller
type Session struct {
	ID        string
	CreatedAt time.Time

	controller *cascade.Controller

	mu      sync.Mutex
	last    cascade.Snapshot
	emitted int
	evicted bool
}

func (s *Session) Controller() *cascade.Controller {
	return s.controller
}

// LastEmitted returns the last snapshot handed to the session's listener and
// the number of emissions so far.
func (s *Session) LastEmitted() (cascade.Snapshot, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.emitted
}

func (s *Session) record(snap cascade.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = snap
	s.emitted++
}

func (s *Session) markEvicted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evicted = true
}

func (s *Session) isEvicted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evicted
}

// Registry holds sessions up to a fixed size. Sessions expire ttl after their
// last use; evicted sessions have their controller closed.
type Registry struct {
	sessions *expirable.LRU[string, *Session]
	fetcher  cascade.Fetcher
	resolver cascade.CoordinateResolver
	logger   *slog.Logger
}

// NewRegistry creates a registry. resolver may be nil to skip coordinates.
func NewRegistry(fetcher cascade.Fetcher, resolver cascade.CoordinateResolver, size int, ttl time.Duration, logger *slog.Logger) *Registry {
	r := &Registry{
		fetcher:  fetcher,
		resolver: resolver,
		logger:   logger.With("component", "session-registry"),
	}
	r.sessions = expirable.NewLRU[string, *Session](size, r.evict, ttl)
	return r
}

func (r *Registry) evict(id string, s *Session) {
	s.markEvicted()
	s.controller.Close()
	r.logger.Debug("session closed", "session", id)
}

// Create starts a new session from seed. The controller outlives ctx's
// cancellation and stops when the session is evicted.
func (r *Registry) Create(ctx context.Context, seed cascade.Selection) (*Session, error) {
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	opts := []cascade.ControllerOption{
		cascade.WithSeed(seed),
		cascade.WithListener(s.record),
		cascade.WithLogger(r.logger.With("session", s.ID)),
	}
	if r.resolver != nil {
		opts = append(opts, cascade.WithResolver(r.resolver))
	}

	controller, err := cascade.New(r.fetcher, opts...)
	if err != nil {
		return nil, err
	}
	s.controller = controller

	if err := controller.Start(context.WithoutCancel(ctx)); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	r.sessions.Add(s.ID, s)

	r.logger.Info("session created",
		"session", s.ID,
		"seeded", !seed.IsZero(),
	)
	return s, nil
}

// Get returns a live session and extends its lifetime
func (r *Registry) Get(id string) (*Session, error) {
	s, ok := r.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	r.sessions.Add(id, s)

	// Expiry may have closed the session between Get and Add.
	if s.isEvicted() {
		if cur, ok := r.sessions.Peek(id); ok && cur == s {
			r.sessions.Remove(id)
		}
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return s, nil
}

// Delete closes and forgets a session
func (r *Registry) Delete(id string) error {
	if !r.sessions.Remove(id) {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *Registry) Len() int {
	return r.sessions.Len()
}

// Close closes every session
func (r *Registry) Close() {
	r.sessions.Purge()
}
