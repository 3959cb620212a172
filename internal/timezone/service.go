package timezone

import (
	"fmt"
	"sync"

	"github.com/ringsaturn/tzf"
)

// Service resolves the IANA timezone of a coordinate
type Service interface {
	Lookup(latitude, longitude float64) (string, error)
}

// Finder is the part of tzf.F the service uses. Note tzf takes longitude first.
type Finder interface {
	GetTimezoneName(lng, lat float64) string
}

type service struct {
	finder Finder
	mu     sync.RWMutex
}

var (
	instance *service
	initErr  error
	once     sync.Once
)

// NewService returns the process-wide timezone service. The tzf finder keeps
// its polygon data in memory (~50MB), so it is built once.
func NewService() (Service, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = &service{finder: finder}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

// NewServiceWithFinder creates a service around a custom finder
func NewServiceWithFinder(finder Finder) Service {
	return &service{finder: finder}
}

// Lookup returns names like "Asia/Kolkata" or "America/Denver"
func (s *service) Lookup(latitude, longitude float64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name := s.finder.GetTimezoneName(longitude, latitude)
	if name == "" {
		return "", fmt.Errorf("could not determine timezone for coordinates lat=%f, lon=%f", latitude, longitude)
	}

	return name, nil
}
