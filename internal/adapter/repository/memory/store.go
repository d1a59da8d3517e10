// Package memory provides an in-process flight store for local development and tests.
package memory

import (
	"context"
	"sync"

	"github.com/flight-registry/flight-passenger-service/internal/domain"
	"github.com/flight-registry/flight-passenger-service/internal/infrastructure/logger"
	"github.com/flight-registry/flight-passenger-service/internal/infrastructure/timeutil"
)

// Config contains optional collaborators for the memory store.
type Config struct {
	// Clock stamps createdAt/updatedAt. Nil uses the system clock.
	Clock timeutil.Clock

	// Logger receives lifecycle logs. Nil disables logging.
	Logger *logger.Logger
}

// Store keeps flights in insertion order behind a single RWMutex.
// Every repository call is one critical section, so passenger mutations
// on the same flight are serialized.
type Store struct {
	mu        sync.RWMutex
	connected bool
	codes     []string
	flights   map[string]domain.Flight

	clock timeutil.Clock
	log   *logger.Logger
	repo  *flightRepository
}

// New creates an empty, disconnected memory store.
func New(cfg Config) *Store {
	if cfg.Clock == nil {
		cfg.Clock = timeutil.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}

	s := &Store{
		flights: make(map[string]domain.Flight),
		clock:   cfg.Clock,
		log:     cfg.Logger.WithStore("memory"),
	}
	s.repo = &flightRepository{store: s}
	return s
}

// Connect marks the store usable. Calling it twice is a no-op.
func (s *Store) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		return nil
	}
	s.connected = true
	s.log.Info().Msg("Memory store ready")
	return nil
}

// Disconnect marks the store unusable. Stored data is kept so a later
// Connect sees the same flights.
func (s *Store) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return nil
	}
	s.connected = false
	s.log.Info().Msg("Memory store closed")
	return nil
}

// Flights returns the flight repository backed by this store.
func (s *Store) Flights() domain.FlightRepository {
	return s.repo
}

var _ domain.Store = (*Store)(nil)
