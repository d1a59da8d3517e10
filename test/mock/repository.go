// Package mock provides test doubles for the flight registry.
// Repository wraps a real FlightRepository and injects delays and
// failures so integration tests can drive timeout and error paths.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/flight-registry/flight-passenger-service/internal/domain"
)

// Repository is a configurable domain.FlightRepository decorator.
// Calls are forwarded to the wrapped repository after the configured
// delay unless an error has been configured.
type Repository struct {
	next domain.FlightRepository

	mu        sync.Mutex
	err       error
	delay     time.Duration
	callCount int
}

// NewRepository wraps next. The wrapper forwards every call until configured otherwise.
func NewRepository(next domain.FlightRepository) *Repository {
	return &Repository{next: next}
}

// WithError makes every subsequent call fail with err.
func (r *Repository) WithError(err error) *Repository {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
	return r
}

// WithDelay makes every subsequent call wait d before running.
func (r *Repository) WithDelay(d time.Duration) *Repository {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delay = d
	return r
}

// CallCount returns the number of repository calls observed.
func (r *Repository) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.callCount
}

// Reset clears the call count and any configured error or delay.
func (r *Repository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callCount = 0
	r.err = nil
	r.delay = 0
}

// before records the call, applies the delay and reports the configured error.
// It respects context cancellation while waiting.
func (r *Repository) before(ctx context.Context) error {
	r.mu.Lock()
	r.callCount++
	delay, err := r.delay, r.err
	r.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.Flight, error) {
	if err := r.before(ctx); err != nil {
		return nil, err
	}
	return r.next.FindAll(ctx)
}

func (r *Repository) FindByCode(ctx context.Context, code string) (*domain.Flight, error) {
	if err := r.before(ctx); err != nil {
		return nil, err
	}
	return r.next.FindByCode(ctx, code)
}

func (r *Repository) Find(ctx context.Context, criteria domain.FlightCriteria) ([]domain.Flight, error) {
	if err := r.before(ctx); err != nil {
		return nil, err
	}
	return r.next.Find(ctx, criteria)
}

func (r *Repository) Exists(ctx context.Context, code string) (bool, error) {
	if err := r.before(ctx); err != nil {
		return false, err
	}
	return r.next.Exists(ctx, code)
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	if err := r.before(ctx); err != nil {
		return 0, err
	}
	return r.next.Count(ctx)
}

func (r *Repository) Insert(ctx context.Context, flight domain.Flight) (*domain.Flight, error) {
	if err := r.before(ctx); err != nil {
		return nil, err
	}
	return r.next.Insert(ctx, flight)
}

func (r *Repository) InsertMany(ctx context.Context, flights []domain.Flight) error {
	if err := r.before(ctx); err != nil {
		return err
	}
	return r.next.InsertMany(ctx, flights)
}

func (r *Repository) Update(ctx context.Context, code string, patch domain.FlightPatch) (*domain.Flight, error) {
	if err := r.before(ctx); err != nil {
		return nil, err
	}
	return r.next.Update(ctx, code, patch)
}

func (r *Repository) Delete(ctx context.Context, code string) error {
	if err := r.before(ctx); err != nil {
		return err
	}
	return r.next.Delete(ctx, code)
}

func (r *Repository) AddPassenger(ctx context.Context, code string, passenger domain.Passenger) (*domain.Flight, error) {
	if err := r.before(ctx); err != nil {
		return nil, err
	}
	return r.next.AddPassenger(ctx, code, passenger)
}

func (r *Repository) UpdatePassenger(ctx context.Context, code string, passengerID int, patch domain.PassengerPatch) (*domain.Flight, error) {
	if err := r.before(ctx); err != nil {
		return nil, err
	}
	return r.next.UpdatePassenger(ctx, code, passengerID, patch)
}

func (r *Repository) RemovePassenger(ctx context.Context, code string, passengerID int) (*domain.Flight, error) {
	if err := r.before(ctx); err != nil {
		return nil, err
	}
	return r.next.RemovePassenger(ctx, code, passengerID)
}

// Ensure Repository implements domain.FlightRepository at compile time.
var _ domain.FlightRepository = (*Repository)(nil)
