package memory

import (
	"context"

	"github.com/flight-registry/flight-passenger-service/internal/domain"
	"github.com/flight-registry/flight-passenger-service/internal/infrastructure/timeutil"
)

type flightRepository struct {
	store *Store
}

// read runs fn under the read lock once the store is connected.
func (r *flightRepository) read(ctx context.Context, fn func(s *Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.connected {
		return domain.ErrStoreNotConnected
	}
	return fn(s)
}

// write runs fn under the write lock once the store is connected.
func (r *flightRepository) write(ctx context.Context, fn func(s *Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return domain.ErrStoreNotConnected
	}
	return fn(s)
}

func (r *flightRepository) FindAll(ctx context.Context) ([]domain.Flight, error) {
	return r.Find(ctx, domain.FlightCriteria{})
}

func (r *flightRepository) FindByCode(ctx context.Context, code string) (*domain.Flight, error) {
	var out domain.Flight
	err := r.read(ctx, func(s *Store) error {
		f, ok := s.flights[code]
		if !ok {
			return domain.FlightNotFound(code)
		}
		out = f.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *flightRepository) Find(ctx context.Context, criteria domain.FlightCriteria) ([]domain.Flight, error) {
	result := []domain.Flight{}
	err := r.read(ctx, func(s *Store) error {
		for _, code := range s.codes {
			f := s.flights[code]
			if criteria.MatchesFlight(f) {
				result = append(result, f.Clone())
			}
		}
		return nil
	})
	return result, err
}

func (r *flightRepository) Exists(ctx context.Context, code string) (bool, error) {
	var ok bool
	err := r.read(ctx, func(s *Store) error {
		_, ok = s.flights[code]
		return nil
	})
	return ok, err
}

func (r *flightRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.read(ctx, func(s *Store) error {
		n = int64(len(s.codes))
		return nil
	})
	return n, err
}

func (r *flightRepository) Insert(ctx context.Context, flight domain.Flight) (*domain.Flight, error) {
	var out domain.Flight
	err := r.write(ctx, func(s *Store) error {
		stored, err := s.insert(flight)
		out = stored
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *flightRepository) InsertMany(ctx context.Context, flights []domain.Flight) error {
	return r.write(ctx, func(s *Store) error {
		for _, f := range flights {
			if _, ok := s.flights[f.FlightCode]; ok {
				return domain.FlightExists(f.FlightCode)
			}
		}
		for _, f := range flights {
			if _, err := s.insert(f); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *flightRepository) Update(ctx context.Context, code string, patch domain.FlightPatch) (*domain.Flight, error) {
	var out domain.Flight
	err := r.write(ctx, func(s *Store) error {
		f, ok := s.flights[code]
		if !ok {
			return domain.FlightNotFound(code)
		}
		if patch.Renames(code) {
			if _, taken := s.flights[*patch.FlightCode]; taken {
				return domain.FlightExists(*patch.FlightCode)
			}
		}

		f.Apply(patch)
		f.UpdatedAt = timeutil.StoredTime(s.clock.Now())

		if f.FlightCode != code {
			delete(s.flights, code)
			for i, c := range s.codes {
				if c == code {
					s.codes[i] = f.FlightCode
					break
				}
			}
		}
		s.flights[f.FlightCode] = f
		out = f.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *flightRepository) Delete(ctx context.Context, code string) error {
	return r.write(ctx, func(s *Store) error {
		if _, ok := s.flights[code]; !ok {
			return domain.FlightNotFound(code)
		}
		delete(s.flights, code)
		for i, c := range s.codes {
			if c == code {
				s.codes = append(s.codes[:i], s.codes[i+1:]...)
				break
			}
		}
		return nil
	})
}

func (r *flightRepository) AddPassenger(ctx context.Context, code string, passenger domain.Passenger) (*domain.Flight, error) {
	return r.mutate(ctx, code, func(f *domain.Flight) error {
		return f.AddPassenger(passenger)
	})
}

func (r *flightRepository) UpdatePassenger(ctx context.Context, code string, passengerID int, patch domain.PassengerPatch) (*domain.Flight, error) {
	return r.mutate(ctx, code, func(f *domain.Flight) error {
		return f.UpdatePassenger(passengerID, patch)
	})
}

func (r *flightRepository) RemovePassenger(ctx context.Context, code string, passengerID int) (*domain.Flight, error) {
	return r.mutate(ctx, code, func(f *domain.Flight) error {
		return f.RemovePassenger(passengerID)
	})
}

// mutate applies fn to a private copy of the flight and stores it only on success.
func (r *flightRepository) mutate(ctx context.Context, code string, fn func(f *domain.Flight) error) (*domain.Flight, error) {
	var out domain.Flight
	err := r.write(ctx, func(s *Store) error {
		stored, ok := s.flights[code]
		if !ok {
			return domain.FlightNotFound(code)
		}
		f := stored.Clone()
		if err := fn(&f); err != nil {
			return err
		}
		f.UpdatedAt = timeutil.StoredTime(s.clock.Now())
		s.flights[code] = f
		out = f.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// insert stores a copy of flight. Callers hold the write lock.
func (s *Store) insert(flight domain.Flight) (domain.Flight, error) {
	if _, ok := s.flights[flight.FlightCode]; ok {
		return domain.Flight{}, domain.FlightExists(flight.FlightCode)
	}
	now := timeutil.StoredTime(s.clock.Now())
	f := domain.NewFlight(flight.FlightCode, flight.Passengers)
	f.CreatedAt, f.UpdatedAt = now, now

	s.flights[f.FlightCode] = f
	s.codes = append(s.codes, f.FlightCode)
	return f.Clone(), nil
}

var _ domain.FlightRepository = (*flightRepository)(nil)
