package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/flight-registry/flight-passenger-service/internal/domain"
	"github.com/flight-registry/flight-passenger-service/internal/infrastructure/logger"
)

// DefaultOperationTimeout bounds a single store round trip.
const DefaultOperationTimeout = 5 * time.Second

// FlightService defines the flight and passenger operations exposed to transports.
type FlightService interface {
	// ListFlights returns every flight in store order.
	ListFlights(ctx context.Context) ([]domain.Flight, error)

	// SearchFlights returns flights matching the criteria. Empty criteria behave like ListFlights.
	SearchFlights(ctx context.Context, criteria domain.FlightCriteria) ([]domain.Flight, error)

	// GetFlight returns the flight with the given code.
	GetFlight(ctx context.Context, code string) (*domain.Flight, error)

	// CreateFlight stores a new flight with the given passengers.
	CreateFlight(ctx context.Context, flight domain.Flight) (*domain.Flight, error)

	// UpdateFlight merges a partial update onto an existing flight.
	UpdateFlight(ctx context.Context, code string, patch domain.FlightPatch) (*domain.Flight, error)

	// DeleteFlight removes a flight and all of its passengers.
	DeleteFlight(ctx context.Context, code string) error

	// ListPassengers returns the passengers of a single flight in stored order.
	ListPassengers(ctx context.Context, code string) ([]domain.Passenger, error)

	// AddPassenger appends a passenger to a flight.
	AddPassenger(ctx context.Context, code string, passenger domain.Passenger) (*domain.Flight, error)

	// UpdatePassenger merges a partial update onto a passenger in place.
	UpdatePassenger(ctx context.Context, code string, passengerID int, patch domain.PassengerPatch) (*domain.Flight, error)

	// RemovePassenger removes a passenger from a flight.
	RemovePassenger(ctx context.Context, code string, passengerID int) (*domain.Flight, error)

	// SearchPassengers filters the passengers of every flight.
	// Results do not carry the owning flight.
	SearchPassengers(ctx context.Context, criteria domain.PassengerCriteria) ([]domain.Passenger, error)
}

// Config contains configuration options for the flight service.
type Config struct {
	// OperationTimeout bounds each store call. Zero uses DefaultOperationTimeout.
	OperationTimeout time.Duration

	// Logger receives mutation and failure logs. Nil disables logging.
	Logger *logger.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		OperationTimeout: DefaultOperationTimeout,
		Logger:           logger.Nop(),
	}
}

// flightService implements FlightService on top of a FlightRepository.
type flightService struct {
	repo    domain.FlightRepository
	timeout time.Duration
	log     *logger.Logger
}

// NewFlightService creates a FlightService backed by the given repository.
// If config is nil, default values are used.
func NewFlightService(repo domain.FlightRepository, config *Config) FlightService {
	cfg := DefaultConfig()
	if config != nil {
		if config.OperationTimeout > 0 {
			cfg.OperationTimeout = config.OperationTimeout
		}
		if config.Logger != nil {
			cfg.Logger = config.Logger
		}
	}

	return &flightService{
		repo:    repo,
		timeout: cfg.OperationTimeout,
		log:     cfg.Logger.WithContext("component", "flight_service"),
	}
}

// withTimeout derives the per-operation context.
func (s *flightService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// ListFlights implements FlightService.ListFlights.
func (s *flightService) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	flights, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.storeFailure("list flights", err)
	}
	return nonNilFlights(flights), nil
}

// SearchFlights implements FlightService.SearchFlights.
func (s *flightService) SearchFlights(ctx context.Context, criteria domain.FlightCriteria) ([]domain.Flight, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	if criteria.IsEmpty() {
		return s.ListFlights(ctx)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	flights, err := s.repo.Find(ctx, criteria)
	if err != nil {
		return nil, s.storeFailure("search flights", err)
	}
	return nonNilFlights(flights), nil
}

// GetFlight implements FlightService.GetFlight.
func (s *flightService) GetFlight(ctx context.Context, code string) (*domain.Flight, error) {
	if err := requireCode(code); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	flight, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, s.storeFailure("get flight", err)
	}
	return flight, nil
}

// CreateFlight implements FlightService.CreateFlight.
// The passenger list is stored as given; callers validate passenger shape.
func (s *flightService) CreateFlight(ctx context.Context, flight domain.Flight) (*domain.Flight, error) {
	if err := requireCode(flight.FlightCode); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	exists, err := s.repo.Exists(ctx, flight.FlightCode)
	if err != nil {
		return nil, s.storeFailure("check flight code", err)
	}
	if exists {
		return nil, domain.FlightExists(flight.FlightCode)
	}

	created, err := s.repo.Insert(ctx, domain.NewFlight(flight.FlightCode, flight.Passengers))
	if err != nil {
		return nil, s.storeFailure("create flight", err)
	}

	s.log.Debug().
		Str("flight_code", created.FlightCode).
		Int("passengers", len(created.Passengers)).
		Msg("Flight created")
	return created, nil
}

// UpdateFlight implements FlightService.UpdateFlight.
func (s *flightService) UpdateFlight(ctx context.Context, code string, patch domain.FlightPatch) (*domain.Flight, error) {
	if err := requireCode(code); err != nil {
		return nil, err
	}
	if patch.FlightCode != nil {
		if err := requireCode(*patch.FlightCode); err != nil {
			return nil, err
		}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if patch.Renames(code) {
		taken, err := s.repo.Exists(ctx, *patch.FlightCode)
		if err != nil {
			return nil, s.storeFailure("check flight code", err)
		}
		if taken {
			// Report a missing source flight before a rename conflict.
			if _, err := s.repo.FindByCode(ctx, code); err != nil {
				return nil, s.storeFailure("get flight", err)
			}
			return nil, domain.FlightExists(*patch.FlightCode)
		}
	}

	updated, err := s.repo.Update(ctx, code, patch)
	if err != nil {
		return nil, s.storeFailure("update flight", err)
	}

	s.log.Debug().
		Str("flight_code", code).
		Str("new_flight_code", updated.FlightCode).
		Bool("passengers_replaced", patch.Passengers != nil).
		Msg("Flight updated")
	return updated, nil
}

// DeleteFlight implements FlightService.DeleteFlight.
func (s *flightService) DeleteFlight(ctx context.Context, code string) error {
	if err := requireCode(code); err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.repo.Delete(ctx, code); err != nil {
		return s.storeFailure("delete flight", err)
	}

	s.log.Debug().Str("flight_code", code).Msg("Flight deleted")
	return nil
}

// ListPassengers implements FlightService.ListPassengers.
func (s *flightService) ListPassengers(ctx context.Context, code string) ([]domain.Passenger, error) {
	flight, err := s.GetFlight(ctx, code)
	if err != nil {
		return nil, err
	}
	if flight.Passengers == nil {
		return []domain.Passenger{}, nil
	}
	return flight.Passengers, nil
}

// AddPassenger implements FlightService.AddPassenger.
func (s *flightService) AddPassenger(ctx context.Context, code string, passenger domain.Passenger) (*domain.Flight, error) {
	if err := requireCode(code); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	updated, err := s.repo.AddPassenger(ctx, code, passenger)
	if err != nil {
		return nil, s.storeFailure("add passenger", err)
	}

	s.log.Debug().
		Str("flight_code", code).
		Int("passenger_id", passenger.ID).
		Msg("Passenger added")
	return updated, nil
}

// UpdatePassenger implements FlightService.UpdatePassenger.
func (s *flightService) UpdatePassenger(ctx context.Context, code string, passengerID int, patch domain.PassengerPatch) (*domain.Flight, error) {
	if err := requireCode(code); err != nil {
		return nil, err
	}
	if patch.FlightCategory != nil && !patch.FlightCategory.IsValid() {
		return nil, domain.InvalidCategory(string(*patch.FlightCategory))
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	updated, err := s.repo.UpdatePassenger(ctx, code, passengerID, patch)
	if err != nil {
		return nil, s.storeFailure("update passenger", err)
	}

	s.log.Debug().
		Str("flight_code", code).
		Int("passenger_id", passengerID).
		Msg("Passenger updated")
	return updated, nil
}

// RemovePassenger implements FlightService.RemovePassenger.
func (s *flightService) RemovePassenger(ctx context.Context, code string, passengerID int) (*domain.Flight, error) {
	if err := requireCode(code); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	updated, err := s.repo.RemovePassenger(ctx, code, passengerID)
	if err != nil {
		return nil, s.storeFailure("remove passenger", err)
	}

	s.log.Debug().
		Str("flight_code", code).
		Int("passenger_id", passengerID).
		Msg("Passenger removed")
	return updated, nil
}

// SearchPassengers implements FlightService.SearchPassengers.
func (s *flightService) SearchPassengers(ctx context.Context, criteria domain.PassengerCriteria) ([]domain.Passenger, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	flights, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.storeFailure("search passengers", err)
	}
	return FilterPassengers(FlattenPassengers(flights), criteria), nil
}

// storeFailure logs unexpected store errors and passes domain errors through untouched.
func (s *flightService) storeFailure(op string, err error) error {
	if domain.IsNotFound(err) || domain.IsConflict(err) {
		return err
	}
	s.log.Error().Err(err).Str("operation", op).Msg("Store operation failed")
	return fmt.Errorf("%s: %w", op, err)
}

// requireCode rejects blank flight codes.
func requireCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("%w: flightCode is required", domain.ErrInvalidRequest)
	}
	return nil
}

func nonNilFlights(flights []domain.Flight) []domain.Flight {
	if flights == nil {
		return []domain.Flight{}
	}
	return flights
}
