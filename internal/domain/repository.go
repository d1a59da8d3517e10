package domain

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=domain

import "context"

// FlightRepository is the document store contract for flights.
//
// Implementations must make every passenger mutation atomic with respect to
// concurrent mutations of the same flight: two writers on one flight code
// never silently overwrite each other.
type FlightRepository interface {
	// FindAll returns every flight in store order.
	FindAll(ctx context.Context) ([]Flight, error)

	// FindByCode returns the flight with the given code or ErrFlightNotFound.
	FindByCode(ctx context.Context, code string) (*Flight, error)

	// Find returns the flights matching the criteria. Empty criteria match everything.
	Find(ctx context.Context, criteria FlightCriteria) ([]Flight, error)

	// Exists reports whether a flight with the given code is stored.
	Exists(ctx context.Context, code string) (bool, error)

	// Count returns the number of stored flights.
	Count(ctx context.Context) (int64, error)

	// Insert stores a new flight or returns ErrFlightExists.
	Insert(ctx context.Context, flight Flight) (*Flight, error)

	// InsertMany stores several new flights.
	InsertMany(ctx context.Context, flights []Flight) error

	// Update merges the patch onto the flight with the given code.
	Update(ctx context.Context, code string, patch FlightPatch) (*Flight, error)

	// Delete removes the flight with the given code or returns ErrFlightNotFound.
	Delete(ctx context.Context, code string) error

	// AddPassenger appends a passenger, rejecting duplicate IDs with ErrPassengerExists.
	AddPassenger(ctx context.Context, code string, passenger Passenger) (*Flight, error)

	// UpdatePassenger merges the patch onto the passenger in place.
	UpdatePassenger(ctx context.Context, code string, passengerID int, patch PassengerPatch) (*Flight, error)

	// RemovePassenger removes the passenger with the given ID.
	RemovePassenger(ctx context.Context, code string, passengerID int) (*Flight, error)
}

// Store is a document store handle with an explicit connection lifecycle.
// Connect and Disconnect are idempotent.
type Store interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Flights() FlightRepository
}
