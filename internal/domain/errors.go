package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories. Handlers map these to HTTP status codes with errors.Is.
var (
	// ErrInvalidRequest indicates malformed input or an unknown enumerated value.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound indicates the addressed flight or passenger does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness rule would be violated.
	ErrConflict = errors.New("conflict")
)

// Specific errors. Each wraps one of the categories above.
var (
	ErrFlightNotFound    = fmt.Errorf("flight %w", ErrNotFound)
	ErrPassengerNotFound = fmt.Errorf("passenger %w", ErrNotFound)
	ErrFlightExists      = fmt.Errorf("%w: flight already exists", ErrConflict)
	ErrPassengerExists   = fmt.Errorf("%w: passenger already exists", ErrConflict)
)

// ErrStoreNotConnected is returned by stores used before Connect or after Disconnect.
var ErrStoreNotConnected = errors.New("store is not connected")

// FlightNotFound returns ErrFlightNotFound annotated with the flight code.
func FlightNotFound(code string) error {
	return fmt.Errorf("%w: no flight with code %s", ErrFlightNotFound, code)
}

// FlightExists returns ErrFlightExists annotated with the flight code.
func FlightExists(code string) error {
	return fmt.Errorf("%w: code %s is already in use", ErrFlightExists, code)
}

// PassengerNotFound returns ErrPassengerNotFound annotated with the passenger ID and flight.
func PassengerNotFound(code string, id int) error {
	return fmt.Errorf("%w: no passenger with ID %d in flight %s", ErrPassengerNotFound, id, code)
}

// PassengerExists returns ErrPassengerExists annotated with the passenger ID and flight.
func PassengerExists(code string, id int) error {
	return fmt.Errorf("%w: passenger with ID %d already exists in flight %s", ErrPassengerExists, id, code)
}

// InvalidCategory returns ErrInvalidRequest for an unknown flight category.
func InvalidCategory(value string) error {
	names := make([]string, len(FlightCategories))
	for i, c := range FlightCategories {
		names[i] = string(c)
	}
	return fmt.Errorf("%w: flightCategory must be one of: %s; got %q",
		ErrInvalidRequest, strings.Join(names, ", "), value)
}

// IsNotFound reports whether err is any not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err is any uniqueness conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
