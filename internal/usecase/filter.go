// Package usecase provides the flight registry business logic.
package usecase

import "github.com/flight-registry/flight-passenger-service/internal/domain"

// FlattenPassengers concatenates the passenger lists of all flights,
// keeping flight order and then passenger order.
func FlattenPassengers(flights []domain.Flight) []domain.Passenger {
	total := 0
	for _, f := range flights {
		total += len(f.Passengers)
	}

	result := make([]domain.Passenger, 0, total)
	for _, f := range flights {
		result = append(result, f.Passengers...)
	}
	return result
}

// FilterPassengers returns the passengers matching every provided criterion.
//
// Behavior:
//   - Unset criteria are skipped (no filtering on that criterion)
//   - Name matching is a case-insensitive substring match
//   - minAge and maxAge are inclusive
//   - Does NOT mutate the input slice
//
// Example usage:
//
//	minAge, maxAge := 10, 20
//	teens := FilterPassengers(all, domain.PassengerCriteria{MinAge: &minAge, MaxAge: &maxAge})
func FilterPassengers(passengers []domain.Passenger, criteria domain.PassengerCriteria) []domain.Passenger {
	result := make([]domain.Passenger, 0, len(passengers))
	for _, p := range passengers {
		if criteria.Matches(p) {
			result = append(result, p)
		}
	}
	return result
}
