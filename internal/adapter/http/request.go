// Package http provides the HTTP handler layer for the flight registry API.
// It handles request parsing, validation, and response formatting.
package http

import (
	"sort"

	"github.com/flight-registry/flight-passenger-service/internal/domain"
)

// PassengerRequest is the full passenger shape accepted on create and add.
type PassengerRequest struct {
	ID                int    `json:"id" example:"1"`
	Name              string `json:"name" example:"Ana Lopez"`
	HasConnections    bool   `json:"hasConnections" example:"false"`
	Age               int    `json:"age" example:"30"`
	FlightCategory    string `json:"flightCategory" example:"Gold" enums:"Black,Platinum,Gold,Normal"`
	ReservationID     string `json:"reservationId" example:"ABC123"`
	HasCheckedBaggage bool   `json:"hasCheckedBaggage" example:"true"`
}

// CreateFlightRequest is the request body for POST /api/flights.
type CreateFlightRequest struct {
	FlightCode string             `json:"flightCode" example:"LAN123"`
	Passengers []PassengerRequest `json:"passengers"`
}

// UpdateFlightRequest is the request body for PUT /api/flights/:flightCode.
// Omitted fields are left unchanged; a supplied passenger list replaces the stored one.
type UpdateFlightRequest struct {
	FlightCode *string             `json:"flightCode,omitempty" example:"LAN456"`
	Passengers *[]PassengerRequest `json:"passengers,omitempty"`
}

// UpdatePassengerRequest is the request body for PUT /api/flights/:flightCode/passengers/:passengerId.
type UpdatePassengerRequest struct {
	ID                *int    `json:"id,omitempty"`
	Name              *string `json:"name,omitempty"`
	HasConnections    *bool   `json:"hasConnections,omitempty"`
	Age               *int    `json:"age,omitempty"`
	FlightCategory    *string `json:"flightCategory,omitempty" enums:"Black,Platinum,Gold,Normal"`
	ReservationID     *string `json:"reservationId,omitempty"`
	HasCheckedBaggage *bool   `json:"hasCheckedBaggage,omitempty"`
}

// ToDomain converts the request to a domain passenger.
func (r PassengerRequest) ToDomain() domain.Passenger {
	return domain.Passenger{
		ID:                r.ID,
		Name:              r.Name,
		HasConnections:    r.HasConnections,
		Age:               r.Age,
		FlightCategory:    domain.FlightCategory(r.FlightCategory),
		ReservationID:     r.ReservationID,
		HasCheckedBaggage: r.HasCheckedBaggage,
	}
}

func toDomainPassengers(reqs []PassengerRequest) []domain.Passenger {
	passengers := make([]domain.Passenger, len(reqs))
	for i, p := range reqs {
		passengers[i] = p.ToDomain()
	}
	return passengers
}

// ToDomain converts the request to a new domain flight.
func (r CreateFlightRequest) ToDomain() domain.Flight {
	return domain.NewFlight(r.FlightCode, toDomainPassengers(r.Passengers))
}

// ToPatch converts the request to a flight patch.
func (r UpdateFlightRequest) ToPatch() domain.FlightPatch {
	patch := domain.FlightPatch{FlightCode: r.FlightCode}
	if r.Passengers != nil {
		passengers := toDomainPassengers(*r.Passengers)
		patch.Passengers = &passengers
	}
	return patch
}

// ToPatch converts the request to a passenger patch.
func (r UpdatePassengerRequest) ToPatch() domain.PassengerPatch {
	patch := domain.PassengerPatch{
		ID:                r.ID,
		Name:              r.Name,
		HasConnections:    r.HasConnections,
		Age:               r.Age,
		ReservationID:     r.ReservationID,
		HasCheckedBaggage: r.HasCheckedBaggage,
	}
	if r.FlightCategory != nil {
		category := domain.FlightCategory(*r.FlightCategory)
		patch.FlightCategory = &category
	}
	return patch
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Field + ": " + v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
// When a field fails more than one rule, the first message wins.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		if _, ok := result[e.Field]; !ok {
			result[e.Field] = e.Message
		}
	}
	return result
}

// Fields returns the failing field names in sorted order.
func (v *ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v.Errors))
	for field := range v.ToMap() {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
