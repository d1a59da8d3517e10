package domain

import (
	"fmt"
	"strings"
)

// FlightCriteria defines optional constraints for a flight search.
// Zero values mean "no constraint" for the string fields; nil pointers mean
// "no constraint" for the boolean fields.
type FlightCriteria struct {
	// FlightCode matches the flight code exactly
	FlightCode string `json:"flightCode,omitempty"`

	// ReservationID matches flights with any passenger holding this reservation
	ReservationID string `json:"reservationId,omitempty"`

	// FlightCategory matches flights with any passenger in this category
	FlightCategory FlightCategory `json:"flightCategory,omitempty"`

	// HasConnections matches flights with any passenger having this connection flag
	HasConnections *bool `json:"hasConnections,omitempty"`

	// HasCheckedBaggage matches flights with any passenger having this baggage flag
	HasCheckedBaggage *bool `json:"hasCheckedBaggage,omitempty"`
}

// IsEmpty returns true when no constraint is set.
func (c FlightCriteria) IsEmpty() bool {
	return c.FlightCode == "" &&
		c.ReservationID == "" &&
		c.FlightCategory == "" &&
		c.HasConnections == nil &&
		c.HasCheckedBaggage == nil
}

// Validate checks the enumerated fields of the criteria.
func (c FlightCriteria) Validate() error {
	if c.FlightCategory != "" && !c.FlightCategory.IsValid() {
		return InvalidCategory(string(c.FlightCategory))
	}
	return nil
}

// MatchesFlight checks whether a flight satisfies every provided constraint.
//
// Passenger-level constraints are evaluated independently: each one is
// satisfied if any passenger matches it, and different constraints may be
// satisfied by different passengers. This mirrors how document stores
// match a dotted path into an array of sub-documents.
func (c FlightCriteria) MatchesFlight(f Flight) bool {
	if c.FlightCode != "" && f.FlightCode != c.FlightCode {
		return false
	}
	if c.ReservationID != "" && !anyPassenger(f, func(p Passenger) bool { return p.ReservationID == c.ReservationID }) {
		return false
	}
	if c.FlightCategory != "" && !anyPassenger(f, func(p Passenger) bool { return p.FlightCategory == c.FlightCategory }) {
		return false
	}
	if c.HasConnections != nil && !anyPassenger(f, func(p Passenger) bool { return p.HasConnections == *c.HasConnections }) {
		return false
	}
	if c.HasCheckedBaggage != nil && !anyPassenger(f, func(p Passenger) bool { return p.HasCheckedBaggage == *c.HasCheckedBaggage }) {
		return false
	}
	return true
}

func anyPassenger(f Flight, pred func(Passenger) bool) bool {
	for _, p := range f.Passengers {
		if pred(p) {
			return true
		}
	}
	return false
}

// PassengerCriteria defines optional constraints for a cross-flight passenger search.
type PassengerCriteria struct {
	// ID matches the passenger ID exactly
	ID *int `json:"id,omitempty"`

	// Name matches passengers whose name contains this value, ignoring case
	Name string `json:"name,omitempty"`

	ReservationID     string         `json:"reservationId,omitempty"`
	FlightCategory    FlightCategory `json:"flightCategory,omitempty"`
	HasConnections    *bool          `json:"hasConnections,omitempty"`
	HasCheckedBaggage *bool          `json:"hasCheckedBaggage,omitempty"`

	// MinAge and MaxAge are inclusive bounds
	MinAge *int `json:"minAge,omitempty"`
	MaxAge *int `json:"maxAge,omitempty"`
}

// Validate checks the enumerated field and the age bounds.
func (c PassengerCriteria) Validate() error {
	if c.FlightCategory != "" && !c.FlightCategory.IsValid() {
		return InvalidCategory(string(c.FlightCategory))
	}
	if c.MinAge != nil && c.MaxAge != nil && *c.MinAge > *c.MaxAge {
		return fmt.Errorf("%w: minAge (%d) must be less than or equal to maxAge (%d)",
			ErrInvalidRequest, *c.MinAge, *c.MaxAge)
	}
	return nil
}

// Matches checks whether a passenger satisfies every provided constraint.
func (c PassengerCriteria) Matches(p Passenger) bool {
	if c.ID != nil && p.ID != *c.ID {
		return false
	}
	if c.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(c.Name)) {
		return false
	}
	if c.ReservationID != "" && p.ReservationID != c.ReservationID {
		return false
	}
	if c.FlightCategory != "" && p.FlightCategory != c.FlightCategory {
		return false
	}
	if c.HasConnections != nil && p.HasConnections != *c.HasConnections {
		return false
	}
	if c.HasCheckedBaggage != nil && p.HasCheckedBaggage != *c.HasCheckedBaggage {
		return false
	}
	if c.MinAge != nil && p.Age < *c.MinAge {
		return false
	}
	if c.MaxAge != nil && p.Age > *c.MaxAge {
		return false
	}
	return true
}
