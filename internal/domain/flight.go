// Package domain contains the core business entities and rules for the flight registry.
// Flights own an ordered list of passengers; every other layer builds on these types.
package domain

import "time"

// FlightCategory is the loyalty tier a passenger travels under.
type FlightCategory string

// Available flight categories.
const (
	CategoryBlack    FlightCategory = "Black"
	CategoryPlatinum FlightCategory = "Platinum"
	CategoryGold     FlightCategory = "Gold"
	CategoryNormal   FlightCategory = "Normal"
)

// FlightCategories lists every valid category in tier order.
var FlightCategories = []FlightCategory{
	CategoryBlack,
	CategoryPlatinum,
	CategoryGold,
	CategoryNormal,
}

// IsValid checks if the category is one of the four known tiers.
// Matching is case-sensitive.
func (c FlightCategory) IsValid() bool {
	switch c {
	case CategoryBlack, CategoryPlatinum, CategoryGold, CategoryNormal:
		return true
	default:
		return false
	}
}

// String returns the category name.
func (c FlightCategory) String() string {
	return string(c)
}

// ParseFlightCategory converts a raw string into a FlightCategory.
// Returns a wrapped ErrInvalidRequest if the value is not a known tier.
func ParseFlightCategory(s string) (FlightCategory, error) {
	c := FlightCategory(s)
	if !c.IsValid() {
		return "", InvalidCategory(s)
	}
	return c, nil
}

// Flight is a document keyed by a unique flight code.
type Flight struct {
	// FlightCode uniquely identifies the flight across the registry (e.g., "LAN123")
	FlightCode string `json:"flightCode" bson:"flightCode" dynamodbav:"flightCode"`

	// Passengers is kept in insertion order
	Passengers []Passenger `json:"passengers" bson:"passengers" dynamodbav:"passengers"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt" dynamodbav:"updatedAt"`
}

// Passenger describes one traveler. IDs are unique only within the owning flight.
type Passenger struct {
	ID                int            `json:"id" bson:"id" dynamodbav:"id"`
	Name              string         `json:"name" bson:"name" dynamodbav:"name"`
	HasConnections    bool           `json:"hasConnections" bson:"hasConnections" dynamodbav:"hasConnections"`
	Age               int            `json:"age" bson:"age" dynamodbav:"age"`
	FlightCategory    FlightCategory `json:"flightCategory" bson:"flightCategory" dynamodbav:"flightCategory"`
	ReservationID     string         `json:"reservationId" bson:"reservationId" dynamodbav:"reservationId"`
	HasCheckedBaggage bool           `json:"hasCheckedBaggage" bson:"hasCheckedBaggage" dynamodbav:"hasCheckedBaggage"`
}

// NewFlight builds a flight with a non-nil passenger list.
// The passenger slice is copied so later caller mutations do not leak in.
func NewFlight(code string, passengers []Passenger) Flight {
	list := make([]Passenger, len(passengers))
	copy(list, passengers)
	return Flight{
		FlightCode: code,
		Passengers: list,
	}
}

// Clone returns a deep copy of the flight.
func (f Flight) Clone() Flight {
	out := f
	out.Passengers = make([]Passenger, len(f.Passengers))
	copy(out.Passengers, f.Passengers)
	return out
}

// PassengerIndex returns the position of the passenger with the given ID, or -1.
func (f *Flight) PassengerIndex(id int) int {
	for i := range f.Passengers {
		if f.Passengers[i].ID == id {
			return i
		}
	}
	return -1
}

// HasPassenger reports whether a passenger with the given ID is on the flight.
func (f *Flight) HasPassenger(id int) bool {
	return f.PassengerIndex(id) >= 0
}

// AddPassenger appends p to the end of the passenger list.
// Returns a wrapped ErrPassengerExists if the ID is already taken.
func (f *Flight) AddPassenger(p Passenger) error {
	if f.HasPassenger(p.ID) {
		return PassengerExists(f.FlightCode, p.ID)
	}
	f.Passengers = append(f.Passengers, p)
	return nil
}

// UpdatePassenger merges patch onto the passenger with the given ID in place.
// Renaming the passenger ID onto another passenger's ID is a conflict.
func (f *Flight) UpdatePassenger(id int, patch PassengerPatch) error {
	idx := f.PassengerIndex(id)
	if idx < 0 {
		return PassengerNotFound(f.FlightCode, id)
	}
	if patch.ChangesID(id) && f.HasPassenger(*patch.ID) {
		return PassengerExists(f.FlightCode, *patch.ID)
	}
	patch.ApplyTo(&f.Passengers[idx])
	return nil
}

// RemovePassenger deletes the passenger with the given ID, shifting later entries down.
func (f *Flight) RemovePassenger(id int) error {
	idx := f.PassengerIndex(id)
	if idx < 0 {
		return PassengerNotFound(f.FlightCode, id)
	}
	f.Passengers = append(f.Passengers[:idx], f.Passengers[idx+1:]...)
	return nil
}

// Apply merges a flight patch onto f. Provided fields replace existing ones;
// a supplied passenger list replaces the stored list wholesale.
func (f *Flight) Apply(patch FlightPatch) {
	if patch.FlightCode != nil {
		f.FlightCode = *patch.FlightCode
	}
	if patch.Passengers != nil {
		list := make([]Passenger, len(*patch.Passengers))
		copy(list, *patch.Passengers)
		f.Passengers = list
	}
}
