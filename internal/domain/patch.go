package domain

// FlightPatch carries the top-level fields of a partial flight update.
// Nil fields are left untouched.
type FlightPatch struct {
	FlightCode *string
	Passengers *[]Passenger
}

// IsEmpty returns true when the patch changes nothing.
func (p FlightPatch) IsEmpty() bool {
	return p.FlightCode == nil && p.Passengers == nil
}

// Renames reports whether the patch moves the flight to a different code.
func (p FlightPatch) Renames(code string) bool {
	return p.FlightCode != nil && *p.FlightCode != code
}

// PassengerPatch carries the fields of a partial passenger update.
type PassengerPatch struct {
	ID                *int
	Name              *string
	HasConnections    *bool
	Age               *int
	FlightCategory    *FlightCategory
	ReservationID     *string
	HasCheckedBaggage *bool
}

// IsEmpty returns true when the patch changes nothing.
func (p PassengerPatch) IsEmpty() bool {
	return len(p.Changes()) == 0
}

// ChangesID reports whether the patch assigns the passenger a new ID.
func (p PassengerPatch) ChangesID(current int) bool {
	return p.ID != nil && *p.ID != current
}

// ApplyTo merges the provided fields onto dst.
func (p PassengerPatch) ApplyTo(dst *Passenger) {
	if p.ID != nil {
		dst.ID = *p.ID
	}
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.HasConnections != nil {
		dst.HasConnections = *p.HasConnections
	}
	if p.Age != nil {
		dst.Age = *p.Age
	}
	if p.FlightCategory != nil {
		dst.FlightCategory = *p.FlightCategory
	}
	if p.ReservationID != nil {
		dst.ReservationID = *p.ReservationID
	}
	if p.HasCheckedBaggage != nil {
		dst.HasCheckedBaggage = *p.HasCheckedBaggage
	}
}

// Changes returns the provided fields keyed by their document field name.
// Document stores use it to build field-level updates.
func (p PassengerPatch) Changes() map[string]interface{} {
	changes := make(map[string]interface{}, 7)
	if p.ID != nil {
		changes["id"] = *p.ID
	}
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.HasConnections != nil {
		changes["hasConnections"] = *p.HasConnections
	}
	if p.Age != nil {
		changes["age"] = *p.Age
	}
	if p.FlightCategory != nil {
		changes["flightCategory"] = string(*p.FlightCategory)
	}
	if p.ReservationID != nil {
		changes["reservationId"] = *p.ReservationID
	}
	if p.HasCheckedBaggage != nil {
		changes["hasCheckedBaggage"] = *p.HasCheckedBaggage
	}
	return changes
}
