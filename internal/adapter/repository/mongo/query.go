package mongo

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/flight-registry/flight-passenger-service/internal/domain"
)

// passengerElem is the array filter identifier bound to the addressed passenger.
const passengerElem = "p"

// byCode selects a flight document.
func byCode(code string) bson.M {
	return bson.M{"flightCode": code}
}

// criteriaFilter translates flight search criteria into a query document.
// Each passenger-level field becomes its own dot-path condition, so a flight
// matches when any passenger satisfies each field, not necessarily the same one.
func criteriaFilter(c domain.FlightCriteria) bson.M {
	filter := bson.M{}
	if c.FlightCode != "" {
		filter["flightCode"] = c.FlightCode
	}
	if c.ReservationID != "" {
		filter["passengers.reservationId"] = c.ReservationID
	}
	if c.FlightCategory != "" {
		filter["passengers.flightCategory"] = string(c.FlightCategory)
	}
	if c.HasConnections != nil {
		filter["passengers.hasConnections"] = *c.HasConnections
	}
	if c.HasCheckedBaggage != nil {
		filter["passengers.hasCheckedBaggage"] = *c.HasCheckedBaggage
	}
	return filter
}

// addPassengerFilter matches the flight only while no passenger holds the ID.
func addPassengerFilter(code string, id int) bson.M {
	return bson.M{
		"flightCode":    code,
		"passengers.id": bson.M{"$ne": id},
	}
}

// updatePassengerFilter matches the flight holding the passenger. When the
// patch assigns a new ID, it additionally requires that ID to be free.
func updatePassengerFilter(code string, id int, patch domain.PassengerPatch) bson.M {
	if !patch.ChangesID(id) {
		return bson.M{"flightCode": code, "passengers.id": id}
	}
	return bson.M{
		"flightCode": code,
		"$and": bson.A{
			bson.M{"passengers.id": id},
			bson.M{"passengers.id": bson.M{"$ne": *patch.ID}},
		},
	}
}

// passengerSet builds the $set document for the fields present in patch,
// addressed through the passengerElem array filter.
func passengerSet(patch domain.PassengerPatch) bson.M {
	set := bson.M{}
	for field, value := range patch.Changes() {
		set["passengers.$["+passengerElem+"]."+field] = value
	}
	return set
}

// passengerArrayFilter binds passengerElem to the passenger with the given ID.
func passengerArrayFilter(id int) bson.M {
	return bson.M{passengerElem + ".id": id}
}

// flightSet builds the $set document for a flight patch. A replaced passenger
// list is never stored as null so later $push operations keep working.
func flightSet(patch domain.FlightPatch) bson.M {
	set := bson.M{}
	if patch.FlightCode != nil {
		set["flightCode"] = *patch.FlightCode
	}
	if patch.Passengers != nil {
		list := make([]domain.Passenger, len(*patch.Passengers))
		copy(list, *patch.Passengers)
		set["passengers"] = list
	}
	return set
}
