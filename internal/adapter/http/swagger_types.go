package http

// These types mirror the response envelopes with concrete payloads so swag
// can document them; handlers never construct them.

// SwaggerPassenger represents a passenger.
// @Description Passenger on a flight. IDs are unique only within the flight.
type SwaggerPassenger struct {
	ID                int    `json:"id" example:"1"`
	Name              string `json:"name" example:"Ana Lopez"`
	HasConnections    bool   `json:"hasConnections" example:"false"`
	Age               int    `json:"age" example:"30"`
	FlightCategory    string `json:"flightCategory" example:"Gold" enums:"Black,Platinum,Gold,Normal"`
	ReservationID     string `json:"reservationId" example:"ABC123"`
	HasCheckedBaggage bool   `json:"hasCheckedBaggage" example:"true"`
}

// SwaggerFlight represents a flight.
// @Description Flight with its passengers in insertion order
type SwaggerFlight struct {
	FlightCode string             `json:"flightCode" example:"LAN123"`
	Passengers []SwaggerPassenger `json:"passengers"`
	CreatedAt  string             `json:"createdAt" example:"2025-05-01T10:00:00Z"`
	UpdatedAt  string             `json:"updatedAt" example:"2025-05-01T10:00:00Z"`
}

// SwaggerFlightResponse is the envelope for a single flight.
type SwaggerFlightResponse struct {
	Success   bool          `json:"success" example:"true"`
	Data      SwaggerFlight `json:"data"`
	Message   string        `json:"message" example:"Flight retrieved successfully"`
	Timestamp string        `json:"timestamp" example:"2025-05-01T10:00:00Z"`
}

// SwaggerFlightListResponse is the envelope for a list of flights.
type SwaggerFlightListResponse struct {
	Success   bool            `json:"success" example:"true"`
	Data      []SwaggerFlight `json:"data"`
	Message   string          `json:"message" example:"Flights retrieved successfully"`
	Timestamp string          `json:"timestamp" example:"2025-05-01T10:00:00Z"`
}

// SwaggerPassengerListResponse is the envelope for a list of passengers.
type SwaggerPassengerListResponse struct {
	Success   bool               `json:"success" example:"true"`
	Data      []SwaggerPassenger `json:"data"`
	Message   string             `json:"message" example:"Passengers retrieved successfully"`
	Timestamp string             `json:"timestamp" example:"2025-05-01T10:00:00Z"`
}
