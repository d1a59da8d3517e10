package http

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/flight-registry/flight-passenger-service/internal/domain"
)

// parseFlightCriteria reads the GET /api/flights query string.
// Boolean flags other than "true" and "false" are ignored.
func parseFlightCriteria(c echo.Context) (domain.FlightCriteria, error) {
	errs := &ValidationErrors{}
	criteria := domain.FlightCriteria{
		FlightCode:        c.QueryParam("flightCode"),
		ReservationID:     c.QueryParam("reservationId"),
		HasConnections:    boolParam(c, "hasConnections"),
		HasCheckedBaggage: boolParam(c, "hasCheckedBaggage"),
	}
	criteria.FlightCategory = categoryParam(c, errs)

	if errs.HasErrors() {
		return domain.FlightCriteria{}, errs
	}
	return criteria, nil
}

// parsePassengerCriteria reads the GET /api/passengers query string.
func parsePassengerCriteria(c echo.Context) (domain.PassengerCriteria, error) {
	errs := &ValidationErrors{}
	criteria := domain.PassengerCriteria{
		ID:                intParam(c, "id", errs),
		Name:              c.QueryParam("name"),
		ReservationID:     c.QueryParam("reservationId"),
		HasConnections:    boolParam(c, "hasConnections"),
		HasCheckedBaggage: boolParam(c, "hasCheckedBaggage"),
		MinAge:            intParam(c, "minAge", errs),
		MaxAge:            intParam(c, "maxAge", errs),
	}
	criteria.FlightCategory = categoryParam(c, errs)

	if criteria.MinAge != nil && criteria.MaxAge != nil && *criteria.MinAge > *criteria.MaxAge {
		errs.Add("minAge", "minAge must be less than or equal to maxAge")
	}
	if errs.HasErrors() {
		return domain.PassengerCriteria{}, errs
	}
	return criteria, nil
}

// passengerIDParam parses the :passengerId path parameter.
func passengerIDParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("passengerId"))
	if err != nil {
		errs := &ValidationErrors{}
		errs.Add("passengerId", "passengerId must be an integer")
		return 0, errs
	}
	return id, nil
}

func boolParam(c echo.Context, name string) *bool {
	switch c.QueryParam(name) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
}

func intParam(c echo.Context, name string, errs *ValidationErrors) *int {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		errs.Add(name, name+" must be an integer")
		return nil
	}
	return &v
}

func categoryParam(c echo.Context, errs *ValidationErrors) domain.FlightCategory {
	raw := c.QueryParam("flightCategory")
	if raw == "" {
		return ""
	}
	category, err := domain.ParseFlightCategory(raw)
	if err != nil {
		errs.Add("flightCategory", "flightCategory must be one of: Black, Platinum, Gold, Normal")
		return ""
	}
	return category
}
