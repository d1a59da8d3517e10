package http

import (
	"context"
	"errors"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/xeipuuv/gojsonschema"

	"github.com/flight-registry/flight-passenger-service/internal/adapter/http/middleware"
	"github.com/flight-registry/flight-passenger-service/internal/adapter/http/response"
	"github.com/flight-registry/flight-passenger-service/internal/domain"
	"github.com/flight-registry/flight-passenger-service/internal/infrastructure/logger"
	"github.com/flight-registry/flight-passenger-service/internal/usecase"
)

// maxBodyBytes caps how much of a request body is read.
const maxBodyBytes = 1 << 20

// FlightHandler handles HTTP requests for flight and passenger endpoints.
type FlightHandler struct {
	service usecase.FlightService
	log     *logger.Logger
}

// NewFlightHandler creates a new FlightHandler with the given service.
// A nil logger disables logging.
func NewFlightHandler(svc usecase.FlightService, log *logger.Logger) *FlightHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &FlightHandler{
		service: svc,
		log:     log.WithContext("component", "http"),
	}
}

// ListFlights handles GET /api/flights
//
// @Summary List or search flights
// @Description Returns every flight, or the flights where any passenger matches each supplied filter
// @Tags flights
// @Produce json
// @Param flightCode query string false "Exact flight code"
// @Param reservationId query string false "Any passenger holds this reservation"
// @Param flightCategory query string false "Any passenger flies in this category" Enums(Black, Platinum, Gold, Normal)
// @Param hasConnections query bool false "Any passenger has this connection flag"
// @Param hasCheckedBaggage query bool false "Any passenger has this baggage flag"
// @Success 200 {object} SwaggerFlightListResponse
// @Failure 400 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /flights [get]
func (h *FlightHandler) ListFlights(c echo.Context) error {
	criteria, err := parseFlightCriteria(c)
	if err != nil {
		return h.handleValidationError(c, err)
	}

	flights, err := h.service.SearchFlights(c.Request().Context(), criteria)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, flights, "Flights retrieved successfully")
}

// GetFlight handles GET /api/flights/:flightCode
//
// @Summary Get a flight
// @Tags flights
// @Produce json
// @Param flightCode path string true "Flight code"
// @Success 200 {object} SwaggerFlightResponse
// @Failure 404 {object} response.ErrorResponse "Flight not found"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /flights/{flightCode} [get]
func (h *FlightHandler) GetFlight(c echo.Context) error {
	flight, err := h.service.GetFlight(c.Request().Context(), c.Param("flightCode"))
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, flight, "Flight retrieved successfully")
}

// CreateFlight handles POST /api/flights
//
// @Summary Create a flight
// @Tags flights
// @Accept json
// @Produce json
// @Param request body CreateFlightRequest true "Flight with its passengers"
// @Success 201 {object} SwaggerFlightResponse
// @Failure 400 {object} response.ErrorResponse "Validation error"
// @Failure 409 {object} response.ErrorResponse "Flight code already in use"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /flights [post]
func (h *FlightHandler) CreateFlight(c echo.Context) error {
	var req CreateFlightRequest
	if err := h.decode(c, createFlightSchema, &req); err != nil {
		return h.handleValidationError(c, err)
	}

	flight, err := h.service.CreateFlight(c.Request().Context(), req.ToDomain())
	if err != nil {
		return h.handleError(c, err)
	}
	return response.Created(c, flight, "Flight created successfully")
}

// UpdateFlight handles PUT /api/flights/:flightCode
//
// @Summary Update a flight
// @Description Partial update. A supplied passenger list replaces the stored list.
// @Tags flights
// @Accept json
// @Produce json
// @Param flightCode path string true "Flight code"
// @Param request body UpdateFlightRequest true "Fields to change"
// @Success 200 {object} SwaggerFlightResponse
// @Failure 400 {object} response.ErrorResponse "Validation error"
// @Failure 404 {object} response.ErrorResponse "Flight not found"
// @Failure 409 {object} response.ErrorResponse "New flight code already in use"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /flights/{flightCode} [put]
func (h *FlightHandler) UpdateFlight(c echo.Context) error {
	var req UpdateFlightRequest
	if err := h.decode(c, updateFlightSchema, &req); err != nil {
		return h.handleValidationError(c, err)
	}

	flight, err := h.service.UpdateFlight(c.Request().Context(), c.Param("flightCode"), req.ToPatch())
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, flight, "Flight updated successfully")
}

// DeleteFlight handles DELETE /api/flights/:flightCode
//
// @Summary Delete a flight
// @Tags flights
// @Produce json
// @Param flightCode path string true "Flight code"
// @Success 200 {object} response.Response "data is null"
// @Failure 404 {object} response.ErrorResponse "Flight not found"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /flights/{flightCode} [delete]
func (h *FlightHandler) DeleteFlight(c echo.Context) error {
	if err := h.service.DeleteFlight(c.Request().Context(), c.Param("flightCode")); err != nil {
		return h.handleError(c, err)
	}
	return response.Deleted(c, "Flight deleted successfully")
}

// ListPassengers handles GET /api/flights/:flightCode/passengers
//
// @Summary List the passengers of a flight
// @Tags passengers
// @Produce json
// @Param flightCode path string true "Flight code"
// @Success 200 {object} SwaggerPassengerListResponse
// @Failure 404 {object} response.ErrorResponse "Flight not found"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /flights/{flightCode}/passengers [get]
func (h *FlightHandler) ListPassengers(c echo.Context) error {
	passengers, err := h.service.ListPassengers(c.Request().Context(), c.Param("flightCode"))
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, passengers, "Passengers retrieved successfully")
}

// AddPassenger handles POST /api/flights/:flightCode/passengers
//
// @Summary Add a passenger to a flight
// @Tags passengers
// @Accept json
// @Produce json
// @Param flightCode path string true "Flight code"
// @Param request body PassengerRequest true "Passenger"
// @Success 201 {object} SwaggerFlightResponse
// @Failure 400 {object} response.ErrorResponse "Validation error"
// @Failure 404 {object} response.ErrorResponse "Flight not found"
// @Failure 409 {object} response.ErrorResponse "Passenger ID already on the flight"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /flights/{flightCode}/passengers [post]
func (h *FlightHandler) AddPassenger(c echo.Context) error {
	var req PassengerRequest
	if err := h.decode(c, addPassengerSchema, &req); err != nil {
		return h.handleValidationError(c, err)
	}

	flight, err := h.service.AddPassenger(c.Request().Context(), c.Param("flightCode"), req.ToDomain())
	if err != nil {
		return h.handleError(c, err)
	}
	return response.Created(c, flight, "Passenger added successfully")
}

// UpdatePassenger handles PUT /api/flights/:flightCode/passengers/:passengerId
//
// @Summary Update a passenger
// @Description Partial update; the passenger keeps its position in the list.
// @Tags passengers
// @Accept json
// @Produce json
// @Param flightCode path string true "Flight code"
// @Param passengerId path int true "Passenger ID"
// @Param request body UpdatePassengerRequest true "Fields to change"
// @Success 200 {object} SwaggerFlightResponse
// @Failure 400 {object} response.ErrorResponse "Validation error"
// @Failure 404 {object} response.ErrorResponse "Flight or passenger not found"
// @Failure 409 {object} response.ErrorResponse "New passenger ID already on the flight"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /flights/{flightCode}/passengers/{passengerId} [put]
func (h *FlightHandler) UpdatePassenger(c echo.Context) error {
	id, err := passengerIDParam(c)
	if err != nil {
		return h.handleValidationError(c, err)
	}

	var req UpdatePassengerRequest
	if err := h.decode(c, updatePassengerSchema, &req); err != nil {
		return h.handleValidationError(c, err)
	}

	flight, err := h.service.UpdatePassenger(c.Request().Context(), c.Param("flightCode"), id, req.ToPatch())
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, flight, "Passenger updated successfully")
}

// RemovePassenger handles DELETE /api/flights/:flightCode/passengers/:passengerId
//
// @Summary Remove a passenger
// @Tags passengers
// @Produce json
// @Param flightCode path string true "Flight code"
// @Param passengerId path int true "Passenger ID"
// @Success 200 {object} SwaggerFlightResponse
// @Failure 400 {object} response.ErrorResponse "Validation error"
// @Failure 404 {object} response.ErrorResponse "Flight or passenger not found"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /flights/{flightCode}/passengers/{passengerId} [delete]
func (h *FlightHandler) RemovePassenger(c echo.Context) error {
	id, err := passengerIDParam(c)
	if err != nil {
		return h.handleValidationError(c, err)
	}

	flight, err := h.service.RemovePassenger(c.Request().Context(), c.Param("flightCode"), id)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, flight, "Passenger removed successfully")
}

// SearchPassengers handles GET /api/passengers
//
// @Summary Search passengers across all flights
// @Description Every supplied filter must match. Results do not name the owning flight.
// @Tags passengers
// @Produce json
// @Param id query int false "Exact passenger ID"
// @Param name query string false "Case-insensitive substring of the name"
// @Param reservationId query string false "Exact reservation ID"
// @Param flightCategory query string false "Exact category" Enums(Black, Platinum, Gold, Normal)
// @Param hasConnections query bool false "Connection flag"
// @Param hasCheckedBaggage query bool false "Baggage flag"
// @Param minAge query int false "Inclusive lower age bound"
// @Param maxAge query int false "Inclusive upper age bound"
// @Success 200 {object} SwaggerPassengerListResponse
// @Failure 400 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /passengers [get]
func (h *FlightHandler) SearchPassengers(c echo.Context) error {
	criteria, err := parsePassengerCriteria(c)
	if err != nil {
		return h.handleValidationError(c, err)
	}

	passengers, err := h.service.SearchPassengers(c.Request().Context(), criteria)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, passengers, "Passengers retrieved successfully")
}

// Health handles GET /health
//
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /health [get]
func (h *FlightHandler) Health(c echo.Context) error {
	return response.Health(c)
}

// decode validates the request body against schema and unmarshals it into dst.
func (h *FlightHandler) decode(c echo.Context, schema *gojsonschema.Schema, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil {
		return errMalformedBody
	}
	if err := validateBody(schema, body); err != nil {
		return err
	}
	return decodeValidated(body, dst)
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *FlightHandler) handleValidationError(c echo.Context, err error) error {
	if errors.Is(err, errMalformedBody) {
		return response.InvalidRequestBody(c)
	}

	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *FlightHandler) handleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return response.ValidationErrorWithMessage(c, err.Error())
	case domain.IsNotFound(err):
		return response.NotFound(c, err.Error())
	case domain.IsConflict(err):
		return response.Conflict(c, err.Error())
	}

	log := middleware.Logger(c, h.log)
	event := log.Error()
	if errors.Is(err, context.DeadlineExceeded) {
		event = log.Warn()
	}
	event.Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("Request failed")
	return response.InternalServerError(c)
}
