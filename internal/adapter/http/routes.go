package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all flight registry API routes.
func RegisterRoutes(e *echo.Echo, h *FlightHandler) {
	RegisterRoutesWithMiddleware(e, h)
}

// RegisterRoutesWithMiddleware registers routes with custom middleware on the /api group.
func RegisterRoutesWithMiddleware(e *echo.Echo, h *FlightHandler, middleware ...echo.MiddlewareFunc) {
	// Health check endpoint (no prefix, no middleware)
	e.GET("/health", h.Health)

	api := e.Group("/api", middleware...)

	flights := api.Group("/flights")
	flights.GET("", h.ListFlights)
	flights.POST("", h.CreateFlight)
	flights.GET("/:flightCode", h.GetFlight)
	flights.PUT("/:flightCode", h.UpdateFlight)
	flights.DELETE("/:flightCode", h.DeleteFlight)

	passengers := flights.Group("/:flightCode/passengers")
	passengers.GET("", h.ListPassengers)
	passengers.POST("", h.AddPassenger)
	passengers.PUT("/:passengerId", h.UpdatePassenger)
	passengers.DELETE("/:passengerId", h.RemovePassenger)

	api.GET("/passengers", h.SearchPassengers)
}
