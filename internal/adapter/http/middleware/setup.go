package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/flight-registry/flight-passenger-service/internal/infrastructure/logger"
)

// Setup installs ErrorHandler and registers all middleware on the Echo instance in order:
//  1. RequestID, so every later log line carries the ID
//  2. RequestLogger
//  3. Recover, innermost so panics still get logged with their status
//  4. CORS
//
// Call it before registering routes.
func Setup(e *echo.Echo, log *logger.Logger, origins ...string) {
	SetupWithConfig(e, log, DefaultRecoveryConfig(), origins...)
}

// SetupWithConfig registers middleware with custom recovery configuration.
func SetupWithConfig(e *echo.Echo, log *logger.Logger, recoveryConfig RecoveryConfig, origins ...string) {
	e.HTTPErrorHandler = ErrorHandler(log)
	for _, mw := range chain(log, recoveryConfig, origins) {
		e.Use(mw)
	}
}

// Chain returns all middleware as a slice for use with route groups.
func Chain(log *logger.Logger, origins ...string) []echo.MiddlewareFunc {
	return chain(log, DefaultRecoveryConfig(), origins)
}

func chain(log *logger.Logger, recoveryConfig RecoveryConfig, origins []string) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		RequestID(),
		RequestLogger(log),
		RecoverWithConfig(log, recoveryConfig),
		CORS(origins...),
	}
}
