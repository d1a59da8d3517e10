package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/flight-registry/flight-passenger-service/internal/infrastructure/logger"
)

const loggerKey = "logger"

// RequestLogger returns middleware that logs one line per HTTP request.
// The level follows the status: error for 5xx, warn for 4xx, info otherwise.
// A logger tagged with the request ID is stored for handlers, see Logger.
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqLog := log.WithRequestID(GetRequestID(c))
			if code := c.Param("flightCode"); code != "" {
				reqLog = reqLog.WithFlightCode(code)
			}
			c.Set(loggerKey, reqLog)

			if err := next(c); err != nil {
				// Let Echo's error handler write the response before logging it.
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			var event *zerolog.Event
			switch status := res.Status; {
			case status >= 500:
				event = reqLog.Error()
			case status >= 400:
				event = reqLog.Warn()
			default:
				event = reqLog.Info()
			}

			event.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("route", c.Path()).
				Str("query", req.URL.RawQuery).
				Int("status", res.Status).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("bytes_out", res.Size).
				Str("client_ip", c.RealIP()).
				Str("user_agent", req.UserAgent()).
				Msg("HTTP request")

			return nil
		}
	}
}

// Logger returns the request-scoped logger stored by RequestLogger, or
// fallback when the middleware did not run.
func Logger(c echo.Context, fallback *logger.Logger) *logger.Logger {
	if l, ok := c.Get(loggerKey).(*logger.Logger); ok {
		return l
	}
	return fallback
}
