package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flight-registry/flight-passenger-service/internal/adapter/http/response"
	"github.com/flight-registry/flight-passenger-service/internal/infrastructure/logger"
)

// ErrorHandler returns an echo.HTTPErrorHandler that writes every error
// reaching Echo (unknown routes, wrong methods, errors returned by handlers)
// as the standard error envelope. Details of 5xx errors are logged, never sent.
func ErrorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := response.MsgInternalError

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if status < http.StatusInternalServerError {
				message = httpErrorMessage(he)
			}
		}

		reqLog := Logger(c, log)
		if status >= http.StatusInternalServerError {
			reqLog.Error().Err(err).Int("status", status).Msg("Unhandled error")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, response.Failure(response.CodeForStatus(status), message, nil))
		}
		if writeErr != nil {
			reqLog.Error().Err(writeErr).Msg("Failed to write error response")
		}
	}
}

func httpErrorMessage(he *echo.HTTPError) string {
	switch m := he.Message.(type) {
	case string:
		return m
	case nil:
		return http.StatusText(he.Code)
	default:
		return fmt.Sprint(m)
	}
}
