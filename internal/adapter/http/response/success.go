package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Health writes a health check response.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Success:   true,
		Message:   "Flight passenger service is running",
		Timestamp: Now(),
	})
}

// Deleted writes a 200 OK response with null data.
func Deleted(c echo.Context, message string) error {
	return OK(c, nil, message)
}
