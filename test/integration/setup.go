// Package integration provides helpers and integration tests for the flight registry.
// Integration tests drive the HTTP layer, the flight service and a real
// memory store together, optionally through a fault-injecting repository.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/flight-registry/flight-passenger-service/internal/adapter/http"
	"github.com/flight-registry/flight-passenger-service/internal/adapter/http/middleware"
	"github.com/flight-registry/flight-passenger-service/internal/adapter/http/response"
	"github.com/flight-registry/flight-passenger-service/internal/adapter/repository/memory"
	"github.com/flight-registry/flight-passenger-service/internal/domain"
	"github.com/flight-registry/flight-passenger-service/internal/infrastructure/logger"
	"github.com/flight-registry/flight-passenger-service/internal/usecase"
	"github.com/flight-registry/flight-passenger-service/test/mock"
)

// TestServer wraps an Echo instance and provides helper methods for integration testing.
type TestServer struct {
	Echo    *echo.Echo
	Handler *httpAdapter.FlightHandler
	Service usecase.FlightService

	// Repo sits between the service and the memory store and can inject faults.
	Repo  *mock.Repository
	Store *memory.Store
}

// NewTestServer creates a server backed by a connected, empty memory store.
func NewTestServer(t *testing.T) *TestServer {
	return NewTestServerWithConfig(t, nil)
}

// NewTestServerWithConfig creates a server with a custom service configuration.
func NewTestServerWithConfig(t *testing.T, config *usecase.Config) *TestServer {
	t.Helper()

	store := memory.New(memory.Config{})
	require.NoError(t, store.Connect(context.Background()))
	t.Cleanup(func() { _ = store.Disconnect(context.Background()) })

	repo := mock.NewRepository(store.Flights())
	svc := usecase.NewFlightService(repo, config)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	handler := httpAdapter.NewFlightHandler(svc, logger.Nop())
	middleware.Setup(e, logger.Nop())
	httpAdapter.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:    e,
		Handler: handler,
		Service: svc,
		Repo:    repo,
		Store:   store,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method string
	Path   string

	// Body is marshaled to JSON unless it is already a []byte.
	Body        interface{}
	ContentType string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Envelope is the union of the success and error response shapes.
type Envelope struct {
	Success   bool                  `json:"success"`
	Data      json.RawMessage       `json:"data"`
	Message   string                `json:"message"`
	Error     *response.ErrorDetail `json:"error"`
	Timestamp string                `json:"timestamp"`
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var payload []byte
	switch body := req.Body.(type) {
	case nil:
	case []byte:
		payload = body
	default:
		payload, _ = json.Marshal(body)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bytes.NewReader(payload))
	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// CreateFlight posts body to /api/flights.
func (ts *TestServer) CreateFlight(body interface{}) Response {
	return ts.Do(Request{Method: http.MethodPost, Path: "/api/flights", Body: body})
}

// GetFlight fetches a single flight.
func (ts *TestServer) GetFlight(code string) Response {
	return ts.Do(Request{Method: http.MethodGet, Path: "/api/flights/" + code})
}

// AddPassenger posts a passenger to the flight's manifest.
func (ts *TestServer) AddPassenger(code string, passenger interface{}) Response {
	return ts.Do(Request{Method: http.MethodPost, Path: "/api/flights/" + code + "/passengers", Body: passenger})
}

// UpdatePassenger applies a partial update to one passenger.
func (ts *TestServer) UpdatePassenger(code string, id int, patch interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/api/flights/%s/passengers/%d", code, id),
		Body:   patch,
	})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{Method: http.MethodGet, Path: "/health"})
}

// Envelope parses the response body.
func (r Response) Envelope(t *testing.T) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(r.Body, &env), "body: %s", r.Body)
	return env
}

// Flight decodes the data field as a flight.
func (r Response) Flight(t *testing.T) domain.Flight {
	t.Helper()
	var f domain.Flight
	require.NoError(t, json.Unmarshal(r.Envelope(t).Data, &f))
	return f
}

// Flights decodes the data field as a flight list.
func (r Response) Flights(t *testing.T) []domain.Flight {
	t.Helper()
	var flights []domain.Flight
	require.NoError(t, json.Unmarshal(r.Envelope(t).Data, &flights))
	return flights
}

// Passengers decodes the data field as a passenger list.
func (r Response) Passengers(t *testing.T) []domain.Passenger {
	t.Helper()
	var passengers []domain.Passenger
	require.NoError(t, json.Unmarshal(r.Envelope(t).Data, &passengers))
	return passengers
}

// PassengerBody builds a valid passenger request body.
func PassengerBody(id int, name string, age int, category domain.FlightCategory) map[string]interface{} {
	return map[string]interface{}{
		"id":                id,
		"name":              name,
		"hasConnections":    false,
		"age":               age,
		"flightCategory":    string(category),
		"reservationId":     fmt.Sprintf("RES%03d", id),
		"hasCheckedBaggage": false,
	}
}

// FlightBody builds a create-flight request body.
func FlightBody(code string, passengers ...map[string]interface{}) map[string]interface{} {
	if passengers == nil {
		passengers = []map[string]interface{}{}
	}
	return map[string]interface{}{
		"flightCode": code,
		"passengers": passengers,
	}
}

// ShortTimeoutConfig bounds store calls tightly for timeout tests.
func ShortTimeoutConfig() *usecase.Config {
	return &usecase.Config{OperationTimeout: 20 * time.Millisecond}
}
