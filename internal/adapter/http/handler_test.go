package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-registry/flight-passenger-service/internal/adapter/http/response"
	"github.com/flight-registry/flight-passenger-service/internal/domain"
	"github.com/flight-registry/flight-passenger-service/internal/infrastructure/timeutil"
	"github.com/flight-registry/flight-passenger-service/internal/usecase"
)

// stubService implements usecase.FlightService with per-method hooks.
// Calling a method whose hook is nil fails the test through the nil embedded interface.
type stubService struct {
	usecase.FlightService

	searchFlights    func(ctx context.Context, criteria domain.FlightCriteria) ([]domain.Flight, error)
	getFlight        func(ctx context.Context, code string) (*domain.Flight, error)
	createFlight     func(ctx context.Context, flight domain.Flight) (*domain.Flight, error)
	updateFlight     func(ctx context.Context, code string, patch domain.FlightPatch) (*domain.Flight, error)
	deleteFlight     func(ctx context.Context, code string) error
	listPassengers   func(ctx context.Context, code string) ([]domain.Passenger, error)
	addPassenger     func(ctx context.Context, code string, p domain.Passenger) (*domain.Flight, error)
	updatePassenger  func(ctx context.Context, code string, id int, patch domain.PassengerPatch) (*domain.Flight, error)
	removePassenger  func(ctx context.Context, code string, id int) (*domain.Flight, error)
	searchPassengers func(ctx context.Context, criteria domain.PassengerCriteria) ([]domain.Passenger, error)
}

func (s *stubService) SearchFlights(ctx context.Context, c domain.FlightCriteria) ([]domain.Flight, error) {
	return s.searchFlights(ctx, c)
}

func (s *stubService) GetFlight(ctx context.Context, code string) (*domain.Flight, error) {
	return s.getFlight(ctx, code)
}

func (s *stubService) CreateFlight(ctx context.Context, f domain.Flight) (*domain.Flight, error) {
	return s.createFlight(ctx, f)
}

func (s *stubService) UpdateFlight(ctx context.Context, code string, p domain.FlightPatch) (*domain.Flight, error) {
	return s.updateFlight(ctx, code, p)
}

func (s *stubService) DeleteFlight(ctx context.Context, code string) error {
	return s.deleteFlight(ctx, code)
}

func (s *stubService) ListPassengers(ctx context.Context, code string) ([]domain.Passenger, error) {
	return s.listPassengers(ctx, code)
}

func (s *stubService) AddPassenger(ctx context.Context, code string, p domain.Passenger) (*domain.Flight, error) {
	return s.addPassenger(ctx, code, p)
}

func (s *stubService) UpdatePassenger(ctx context.Context, code string, id int, p domain.PassengerPatch) (*domain.Flight, error) {
	return s.updatePassenger(ctx, code, id, p)
}

func (s *stubService) RemovePassenger(ctx context.Context, code string, id int) (*domain.Flight, error) {
	return s.removePassenger(ctx, code, id)
}

func (s *stubService) SearchPassengers(ctx context.Context, c domain.PassengerCriteria) ([]domain.Passenger, error) {
	return s.searchPassengers(ctx, c)
}

// envelope is the decoded form of both success and error responses.
type envelope struct {
	Success   bool                  `json:"success"`
	Data      json.RawMessage       `json:"data"`
	Message   string                `json:"message"`
	Error     *response.ErrorDetail `json:"error"`
	Timestamp string                `json:"timestamp"`
}

// setupTestHandler creates a test Echo instance routed to a FlightHandler.
func setupTestHandler(t *testing.T, svc usecase.FlightService) *echo.Echo {
	t.Helper()
	t.Cleanup(response.SetClock(timeutil.NewMockClockFromString("2025-05-01T10:00:00Z")))

	e := echo.New()
	RegisterRoutes(e, NewFlightHandler(svc, nil))
	return e
}

// makeRequest is a helper to make test requests with a raw JSON body.
func makeRequest(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	assert.Equal(t, "2025-05-01T10:00:00Z", env.Timestamp)
	return rec, env
}

func sampleFlight() *domain.Flight {
	f := domain.NewFlight("LAN123", []domain.Passenger{{
		ID: 1, Name: "Ana", Age: 30, FlightCategory: domain.CategoryGold,
		ReservationID: "ABC123", HasCheckedBaggage: true,
	}})
	return &f
}

const validCreateBody = `{
	"flightCode": "LAN123",
	"passengers": [{"id": 1, "name": "Ana", "age": 30, "hasConnections": false,
		"hasCheckedBaggage": true, "reservationId": "ABC123", "flightCategory": "Gold"}]
}`

func TestHealth(t *testing.T) {
	e := setupTestHandler(t, &stubService{})

	rec, env := makeRequest(t, e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Message)
}

func TestListFlights(t *testing.T) {
	var got domain.FlightCriteria
	svc := &stubService{
		searchFlights: func(_ context.Context, c domain.FlightCriteria) ([]domain.Flight, error) {
			got = c
			return []domain.Flight{*sampleFlight()}, nil
		},
	}
	e := setupTestHandler(t, svc)

	rec, env := makeRequest(t, e, http.MethodGet,
		"/api/flights?flightCategory=Gold&hasConnections=false&hasCheckedBaggage=maybe&reservationId=ABC123", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	assert.Equal(t, domain.CategoryGold, got.FlightCategory)
	assert.Equal(t, "ABC123", got.ReservationID)
	require.NotNil(t, got.HasConnections)
	assert.False(t, *got.HasConnections)
	assert.Nil(t, got.HasCheckedBaggage, "unrecognized boolean is ignored")

	var flights []domain.Flight
	require.NoError(t, json.Unmarshal(env.Data, &flights))
	require.Len(t, flights, 1)
	assert.Equal(t, "LAN123", flights[0].FlightCode)
}

func TestListFlights_EmptyIsArray(t *testing.T) {
	svc := &stubService{
		searchFlights: func(context.Context, domain.FlightCriteria) ([]domain.Flight, error) {
			return []domain.Flight{}, nil
		},
	}
	e := setupTestHandler(t, svc)

	_, env := makeRequest(t, e, http.MethodGet, "/api/flights", "")
	assert.Equal(t, "[]", string(env.Data))
}

func TestListFlights_InvalidCategory(t *testing.T) {
	e := setupTestHandler(t, &stubService{})

	rec, env := makeRequest(t, e, http.MethodGet, "/api/flights?flightCategory=Silver", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.CodeValidationError, env.Error.Code)
	assert.Contains(t, env.Error.Details, "flightCategory")
}

func TestGetFlight_NotFound(t *testing.T) {
	svc := &stubService{
		getFlight: func(_ context.Context, code string) (*domain.Flight, error) {
			return nil, domain.FlightNotFound(code)
		},
	}
	e := setupTestHandler(t, svc)

	rec, env := makeRequest(t, e, http.MethodGet, "/api/flights/DOES_NOT_EXIST", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.CodeNotFound, env.Error.Code)
	assert.Contains(t, env.Error.Message, "DOES_NOT_EXIST")
}

func TestCreateFlight(t *testing.T) {
	var got domain.Flight
	svc := &stubService{
		createFlight: func(_ context.Context, f domain.Flight) (*domain.Flight, error) {
			got = f
			return &f, nil
		},
	}
	e := setupTestHandler(t, svc)

	rec, env := makeRequest(t, e, http.MethodPost, "/api/flights", validCreateBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Flight created successfully", env.Message)

	assert.Equal(t, "LAN123", got.FlightCode)
	require.Len(t, got.Passengers, 1)
	assert.Equal(t, sampleFlight().Passengers[0], got.Passengers[0])
}

func TestCreateFlight_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCode  string
		wantField string
	}{
		{name: "empty body", body: "", wantCode: response.CodeInvalidRequest},
		{name: "not json", body: "{flightCode:", wantCode: response.CodeInvalidRequest},
		{name: "missing flightCode", body: `{"passengers": []}`, wantCode: response.CodeValidationError, wantField: "flightCode"},
		{name: "missing passengers", body: `{"flightCode": "X1"}`, wantCode: response.CodeValidationError, wantField: "passengers"},
		{name: "flightCode wrong type", body: `{"flightCode": 5, "passengers": []}`, wantCode: response.CodeValidationError, wantField: "flightCode"},
		{
			name:      "unknown category",
			body:      `{"flightCode": "X1", "passengers": [{"id": 1, "name": "A", "reservationId": "R", "flightCategory": "Silver"}]}`,
			wantCode:  response.CodeValidationError,
			wantField: "passengers.0.flightCategory",
		},
		{
			name:      "missing passenger name",
			body:      `{"flightCode": "X1", "passengers": [{"id": 1, "reservationId": "R", "flightCategory": "Gold"}]}`,
			wantCode:  response.CodeValidationError,
			wantField: "passengers.0.name",
		},
		{
			name:      "negative age",
			body:      `{"flightCode": "X1", "passengers": [{"id": 1, "name": "A", "age": -1, "reservationId": "R", "flightCategory": "Gold"}]}`,
			wantCode:  response.CodeValidationError,
			wantField: "passengers.0.age",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := setupTestHandler(t, &stubService{})

			rec, env := makeRequest(t, e, http.MethodPost, "/api/flights", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			if tt.wantField != "" {
				assert.Contains(t, env.Error.Details, tt.wantField)
			}
		})
	}
}

func TestCreateFlight_Conflict(t *testing.T) {
	svc := &stubService{
		createFlight: func(_ context.Context, f domain.Flight) (*domain.Flight, error) {
			return nil, domain.FlightExists(f.FlightCode)
		},
	}
	e := setupTestHandler(t, svc)

	rec, env := makeRequest(t, e, http.MethodPost, "/api/flights", validCreateBody)
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.CodeConflict, env.Error.Code)
	assert.Contains(t, env.Error.Message, "LAN123")
}

func TestUpdateFlight_BuildsPatch(t *testing.T) {
	var got domain.FlightPatch
	svc := &stubService{
		updateFlight: func(_ context.Context, code string, p domain.FlightPatch) (*domain.Flight, error) {
			assert.Equal(t, "LAN123", code)
			got = p
			return sampleFlight(), nil
		},
	}
	e := setupTestHandler(t, svc)

	rec, _ := makeRequest(t, e, http.MethodPut, "/api/flights/LAN123", `{"flightCode": "LAN999"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.FlightCode)
	assert.Equal(t, "LAN999", *got.FlightCode)
	assert.Nil(t, got.Passengers, "omitted passengers are left unchanged")
}

func TestUpdateFlight_RejectsBadPassengerCategory(t *testing.T) {
	e := setupTestHandler(t, &stubService{})

	rec, env := makeRequest(t, e, http.MethodPut, "/api/flights/LAN123",
		`{"passengers": [{"id": 1, "name": "A", "reservationId": "R", "flightCategory": "gold"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Error.Details, "passengers.0.flightCategory")
}

func TestDeleteFlight(t *testing.T) {
	svc := &stubService{
		deleteFlight: func(context.Context, string) error { return nil },
	}
	e := setupTestHandler(t, svc)

	rec, env := makeRequest(t, e, http.MethodDelete, "/api/flights/LAN123", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "null", string(env.Data))
}

func TestListPassengers(t *testing.T) {
	svc := &stubService{
		listPassengers: func(context.Context, string) ([]domain.Passenger, error) {
			return sampleFlight().Passengers, nil
		},
	}
	e := setupTestHandler(t, svc)

	rec, env := makeRequest(t, e, http.MethodGet, "/api/flights/LAN123/passengers", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var passengers []domain.Passenger
	require.NoError(t, json.Unmarshal(env.Data, &passengers))
	assert.Len(t, passengers, 1)
}

func TestAddPassenger(t *testing.T) {
	svc := &stubService{
		addPassenger: func(_ context.Context, code string, p domain.Passenger) (*domain.Flight, error) {
			assert.Equal(t, "LAN123", code)
			assert.Equal(t, 2, p.ID)
			assert.Equal(t, domain.CategoryPlatinum, p.FlightCategory)
			return sampleFlight(), nil
		},
	}
	e := setupTestHandler(t, svc)

	rec, _ := makeRequest(t, e, http.MethodPost, "/api/flights/LAN123/passengers",
		`{"id": 2, "name": "Bea", "age": 20, "reservationId": "R2", "flightCategory": "Platinum"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAddPassenger_Duplicate(t *testing.T) {
	svc := &stubService{
		addPassenger: func(_ context.Context, code string, p domain.Passenger) (*domain.Flight, error) {
			return nil, domain.PassengerExists(code, p.ID)
		},
	}
	e := setupTestHandler(t, svc)

	rec, env := makeRequest(t, e, http.MethodPost, "/api/flights/LAN123/passengers",
		`{"id": 1, "name": "Ana", "reservationId": "ABC123", "flightCategory": "Gold"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, env.Error.Message, "ID 1")
}

func TestAddPassenger_ZeroID(t *testing.T) {
	e := setupTestHandler(t, &stubService{})

	rec, env := makeRequest(t, e, http.MethodPost, "/api/flights/LAN123/passengers",
		`{"id": 0, "name": "Ana", "reservationId": "ABC123", "flightCategory": "Gold"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Error.Details, "id")
}

func TestAddPassenger_IntegralFloatNumbers(t *testing.T) {
	svc := &stubService{
		addPassenger: func(_ context.Context, _ string, p domain.Passenger) (*domain.Flight, error) {
			assert.Equal(t, 3, p.ID)
			assert.Equal(t, 30, p.Age)
			return sampleFlight(), nil
		},
	}
	e := setupTestHandler(t, svc)

	rec, env := makeRequest(t, e, http.MethodPost, "/api/flights/LAN123/passengers",
		`{"id": 3.0, "name": "Cy", "age": 3e1, "reservationId": "R3", "flightCategory": "Normal"}`)
	assert.Equal(t, http.StatusCreated, rec.Code, "error: %+v", env.Error)
}

func TestAddPassenger_NumberOutOfRangeNamesField(t *testing.T) {
	e := setupTestHandler(t, &stubService{})

	rec, env := makeRequest(t, e, http.MethodPost, "/api/flights/LAN123/passengers",
		`{"id": 2, "name": "Cy", "age": 1e300, "reservationId": "R3", "flightCategory": "Normal"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Error.Details, "age")
}

func TestUpdatePassenger(t *testing.T) {
	svc := &stubService{
		updatePassenger: func(_ context.Context, code string, id int, p domain.PassengerPatch) (*domain.Flight, error) {
			assert.Equal(t, 7, id)
			require.NotNil(t, p.Age)
			assert.Equal(t, 41, *p.Age)
			assert.Nil(t, p.Name)
			return sampleFlight(), nil
		},
	}
	e := setupTestHandler(t, svc)

	rec, _ := makeRequest(t, e, http.MethodPut, "/api/flights/LAN123/passengers/7", `{"age": 41}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdatePassenger_NonNumericIDRejectedBeforeService(t *testing.T) {
	// A nil hook would panic if the service were reached.
	e := setupTestHandler(t, &stubService{})

	rec, env := makeRequest(t, e, http.MethodPut, "/api/flights/LAN123/passengers/abc", `{"age": 41}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Error.Details, "passengerId")
}

func TestRemovePassenger_NotFound(t *testing.T) {
	svc := &stubService{
		removePassenger: func(_ context.Context, code string, id int) (*domain.Flight, error) {
			return nil, domain.PassengerNotFound(code, id)
		},
	}
	e := setupTestHandler(t, svc)

	rec, env := makeRequest(t, e, http.MethodDelete, "/api/flights/LAN123/passengers/9", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, response.CodeNotFound, env.Error.Code)
}

func TestSearchPassengers(t *testing.T) {
	var got domain.PassengerCriteria
	svc := &stubService{
		searchPassengers: func(_ context.Context, c domain.PassengerCriteria) ([]domain.Passenger, error) {
			got = c
			return []domain.Passenger{}, nil
		},
	}
	e := setupTestHandler(t, svc)

	rec, _ := makeRequest(t, e, http.MethodGet, "/api/passengers?name=an&minAge=10&maxAge=20&hasConnections=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "an", got.Name)
	assert.Equal(t, 10, *got.MinAge)
	assert.Equal(t, 20, *got.MaxAge)
	assert.True(t, *got.HasConnections)
}

func TestSearchPassengers_InvalidQuery(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantField string
	}{
		{name: "non-integer id", query: "id=abc", wantField: "id"},
		{name: "non-integer age", query: "minAge=ten", wantField: "minAge"},
		{name: "inverted range", query: "minAge=30&maxAge=20", wantField: "minAge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := setupTestHandler(t, &stubService{})

			rec, env := makeRequest(t, e, http.MethodGet, "/api/passengers?"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, env.Error.Details, tt.wantField)
		})
	}
}

func TestHandleError_InternalHidesCause(t *testing.T) {
	svc := &stubService{
		getFlight: func(context.Context, string) (*domain.Flight, error) {
			return nil, errors.New("mongo: connection refused at 10.0.0.5")
		},
	}
	e := setupTestHandler(t, svc)

	rec, env := makeRequest(t, e, http.MethodGet, "/api/flights/LAN123", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, response.CodeInternalError, env.Error.Code)
	assert.NotContains(t, env.Error.Message, "10.0.0.5")
}

func TestHandleError_InvalidRequestFromService(t *testing.T) {
	svc := &stubService{
		searchPassengers: func(context.Context, domain.PassengerCriteria) ([]domain.Passenger, error) {
			return nil, domain.InvalidCategory("x")
		},
	}
	e := setupTestHandler(t, svc)

	rec, env := makeRequest(t, e, http.MethodGet, "/api/passengers", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, response.CodeValidationError, env.Error.Code)
}
