package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/flight-registry/flight-passenger-service/internal/domain"
)

func TestMustParseTime(t *testing.T) {
	got := MustParseTime(t, "2025-12-15T06:00:00+07:00")

	assert.Equal(t, time.Date(2025, 12, 14, 23, 0, 0, 0, time.UTC), got.UTC())
}

func TestPtr(t *testing.T) {
	s := Ptr("LAN123")
	n := Ptr(42)
	b := Ptr(false)

	assert.Equal(t, "LAN123", *s)
	assert.Equal(t, 42, *n)
	assert.False(t, *b)
}

func TestPassenger(t *testing.T) {
	p := Passenger(7, "Ana")

	assert.Equal(t, 7, p.ID)
	assert.Equal(t, "Ana", p.Name)
	assert.True(t, p.FlightCategory.IsValid())
	assert.NotEmpty(t, p.ReservationID)
}

func TestPassengerIDs(t *testing.T) {
	assert.Equal(t, []int{3, 1}, PassengerIDs([]domain.Passenger{Passenger(3, "a"), Passenger(1, "b")}))
	assert.Empty(t, PassengerIDs(nil))
}

func TestLoadTestJSON(t *testing.T) {
	data := LoadTestJSON(t, "create_flight.json")
	assert.Contains(t, string(data), "flightCode")
}
