package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlightCriteria_IsEmpty(t *testing.T) {
	assert.True(t, FlightCriteria{}.IsEmpty())
	assert.False(t, FlightCriteria{FlightCode: "LAN123"}.IsEmpty())
	assert.False(t, FlightCriteria{HasConnections: boolPtr(false)}.IsEmpty())
}

func TestFlightCriteria_MatchesFlight(t *testing.T) {
	f := testFlight()

	tests := []struct {
		name     string
		criteria FlightCriteria
		want     bool
	}{
		{name: "empty criteria match", criteria: FlightCriteria{}, want: true},
		{name: "code match", criteria: FlightCriteria{FlightCode: "LAN123"}, want: true},
		{name: "code mismatch", criteria: FlightCriteria{FlightCode: "SKY123"}, want: false},
		{name: "reservation held by a passenger", criteria: FlightCriteria{ReservationID: "DEF456"}, want: true},
		{name: "unknown reservation", criteria: FlightCriteria{ReservationID: "ZZZ"}, want: false},
		{name: "category present", criteria: FlightCriteria{FlightCategory: CategoryBlack}, want: true},
		{name: "category absent", criteria: FlightCriteria{FlightCategory: CategoryPlatinum}, want: false},
		{name: "someone has connections", criteria: FlightCriteria{HasConnections: boolPtr(true)}, want: true},
		{name: "someone has no checked baggage", criteria: FlightCriteria{HasCheckedBaggage: boolPtr(false)}, want: true},
		{
			// Gold is Ana, connections=true is Carla: different passengers satisfy different fields.
			name:     "fields satisfied by different passengers",
			criteria: FlightCriteria{FlightCategory: CategoryGold, HasConnections: boolPtr(true)},
			want:     true,
		},
		{
			name:     "one failing field rejects the flight",
			criteria: FlightCriteria{FlightCode: "LAN123", ReservationID: "NOPE"},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.criteria.MatchesFlight(f))
		})
	}
}

func TestFlightCriteria_MatchesEmptyFlight(t *testing.T) {
	f := NewFlight("EMPTY1", nil)
	assert.True(t, FlightCriteria{FlightCode: "EMPTY1"}.MatchesFlight(f))
	assert.False(t, FlightCriteria{HasConnections: boolPtr(false)}.MatchesFlight(f),
		"passenger-level criteria need at least one passenger")
}

func TestFlightCriteria_Validate(t *testing.T) {
	assert.NoError(t, FlightCriteria{FlightCategory: CategoryGold}.Validate())
	err := FlightCriteria{FlightCategory: "Bronze"}.Validate()
	assert.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestPassengerCriteria_Matches(t *testing.T) {
	p := Passenger{
		ID:                530874,
		Name:              "Jorge Hernández",
		Age:               16,
		FlightCategory:    CategoryBlack,
		ReservationID:     "O2DQ3SZS",
		HasConnections:    false,
		HasCheckedBaggage: false,
	}

	tests := []struct {
		name     string
		criteria PassengerCriteria
		want     bool
	}{
		{name: "no criteria", criteria: PassengerCriteria{}, want: true},
		{name: "id match", criteria: PassengerCriteria{ID: intPtr(530874)}, want: true},
		{name: "id mismatch", criteria: PassengerCriteria{ID: intPtr(1)}, want: false},
		{name: "name substring ignoring case", criteria: PassengerCriteria{Name: "jorge"}, want: true},
		{name: "name substring in the middle", criteria: PassengerCriteria{Name: "HERN"}, want: true},
		{name: "name mismatch", criteria: PassengerCriteria{Name: "pedro"}, want: false},
		{name: "reservation match", criteria: PassengerCriteria{ReservationID: "O2DQ3SZS"}, want: true},
		{name: "reservation is exact", criteria: PassengerCriteria{ReservationID: "o2dq3szs"}, want: false},
		{name: "category match", criteria: PassengerCriteria{FlightCategory: CategoryBlack}, want: true},
		{name: "category mismatch", criteria: PassengerCriteria{FlightCategory: CategoryGold}, want: false},
		{name: "connections flag", criteria: PassengerCriteria{HasConnections: boolPtr(false)}, want: true},
		{name: "baggage flag mismatch", criteria: PassengerCriteria{HasCheckedBaggage: boolPtr(true)}, want: false},
		{name: "age inside range", criteria: PassengerCriteria{MinAge: intPtr(10), MaxAge: intPtr(20)}, want: true},
		{name: "min age is inclusive", criteria: PassengerCriteria{MinAge: intPtr(16)}, want: true},
		{name: "max age is inclusive", criteria: PassengerCriteria{MaxAge: intPtr(16)}, want: true},
		{name: "below min age", criteria: PassengerCriteria{MinAge: intPtr(17)}, want: false},
		{name: "above max age", criteria: PassengerCriteria{MaxAge: intPtr(15)}, want: false},
		{
			name:     "all criteria must hold",
			criteria: PassengerCriteria{Name: "jorge", FlightCategory: CategoryGold},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.criteria.Matches(p))
		})
	}
}

func TestPassengerCriteria_Validate(t *testing.T) {
	tests := []struct {
		name     string
		criteria PassengerCriteria
		wantErr  bool
	}{
		{name: "empty", criteria: PassengerCriteria{}},
		{name: "valid range", criteria: PassengerCriteria{MinAge: intPtr(10), MaxAge: intPtr(20)}},
		{name: "equal bounds", criteria: PassengerCriteria{MinAge: intPtr(10), MaxAge: intPtr(10)}},
		{name: "inverted range", criteria: PassengerCriteria{MinAge: intPtr(30), MaxAge: intPtr(20)}, wantErr: true},
		{name: "unknown category", criteria: PassengerCriteria{FlightCategory: "Silver"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.criteria.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidRequest))
				return
			}
			assert.NoError(t, err)
		})
	}
}
