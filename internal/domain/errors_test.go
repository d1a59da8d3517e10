package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCategories(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantNotFound bool
		wantConflict bool
		wantContains []string
	}{
		{
			name:         "flight not found",
			err:          FlightNotFound("DOES_NOT_EXIST"),
			wantNotFound: true,
			wantContains: []string{"flight not found", "DOES_NOT_EXIST"},
		},
		{
			name:         "passenger not found",
			err:          PassengerNotFound("LAN123", 7),
			wantNotFound: true,
			wantContains: []string{"passenger not found", "ID 7", "LAN123"},
		},
		{
			name:         "flight exists",
			err:          FlightExists("LAN123"),
			wantConflict: true,
			wantContains: []string{"flight already exists", "LAN123"},
		},
		{
			name:         "passenger exists",
			err:          PassengerExists("LAN123", 1),
			wantConflict: true,
			wantContains: []string{"passenger already exists", "ID 1", "LAN123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantNotFound, IsNotFound(tt.err))
			assert.Equal(t, tt.wantConflict, IsConflict(tt.err))
			assert.False(t, errors.Is(tt.err, ErrInvalidRequest))
			for _, want := range tt.wantContains {
				assert.Contains(t, tt.err.Error(), want)
			}
		})
	}
}

func TestSpecificErrorsWrapCategories(t *testing.T) {
	assert.True(t, errors.Is(ErrFlightNotFound, ErrNotFound))
	assert.True(t, errors.Is(ErrPassengerNotFound, ErrNotFound))
	assert.True(t, errors.Is(ErrFlightExists, ErrConflict))
	assert.True(t, errors.Is(ErrPassengerExists, ErrConflict))

	assert.False(t, errors.Is(ErrFlightNotFound, ErrPassengerNotFound))
	assert.False(t, errors.Is(ErrFlightExists, ErrPassengerExists))
}

func TestInvalidCategory(t *testing.T) {
	err := InvalidCategory("Silver")
	assert.True(t, errors.Is(err, ErrInvalidRequest))
	assert.Equal(t, `invalid request: flightCategory must be one of: Black, Platinum, Gold, Normal; got "Silver"`, err.Error())
}
