// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/flight-registry/flight-passenger-service/internal/domain"
)

// LoadTestJSON loads a JSON file from the test/testdata directory.
func LoadTestJSON(t *testing.T, filename string) []byte {
	t.Helper()

	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}

	// testutil lives in test/testutil
	projectRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")
	data, err := os.ReadFile(filepath.Join(projectRoot, "test", "testdata", filename))
	if err != nil {
		t.Fatalf("Failed to load test file %s: %v", filename, err)
	}
	return data
}

// MustParseTime parses a time string in RFC3339 format.
// It fails the test if parsing fails.
func MustParseTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("Failed to parse time %s: %v", value, err)
	}
	return parsed
}

// Ptr returns a pointer to the given value.
// Useful for creating pointers to literals in tests.
func Ptr[T any](v T) *T {
	return &v
}

// Passenger builds a valid passenger with the given ID and name.
func Passenger(id int, name string) domain.Passenger {
	return domain.Passenger{
		ID:             id,
		Name:           name,
		Age:            30,
		FlightCategory: domain.CategoryNormal,
		ReservationID:  "RES" + name,
	}
}

// PassengerIDs returns the IDs of the passengers in order.
func PassengerIDs(passengers []domain.Passenger) []int {
	ids := make([]int, len(passengers))
	for i, p := range passengers {
		ids[i] = p.ID
	}
	return ids
}
