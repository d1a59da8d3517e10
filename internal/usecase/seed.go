package usecase

import (
	"context"
	"fmt"

	"github.com/flight-registry/flight-passenger-service/internal/domain"
	"github.com/flight-registry/flight-passenger-service/internal/infrastructure/logger"
)

// SampleFlights returns the demo data loaded into an empty store.
func SampleFlights() []domain.Flight {
	return []domain.Flight{
		domain.NewFlight("LAN123", []domain.Passenger{
			{
				ID:                139577,
				Name:              "Martín Alvarez",
				HasConnections:    false,
				Age:               2,
				FlightCategory:    domain.CategoryGold,
				ReservationID:     "8ZC5KYVK",
				HasCheckedBaggage: false,
			},
			{
				ID:                530874,
				Name:              "Jorge Hernández",
				HasConnections:    false,
				Age:               16,
				FlightCategory:    domain.CategoryBlack,
				ReservationID:     "O2DQ3SZS",
				HasCheckedBaggage: false,
			},
		}),
		domain.NewFlight("SKY123", []domain.Passenger{
			{
				ID:                426098,
				Name:              "Pedro Ruiz",
				HasConnections:    false,
				Age:               33,
				FlightCategory:    domain.CategoryBlack,
				ReservationID:     "KSXXOALO",
				HasCheckedBaggage: true,
			},
		}),
	}
}

// SeedSampleData inserts SampleFlights when the store holds no flights.
// It returns the number of flights inserted (0 when the store already had data).
// Intended to be called once during bootstrap.
func SeedSampleData(ctx context.Context, repo domain.FlightRepository, log *logger.Logger) (int, error) {
	if log == nil {
		log = logger.Nop()
	}

	count, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count flights: %w", err)
	}
	if count > 0 {
		log.Debug().Int64("flights", count).Msg("Store already has data, skipping seed")
		return 0, nil
	}

	samples := SampleFlights()
	if err := repo.InsertMany(ctx, samples); err != nil {
		return 0, fmt.Errorf("insert sample flights: %w", err)
	}

	log.Info().Int("flights", len(samples)).Msg("Sample data inserted")
	return len(samples), nil
}
