package dynamodb

import (
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"

	"github.com/flight-registry/flight-passenger-service/internal/domain"
)

const (
	attrFlightCode = "flightCode"
	attrVersion    = "version"
)

// flightItem is the stored shape of a flight. Version guards every write and
// Seq records creation order, which a table scan does not preserve.
type flightItem struct {
	FlightCode string             `dynamodbav:"flightCode"`
	Passengers []domain.Passenger `dynamodbav:"passengers"`
	CreatedAt  time.Time          `dynamodbav:"createdAt"`
	UpdatedAt  time.Time          `dynamodbav:"updatedAt"`
	Seq        int64              `dynamodbav:"seq"`
	Version    int64              `dynamodbav:"version"`
}

func newItem(f domain.Flight, now time.Time, seq int64) flightItem {
	f = domain.NewFlight(f.FlightCode, f.Passengers)
	return flightItem{
		FlightCode: f.FlightCode,
		Passengers: f.Passengers,
		CreatedAt:  now,
		UpdatedAt:  now,
		Seq:        seq,
		Version:    1,
	}
}

// flight returns the domain view of the item.
func (it flightItem) flight() domain.Flight {
	passengers := it.Passengers
	if passengers == nil {
		passengers = []domain.Passenger{}
	}
	return domain.Flight{
		FlightCode: it.FlightCode,
		Passengers: passengers,
		CreatedAt:  it.CreatedAt.UTC(),
		UpdatedAt:  it.UpdatedAt.UTC(),
	}
}

// withFlight returns the next version of the item carrying f's fields.
func (it flightItem) withFlight(f domain.Flight, now time.Time) flightItem {
	next := it
	next.FlightCode = f.FlightCode
	next.Passengers = f.Passengers
	next.UpdatedAt = now
	next.Version = it.Version + 1
	return next
}

func marshalItem(it flightItem) (map[string]*dynamodb.AttributeValue, error) {
	av, err := dynamodbattribute.MarshalMap(it)
	if err != nil {
		return nil, fmt.Errorf("marshal flight %s: %w", it.FlightCode, err)
	}
	return av, nil
}

func unmarshalItem(av map[string]*dynamodb.AttributeValue) (flightItem, error) {
	var it flightItem
	if err := dynamodbattribute.UnmarshalMap(av, &it); err != nil {
		return flightItem{}, fmt.Errorf("unmarshal flight: %w", err)
	}
	return it, nil
}

// sortBySeq restores creation order after a scan.
func sortBySeq(items []flightItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Seq < items[j].Seq
	})
}
