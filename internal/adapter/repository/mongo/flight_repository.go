package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/flight-registry/flight-passenger-service/internal/domain"
	"github.com/flight-registry/flight-passenger-service/internal/infrastructure/timeutil"
)

type flightRepository struct {
	store *Store
}

// documentProjection hides the Mongo-generated _id from decoded flights.
var documentProjection = bson.M{"_id": 0}

func (r *flightRepository) now() time.Time {
	return timeutil.StoredTime(r.store.clock.Now())
}

func (r *flightRepository) FindAll(ctx context.Context) ([]domain.Flight, error) {
	return r.Find(ctx, domain.FlightCriteria{})
}

func (r *flightRepository) FindByCode(ctx context.Context, code string) (*domain.Flight, error) {
	coll, err := r.store.coll()
	if err != nil {
		return nil, err
	}

	var flight domain.Flight
	err = coll.FindOne(ctx, byCode(code), options.FindOne().SetProjection(documentProjection)).Decode(&flight)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.FlightNotFound(code)
	}
	if err != nil {
		return nil, fmt.Errorf("find flight %s: %w", code, err)
	}
	return normalize(&flight), nil
}

func (r *flightRepository) Find(ctx context.Context, criteria domain.FlightCriteria) ([]domain.Flight, error) {
	coll, err := r.store.coll()
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetProjection(documentProjection).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := coll.Find(ctx, criteriaFilter(criteria), opts)
	if err != nil {
		return nil, fmt.Errorf("find flights: %w", err)
	}

	flights := []domain.Flight{}
	if err := cursor.All(ctx, &flights); err != nil {
		return nil, fmt.Errorf("decode flights: %w", err)
	}
	for i := range flights {
		normalize(&flights[i])
	}
	return flights, nil
}

func (r *flightRepository) Exists(ctx context.Context, code string) (bool, error) {
	coll, err := r.store.coll()
	if err != nil {
		return false, err
	}

	n, err := coll.CountDocuments(ctx, byCode(code), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check flight %s: %w", code, err)
	}
	return n > 0, nil
}

func (r *flightRepository) Count(ctx context.Context) (int64, error) {
	coll, err := r.store.coll()
	if err != nil {
		return 0, err
	}

	n, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count flights: %w", err)
	}
	return n, nil
}

func (r *flightRepository) Insert(ctx context.Context, flight domain.Flight) (*domain.Flight, error) {
	coll, err := r.store.coll()
	if err != nil {
		return nil, err
	}

	doc := r.newDocument(flight)
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.FlightExists(flight.FlightCode)
		}
		return nil, fmt.Errorf("insert flight %s: %w", flight.FlightCode, err)
	}
	return &doc, nil
}

func (r *flightRepository) InsertMany(ctx context.Context, flights []domain.Flight) error {
	if len(flights) == 0 {
		return nil
	}
	coll, err := r.store.coll()
	if err != nil {
		return err
	}

	docs := make([]interface{}, len(flights))
	for i, f := range flights {
		docs[i] = r.newDocument(f)
	}
	if _, err := coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %v", domain.ErrFlightExists, err)
		}
		return fmt.Errorf("insert flights: %w", err)
	}
	return nil
}

func (r *flightRepository) Update(ctx context.Context, code string, patch domain.FlightPatch) (*domain.Flight, error) {
	coll, err := r.store.coll()
	if err != nil {
		return nil, err
	}

	set := flightSet(patch)
	set["updatedAt"] = r.now()

	var updated domain.Flight
	err = coll.FindOneAndUpdate(ctx, byCode(code), bson.M{"$set": set}, afterUpdate()).Decode(&updated)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, domain.FlightNotFound(code)
	case mongo.IsDuplicateKeyError(err) && patch.FlightCode != nil:
		return nil, domain.FlightExists(*patch.FlightCode)
	case err != nil:
		return nil, fmt.Errorf("update flight %s: %w", code, err)
	}
	return normalize(&updated), nil
}

func (r *flightRepository) Delete(ctx context.Context, code string) error {
	coll, err := r.store.coll()
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, byCode(code))
	if err != nil {
		return fmt.Errorf("delete flight %s: %w", code, err)
	}
	if res.DeletedCount == 0 {
		return domain.FlightNotFound(code)
	}
	return nil
}

// AddPassenger appends with $push. The filter only matches while the ID is
// free, so concurrent appends never overwrite each other or duplicate an ID.
func (r *flightRepository) AddPassenger(ctx context.Context, code string, passenger domain.Passenger) (*domain.Flight, error) {
	coll, err := r.store.coll()
	if err != nil {
		return nil, err
	}

	update := bson.M{
		"$push": bson.M{"passengers": passenger},
		"$set":  bson.M{"updatedAt": r.now()},
	}

	var updated domain.Flight
	err = coll.FindOneAndUpdate(ctx, addPassengerFilter(code, passenger.ID), update, afterUpdate()).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, err := r.FindByCode(ctx, code); err != nil {
			return nil, err
		}
		return nil, domain.PassengerExists(code, passenger.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("add passenger to %s: %w", code, err)
	}
	return normalize(&updated), nil
}

// UpdatePassenger merges the patch in place through an array filter.
func (r *flightRepository) UpdatePassenger(ctx context.Context, code string, passengerID int, patch domain.PassengerPatch) (*domain.Flight, error) {
	coll, err := r.store.coll()
	if err != nil {
		return nil, err
	}

	set := passengerSet(patch)
	set["updatedAt"] = r.now()

	var updated domain.Flight
	err = coll.FindOneAndUpdate(ctx, updatePassengerFilter(code, passengerID, patch), bson.M{"$set": set},
		updatePassengerOptions(passengerID, patch)).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, r.explainPassengerMiss(ctx, code, passengerID, patch)
	}
	if err != nil {
		return nil, fmt.Errorf("update passenger %d in %s: %w", passengerID, code, err)
	}
	return normalize(&updated), nil
}

// RemovePassenger removes the passenger with $pull.
func (r *flightRepository) RemovePassenger(ctx context.Context, code string, passengerID int) (*domain.Flight, error) {
	coll, err := r.store.coll()
	if err != nil {
		return nil, err
	}

	filter := bson.M{"flightCode": code, "passengers.id": passengerID}
	update := bson.M{
		"$pull": bson.M{"passengers": bson.M{"id": passengerID}},
		"$set":  bson.M{"updatedAt": r.now()},
	}

	var updated domain.Flight
	err = coll.FindOneAndUpdate(ctx, filter, update, afterUpdate()).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, r.explainPassengerMiss(ctx, code, passengerID, domain.PassengerPatch{})
	}
	if err != nil {
		return nil, fmt.Errorf("remove passenger %d from %s: %w", passengerID, code, err)
	}
	return normalize(&updated), nil
}

// explainPassengerMiss turns a conditional update that matched nothing into
// the domain error describing why.
func (r *flightRepository) explainPassengerMiss(ctx context.Context, code string, passengerID int, patch domain.PassengerPatch) error {
	flight, err := r.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	if !flight.HasPassenger(passengerID) {
		return domain.PassengerNotFound(code, passengerID)
	}
	if patch.ChangesID(passengerID) {
		return domain.PassengerExists(code, *patch.ID)
	}
	// The passenger was present on re-read, so a concurrent writer changed the
	// flight between the update and the lookup.
	return fmt.Errorf("update passenger %d in %s: document changed concurrently", passengerID, code)
}

// newDocument stamps a new flight with creation times and a non-nil passenger list.
func (r *flightRepository) newDocument(flight domain.Flight) domain.Flight {
	now := timeutil.StoredTime(r.store.clock.Now())
	doc := domain.NewFlight(flight.FlightCode, flight.Passengers)
	doc.CreatedAt, doc.UpdatedAt = now, now
	return doc
}

func afterUpdate() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(documentProjection)
}

// normalize replaces a decoded null passenger list with an empty one and
// reports stored times in UTC.
func normalize(f *domain.Flight) *domain.Flight {
	if f.Passengers == nil {
		f.Passengers = []domain.Passenger{}
	}
	f.CreatedAt = f.CreatedAt.UTC()
	f.UpdatedAt = f.UpdatedAt.UTC()
	return f
}

var _ domain.FlightRepository = (*flightRepository)(nil)

// updatePassengerOptions binds the passenger array filter only when the
// update addresses it. The server rejects unused array filter identifiers,
// so an empty patch only touches updatedAt.
func updatePassengerOptions(passengerID int, patch domain.PassengerPatch) *options.FindOneAndUpdateOptions {
	opts := afterUpdate()
	if patch.IsEmpty() {
		return opts
	}
	return opts.SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{passengerArrayFilter(passengerID)},
	})
}
