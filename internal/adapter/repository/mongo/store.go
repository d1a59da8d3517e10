// Package mongo stores flights as MongoDB documents, one document per flight
// with its passengers embedded in insertion order.
package mongo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/flight-registry/flight-passenger-service/internal/domain"
	"github.com/flight-registry/flight-passenger-service/internal/infrastructure/logger"
	"github.com/flight-registry/flight-passenger-service/internal/infrastructure/timeutil"
)

// flightCodeIndex enforces one document per flight code.
const flightCodeIndex = "flightCode_unique"

// Config contains connection settings for the MongoDB store.
type Config struct {
	URI        string
	Database   string
	Collection string

	// ConnectTimeout bounds server selection during Connect. Zero means 10s.
	ConnectTimeout time.Duration

	Clock  timeutil.Clock
	Logger *logger.Logger
}

// Store is a MongoDB-backed domain.Store.
type Store struct {
	cfg   Config
	clock timeutil.Clock
	log   *logger.Logger

	mu         sync.RWMutex
	client     *mongo.Client
	collection *mongo.Collection

	repo *flightRepository
}

// New creates a disconnected store. Call Connect before use.
func New(cfg Config) *Store {
	if cfg.Clock == nil {
		cfg.Clock = timeutil.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}

	s := &Store{
		cfg:   cfg,
		clock: cfg.Clock,
		log:   cfg.Logger.WithStore("mongo"),
	}
	s.repo = &flightRepository{store: s}
	return s
}

// Connect dials MongoDB, verifies the connection and ensures the unique
// flight code index. Calling Connect on a connected store is a no-op.
func (s *Store) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return nil
	}

	opts := options.Client().
		ApplyURI(s.cfg.URI).
		SetServerSelectionTimeout(s.cfg.ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("ping mongodb: %w", err)
	}

	collection := client.Database(s.cfg.Database).Collection(s.cfg.Collection)
	if err := ensureIndexes(ctx, collection); err != nil {
		_ = client.Disconnect(context.Background())
		return err
	}

	s.client = client
	s.collection = collection
	s.log.Info().
		Str("database", s.cfg.Database).
		Str("collection", s.cfg.Collection).
		Msg("Connected to MongoDB")
	return nil
}

// Disconnect closes the client. Calling it on a disconnected store is a no-op.
func (s *Store) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return nil
	}
	err := s.client.Disconnect(ctx)
	s.client = nil
	s.collection = nil
	if err != nil {
		return fmt.Errorf("disconnect from mongodb: %w", err)
	}

	s.log.Info().Msg("Disconnected from MongoDB")
	return nil
}

// Flights returns the flight repository backed by this store.
func (s *Store) Flights() domain.FlightRepository {
	return s.repo
}

// coll returns the live collection or ErrStoreNotConnected.
func (s *Store) coll() (*mongo.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.collection == nil {
		return nil, domain.ErrStoreNotConnected
	}
	return s.collection, nil
}

func ensureIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "flightCode", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(flightCodeIndex),
	})
	if err != nil {
		return fmt.Errorf("ensure flightCode index: %w", err)
	}
	return nil
}

var _ domain.Store = (*Store)(nil)
