// Package dynamodb stores flights as DynamoDB items keyed by flight code.
//
// DynamoDB has no array operators that can append conditionally or patch a
// list element by an inner field, so passenger mutations are read-modify-write
// cycles guarded by a per-item version number and retried on conflict.
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"

	"github.com/flight-registry/flight-passenger-service/internal/domain"
	"github.com/flight-registry/flight-passenger-service/internal/infrastructure/logger"
	"github.com/flight-registry/flight-passenger-service/internal/infrastructure/retry"
	"github.com/flight-registry/flight-passenger-service/internal/infrastructure/timeutil"
)

// Config contains settings for the DynamoDB store.
type Config struct {
	Table    string
	Region   string
	Endpoint string

	// Client overrides the client built from Region and Endpoint.
	Client dynamodbiface.DynamoDBAPI

	// Retry controls how version conflicts are retried.
	// Zero value uses retry.OptimisticLockConfig.
	Retry retry.Config

	Clock  timeutil.Clock
	Logger *logger.Logger
}

// Store is a DynamoDB-backed domain.Store.
type Store struct {
	cfg   Config
	clock timeutil.Clock
	log   *logger.Logger

	mu     sync.RWMutex
	client dynamodbiface.DynamoDBAPI

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
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = retry.OptimisticLockConfig
	}

	s := &Store{
		cfg:   cfg,
		clock: cfg.Clock,
		log:   cfg.Logger.WithStore("dynamodb").WithContext("table", cfg.Table),
	}
	s.repo = &flightRepository{store: s}
	return s
}

// Connect builds the client and creates the table when it does not exist.
// Calling Connect on a connected store is a no-op.
func (s *Store) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return nil
	}

	client := s.cfg.Client
	if client == nil {
		awsCfg := aws.NewConfig().WithRegion(s.cfg.Region)
		if s.cfg.Endpoint != "" {
			awsCfg = awsCfg.WithEndpoint(s.cfg.Endpoint)
		}
		sess, err := session.NewSession(awsCfg)
		if err != nil {
			return fmt.Errorf("create aws session: %w", err)
		}
		client = dynamodb.New(sess)
	}

	if err := s.ensureTable(ctx, client); err != nil {
		return err
	}

	s.client = client
	s.log.Info().Str("endpoint", s.cfg.Endpoint).Msg("Connected to DynamoDB")
	return nil
}

// Disconnect releases the client. The SDK keeps no persistent connection to
// close, so this only flips the store back to its unusable state.
func (s *Store) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return nil
	}
	s.client = nil
	s.log.Info().Msg("Disconnected from DynamoDB")
	return nil
}

// Flights returns the flight repository backed by this store.
func (s *Store) Flights() domain.FlightRepository {
	return s.repo
}

// db returns the live client or ErrStoreNotConnected.
func (s *Store) db() (dynamodbiface.DynamoDBAPI, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.client == nil {
		return nil, domain.ErrStoreNotConnected
	}
	return s.client, nil
}

func (s *Store) ensureTable(ctx context.Context, client dynamodbiface.DynamoDBAPI) error {
	_, err := client.DescribeTableWithContext(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.cfg.Table),
	})
	if err == nil {
		return nil
	}
	if !hasCode(err, dynamodb.ErrCodeResourceNotFoundException) {
		return fmt.Errorf("describe table %s: %w", s.cfg.Table, err)
	}

	_, err = client.CreateTableWithContext(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(s.cfg.Table),
		AttributeDefinitions: []*dynamodb.AttributeDefinition{
			{
				AttributeName: aws.String(attrFlightCode),
				AttributeType: aws.String(dynamodb.ScalarAttributeTypeS),
			},
		},
		KeySchema: []*dynamodb.KeySchemaElement{
			{
				AttributeName: aws.String(attrFlightCode),
				KeyType:       aws.String(dynamodb.KeyTypeHash),
			},
		},
		BillingMode: aws.String(dynamodb.BillingModePayPerRequest),
	})
	if err != nil && !hasCode(err, dynamodb.ErrCodeResourceInUseException) {
		return fmt.Errorf("create table %s: %w", s.cfg.Table, err)
	}

	s.log.Info().Msg("Created flights table")
	return client.WaitUntilTableExistsWithContext(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.cfg.Table),
	})
}

// hasCode reports whether err is an AWS error with the given code.
func hasCode(err error, code string) bool {
	var aerr awserr.Error
	return errors.As(err, &aerr) && aerr.Code() == code
}

var _ domain.Store = (*Store)(nil)
