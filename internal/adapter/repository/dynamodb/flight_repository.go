package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"

	"github.com/flight-registry/flight-passenger-service/internal/domain"
	"github.com/flight-registry/flight-passenger-service/internal/infrastructure/retry"
	"github.com/flight-registry/flight-passenger-service/internal/infrastructure/timeutil"
)

// maxTransactItems is the DynamoDB limit on items per TransactWriteItems call.
const maxTransactItems = 25

// errVersionConflict signals that another writer updated the item first.
var errVersionConflict = errors.New("flight was modified concurrently")

type flightRepository struct {
	store   *Store
	lastSeq int64
}

func (r *flightRepository) table() *string {
	return aws.String(r.store.cfg.Table)
}

func (r *flightRepository) now() time.Time {
	return timeutil.StoredTime(r.store.clock.Now())
}

// nextSeq returns a creation sequence that grows strictly even when the
// clock stands still.
func (r *flightRepository) nextSeq(now time.Time) int64 {
	for {
		last := atomic.LoadInt64(&r.lastSeq)
		next := now.UnixNano()
		if next <= last {
			next = last + 1
		}
		if atomic.CompareAndSwapInt64(&r.lastSeq, last, next) {
			return next
		}
	}
}

func key(code string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		attrFlightCode: {S: aws.String(code)},
	}
}

// get reads the item with strong consistency.
func (r *flightRepository) get(ctx context.Context, db dynamodbiface.DynamoDBAPI, code string) (flightItem, error) {
	out, err := db.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName:      r.table(),
		Key:            key(code),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return flightItem{}, fmt.Errorf("get flight %s: %w", code, err)
	}
	if len(out.Item) == 0 {
		return flightItem{}, domain.FlightNotFound(code)
	}
	return unmarshalItem(out.Item)
}

// scan reads every item and returns them in creation order.
func (r *flightRepository) scan(ctx context.Context, db dynamodbiface.DynamoDBAPI) ([]flightItem, error) {
	var (
		items   []flightItem
		scanErr error
	)
	err := db.ScanPagesWithContext(ctx, &dynamodb.ScanInput{
		TableName:      r.table(),
		ConsistentRead: aws.Bool(true),
	}, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		for _, av := range page.Items {
			it, err := unmarshalItem(av)
			if err != nil {
				scanErr = err
				return false
			}
			items = append(items, it)
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("scan flights: %w", err)
	}
	if scanErr != nil {
		return nil, scanErr
	}
	sortBySeq(items)
	return items, nil
}

func (r *flightRepository) FindAll(ctx context.Context) ([]domain.Flight, error) {
	return r.Find(ctx, domain.FlightCriteria{})
}

func (r *flightRepository) FindByCode(ctx context.Context, code string) (*domain.Flight, error) {
	db, err := r.store.db()
	if err != nil {
		return nil, err
	}
	it, err := r.get(ctx, db, code)
	if err != nil {
		return nil, err
	}
	f := it.flight()
	return &f, nil
}

// Find scans the table and filters in memory; passenger fields live inside a
// list attribute that neither key conditions nor indexes can reach.
func (r *flightRepository) Find(ctx context.Context, criteria domain.FlightCriteria) ([]domain.Flight, error) {
	db, err := r.store.db()
	if err != nil {
		return nil, err
	}
	items, err := r.scan(ctx, db)
	if err != nil {
		return nil, err
	}

	flights := make([]domain.Flight, 0, len(items))
	for _, it := range items {
		if f := it.flight(); criteria.MatchesFlight(f) {
			flights = append(flights, f)
		}
	}
	return flights, nil
}

func (r *flightRepository) Exists(ctx context.Context, code string) (bool, error) {
	db, err := r.store.db()
	if err != nil {
		return false, err
	}
	out, err := db.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName:            r.table(),
		Key:                  key(code),
		ConsistentRead:       aws.Bool(true),
		ProjectionExpression: aws.String(attrFlightCode),
	})
	if err != nil {
		return false, fmt.Errorf("check flight %s: %w", code, err)
	}
	return len(out.Item) > 0, nil
}

func (r *flightRepository) Count(ctx context.Context) (int64, error) {
	db, err := r.store.db()
	if err != nil {
		return 0, err
	}
	var total int64
	err = db.ScanPagesWithContext(ctx, &dynamodb.ScanInput{
		TableName: r.table(),
		Select:    aws.String(dynamodb.SelectCount),
	}, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		total += aws.Int64Value(page.Count)
		return true
	})
	if err != nil {
		return 0, fmt.Errorf("count flights: %w", err)
	}
	return total, nil
}

func (r *flightRepository) Insert(ctx context.Context, flight domain.Flight) (*domain.Flight, error) {
	db, err := r.store.db()
	if err != nil {
		return nil, err
	}

	now := r.now()
	it := newItem(flight, now, r.nextSeq(now))
	av, err := marshalItem(it)
	if err != nil {
		return nil, err
	}

	_, err = db.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName:           r.table(),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#code)"),
		ExpressionAttributeNames: map[string]*string{
			"#code": aws.String(attrFlightCode),
		},
	})
	if hasCode(err, dynamodb.ErrCodeConditionalCheckFailedException) {
		return nil, domain.FlightExists(flight.FlightCode)
	}
	if err != nil {
		return nil, fmt.Errorf("insert flight %s: %w", flight.FlightCode, err)
	}

	f := it.flight()
	return &f, nil
}

// InsertMany writes the flights in transactions of up to maxTransactItems.
// Each transaction is all-or-nothing.
func (r *flightRepository) InsertMany(ctx context.Context, flights []domain.Flight) error {
	db, err := r.store.db()
	if err != nil {
		return err
	}

	for start := 0; start < len(flights); start += maxTransactItems {
		end := start + maxTransactItems
		if end > len(flights) {
			end = len(flights)
		}

		items := make([]*dynamodb.TransactWriteItem, 0, end-start)
		for _, f := range flights[start:end] {
			now := r.now()
			av, err := marshalItem(newItem(f, now, r.nextSeq(now)))
			if err != nil {
				return err
			}
			items = append(items, &dynamodb.TransactWriteItem{Put: r.createPut(av)})
		}

		_, err := db.TransactWriteItemsWithContext(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
		if hasCode(err, dynamodb.ErrCodeTransactionCanceledException) {
			return fmt.Errorf("%w: %v", domain.ErrFlightExists, err)
		}
		if err != nil {
			return fmt.Errorf("insert flights: %w", err)
		}
	}
	return nil
}

func (r *flightRepository) Update(ctx context.Context, code string, patch domain.FlightPatch) (*domain.Flight, error) {
	return r.withRetry(ctx, code, func(db dynamodbiface.DynamoDBAPI) (domain.Flight, error) {
		it, err := r.get(ctx, db, code)
		if err != nil {
			return domain.Flight{}, retry.NewPermanent(err)
		}

		f := it.flight()
		f.Apply(patch)
		next := it.withFlight(f, r.now())

		if f.FlightCode == code {
			return next.flight(), r.putVersioned(ctx, db, next, it.Version)
		}
		return next.flight(), r.rename(ctx, db, code, it.Version, next)
	})
}

func (r *flightRepository) Delete(ctx context.Context, code string) error {
	db, err := r.store.db()
	if err != nil {
		return err
	}

	_, err = db.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
		TableName:           r.table(),
		Key:                 key(code),
		ConditionExpression: aws.String("attribute_exists(#code)"),
		ExpressionAttributeNames: map[string]*string{
			"#code": aws.String(attrFlightCode),
		},
	})
	if hasCode(err, dynamodb.ErrCodeConditionalCheckFailedException) {
		return domain.FlightNotFound(code)
	}
	if err != nil {
		return fmt.Errorf("delete flight %s: %w", code, err)
	}
	return nil
}

func (r *flightRepository) AddPassenger(ctx context.Context, code string, passenger domain.Passenger) (*domain.Flight, error) {
	return r.mutate(ctx, code, func(f *domain.Flight) error {
		return f.AddPassenger(passenger)
	})
}

func (r *flightRepository) UpdatePassenger(ctx context.Context, code string, passengerID int, patch domain.PassengerPatch) (*domain.Flight, error) {
	return r.mutate(ctx, code, func(f *domain.Flight) error {
		return f.UpdatePassenger(passengerID, patch)
	})
}

func (r *flightRepository) RemovePassenger(ctx context.Context, code string, passengerID int) (*domain.Flight, error) {
	return r.mutate(ctx, code, func(f *domain.Flight) error {
		return f.RemovePassenger(passengerID)
	})
}

// mutate reads the flight, applies fn and writes it back only if no other
// writer bumped the version in between.
func (r *flightRepository) mutate(ctx context.Context, code string, fn func(f *domain.Flight) error) (*domain.Flight, error) {
	return r.withRetry(ctx, code, func(db dynamodbiface.DynamoDBAPI) (domain.Flight, error) {
		it, err := r.get(ctx, db, code)
		if err != nil {
			return domain.Flight{}, retry.NewPermanent(err)
		}

		f := it.flight()
		if err := fn(&f); err != nil {
			return domain.Flight{}, retry.NewPermanent(err)
		}

		next := it.withFlight(f, r.now())
		return next.flight(), r.putVersioned(ctx, db, next, it.Version)
	})
}

// withRetry runs attempt until it succeeds, fails permanently, or version
// conflicts exhaust the retry budget.
func (r *flightRepository) withRetry(ctx context.Context, code string, attempt func(db dynamodbiface.DynamoDBAPI) (domain.Flight, error)) (*domain.Flight, error) {
	db, err := r.store.db()
	if err != nil {
		return nil, err
	}

	cfg := r.store.cfg.Retry.
		WithRetryIf(func(err error) bool { return errors.Is(err, errVersionConflict) }).
		WithOnRetry(func(n int, err error) {
			r.store.log.Debug().Str("flight_code", code).Int("attempt", n).Msg("Version conflict, retrying")
		})

	f, err := retry.DoWithResult(ctx, func() (domain.Flight, error) { return attempt(db) }, cfg)
	if err != nil {
		if errors.Is(err, errVersionConflict) {
			return nil, fmt.Errorf("update flight %s: %w", code, err)
		}
		return nil, err
	}
	return &f, nil
}

// putVersioned writes it only if the stored version still equals expected.
func (r *flightRepository) putVersioned(ctx context.Context, db dynamodbiface.DynamoDBAPI, it flightItem, expected int64) error {
	av, err := marshalItem(it)
	if err != nil {
		return retry.NewPermanent(err)
	}

	_, err = db.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName:                 r.table(),
		Item:                      av,
		ConditionExpression:       aws.String("#v = :expected"),
		ExpressionAttributeNames:  map[string]*string{"#v": aws.String(attrVersion)},
		ExpressionAttributeValues: versionValue(expected),
	})
	if hasCode(err, dynamodb.ErrCodeConditionalCheckFailedException) {
		return errVersionConflict
	}
	if err != nil {
		return retry.NewPermanent(fmt.Errorf("put flight %s: %w", it.FlightCode, err))
	}
	return nil
}

// rename moves the item to a new key in one transaction: the old item is
// deleted if its version is unchanged and the new one is created if the code is free.
func (r *flightRepository) rename(ctx context.Context, db dynamodbiface.DynamoDBAPI, oldCode string, expected int64, next flightItem) error {
	av, err := marshalItem(next)
	if err != nil {
		return retry.NewPermanent(err)
	}

	_, err = db.TransactWriteItemsWithContext(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []*dynamodb.TransactWriteItem{
			{
				Delete: &dynamodb.Delete{
					TableName:                 r.table(),
					Key:                       key(oldCode),
					ConditionExpression:       aws.String("#v = :expected"),
					ExpressionAttributeNames:  map[string]*string{"#v": aws.String(attrVersion)},
					ExpressionAttributeValues: versionValue(expected),
				},
			},
			{Put: r.createPut(av)},
		},
	})
	if err == nil {
		return nil
	}

	var canceled *dynamodb.TransactionCanceledException
	if errors.As(err, &canceled) {
		reasons := canceled.CancellationReasons
		if len(reasons) > 1 && isConditionFailure(reasons[1]) {
			return retry.NewPermanent(domain.FlightExists(next.FlightCode))
		}
		if len(reasons) > 0 && isConditionFailure(reasons[0]) {
			return errVersionConflict
		}
	}
	var aerr awserr.Error
	if errors.As(err, &aerr) && aerr.Code() == dynamodb.ErrCodeTransactionConflictException {
		return errVersionConflict
	}
	return retry.NewPermanent(fmt.Errorf("rename flight %s: %w", oldCode, err))
}

// createPut is a Put that only succeeds when no item holds the flight code.
func (r *flightRepository) createPut(av map[string]*dynamodb.AttributeValue) *dynamodb.Put {
	return &dynamodb.Put{
		TableName:           r.table(),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#code)"),
		ExpressionAttributeNames: map[string]*string{
			"#code": aws.String(attrFlightCode),
		},
	}
}

func versionValue(v int64) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		":expected": {N: aws.String(fmt.Sprintf("%d", v))},
	}
}

func isConditionFailure(reason *dynamodb.CancellationReason) bool {
	return reason != nil && aws.StringValue(reason.Code) == "ConditionalCheckFailed"
}

var _ domain.FlightRepository = (*flightRepository)(nil)
