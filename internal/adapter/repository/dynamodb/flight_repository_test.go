package dynamodb

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-registry/flight-passenger-service/internal/domain"
	"github.com/flight-registry/flight-passenger-service/internal/infrastructure/retry"
	"github.com/flight-registry/flight-passenger-service/internal/infrastructure/timeutil"
	"github.com/flight-registry/flight-passenger-service/test/testutil"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// fakeClient is an in-memory table that honors the version condition used by
// versioned puts. conflicts forces that many puts to fail as if another
// writer got there first.
type fakeClient struct {
	dynamodbiface.DynamoDBAPI

	mu        sync.Mutex
	items     map[string]map[string]*dynamodb.AttributeValue
	conflicts int
	puts      int
}

func newFakeClient() *fakeClient {
	return &fakeClient{items: map[string]map[string]*dynamodb.AttributeValue{}}
}

func (f *fakeClient) DescribeTableWithContext(aws.Context, *dynamodb.DescribeTableInput, ...request.Option) (*dynamodb.DescribeTableOutput, error) {
	return &dynamodb.DescribeTableOutput{}, nil
}

func (f *fakeClient) GetItemWithContext(_ aws.Context, in *dynamodb.GetItemInput, _ ...request.Option) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &dynamodb.GetItemOutput{Item: f.items[aws.StringValue(in.Key[attrFlightCode].S)]}, nil
}

func (f *fakeClient) PutItemWithContext(_ aws.Context, in *dynamodb.PutItemInput, _ ...request.Option) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++

	code := aws.StringValue(in.Item[attrFlightCode].S)
	current, exists := f.items[code]

	if expected, ok := in.ExpressionAttributeValues[":expected"]; ok {
		if f.conflicts > 0 {
			f.conflicts--
			return nil, awserr.New(dynamodb.ErrCodeConditionalCheckFailedException, "forced conflict", nil)
		}
		if !exists || aws.StringValue(current[attrVersion].N) != aws.StringValue(expected.N) {
			return nil, awserr.New(dynamodb.ErrCodeConditionalCheckFailedException, "version mismatch", nil)
		}
	} else if exists {
		return nil, awserr.New(dynamodb.ErrCodeConditionalCheckFailedException, "item exists", nil)
	}

	f.items[code] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func newFakeStore(t *testing.T, client *fakeClient, maxAttempts int) *Store {
	t.Helper()
	s := New(Config{
		Table:  "flights",
		Client: client,
		Clock:  timeutil.NewMockClockFromString("2025-05-01T10:00:00Z"),
		Retry: retry.Config{
			MaxAttempts:  maxAttempts,
			InitialDelay: time.Millisecond,
			MaxDelay:     time.Millisecond,
			Multiplier:   1,
		},
	})
	require.NoError(t, s.Connect(context.Background()))
	return s
}

func TestStore_NotConnected(t *testing.T) {
	s := New(Config{Table: "flights", Client: newFakeClient()})

	_, err := s.Flights().FindByCode(context.Background(), "LAN123")
	assert.ErrorIs(t, err, domain.ErrStoreNotConnected)

	require.NoError(t, s.Connect(context.Background()))
	require.NoError(t, s.Disconnect(context.Background()))
	require.NoError(t, s.Disconnect(context.Background()), "disconnect is idempotent")

	_, err = s.Flights().AddPassenger(context.Background(), "LAN123", testutil.Passenger(1, "Ana"))
	assert.ErrorIs(t, err, domain.ErrStoreNotConnected)
}

func TestFlightRepository_RetriesVersionConflict(t *testing.T) {
	client := newFakeClient()
	repo := newFakeStore(t, client, 5).Flights()
	ctx := context.Background()

	_, err := repo.Insert(ctx, domain.NewFlight("LAN123", nil))
	require.NoError(t, err)

	client.conflicts = 2
	got, err := repo.AddPassenger(ctx, "LAN123", testutil.Passenger(1, "Ana"))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, testutil.PassengerIDs(got.Passengers))
	assert.Equal(t, 4, client.puts, "one insert, two conflicts, one success")

	stored, err := repo.FindByCode(ctx, "LAN123")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, testutil.PassengerIDs(stored.Passengers))
}

func TestFlightRepository_RetriesExhausted(t *testing.T) {
	client := newFakeClient()
	repo := newFakeStore(t, client, 3).Flights()
	ctx := context.Background()

	_, err := repo.Insert(ctx, domain.NewFlight("LAN123", nil))
	require.NoError(t, err)

	client.conflicts = 10
	_, err = repo.AddPassenger(ctx, "LAN123", testutil.Passenger(1, "Ana"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errVersionConflict)
	assert.False(t, domain.IsConflict(err), "a lost race is not a uniqueness conflict")
}

func TestFlightRepository_DomainErrorsAreNotRetried(t *testing.T) {
	client := newFakeClient()
	repo := newFakeStore(t, client, 5).Flights()
	ctx := context.Background()

	_, err := repo.Insert(ctx, domain.NewFlight("LAN123", []domain.Passenger{testutil.Passenger(1, "Ana")}))
	require.NoError(t, err)

	_, err = repo.AddPassenger(ctx, "LAN123", testutil.Passenger(1, "Dup"))
	assert.ErrorIs(t, err, domain.ErrPassengerExists)

	_, err = repo.UpdatePassenger(ctx, "LAN123", 7, domain.PassengerPatch{Name: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrPassengerNotFound)

	_, err = repo.RemovePassenger(ctx, "NOPE", 1)
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)

	assert.Equal(t, 1, client.puts, "only the insert reached the table")
}

func TestFlightRepository_InsertConflict(t *testing.T) {
	repo := newFakeStore(t, newFakeClient(), 1).Flights()
	ctx := context.Background()

	_, err := repo.Insert(ctx, domain.NewFlight("LAN123", nil))
	require.NoError(t, err)

	_, err = repo.Insert(ctx, domain.NewFlight("LAN123", nil))
	assert.ErrorIs(t, err, domain.ErrFlightExists)
}

func TestItem_RoundTripKeepsEmptyPassengers(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	it := newItem(domain.NewFlight("EMPTY1", nil), now, 42)

	av, err := marshalItem(it)
	require.NoError(t, err)

	back, err := unmarshalItem(av)
	require.NoError(t, err)

	f := back.flight()
	assert.NotNil(t, f.Passengers)
	assert.Empty(t, f.Passengers)
	assert.Equal(t, int64(1), back.Version)
	assert.Equal(t, int64(42), back.Seq)
	assert.True(t, now.Equal(f.CreatedAt))
}

func TestItem_WithFlightBumpsVersion(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	it := newItem(domain.NewFlight("LAN123", nil), now, 1)

	next := it.withFlight(domain.NewFlight("LAN999", nil), now.Add(time.Minute))
	assert.Equal(t, int64(2), next.Version)
	assert.Equal(t, "LAN999", next.FlightCode)
	assert.Equal(t, now, next.CreatedAt)
	assert.Equal(t, now.Add(time.Minute), next.UpdatedAt)
}

func TestSortBySeq(t *testing.T) {
	items := []flightItem{{FlightCode: "C", Seq: 3}, {FlightCode: "A", Seq: 1}, {FlightCode: "B", Seq: 2}}
	sortBySeq(items)

	codes := make([]string, len(items))
	for i, it := range items {
		codes[i] = it.FlightCode
	}
	assert.Equal(t, []string{"A", "B", "C"}, codes)
}

func TestNextSeq_StrictlyIncreasing(t *testing.T) {
	r := &flightRepository{}
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	a := r.nextSeq(now)
	b := r.nextSeq(now)
	c := r.nextSeq(now.Add(-time.Hour))
	assert.Less(t, a, b)
	assert.Less(t, b, c)
}

// newLocalStore connects a store to a fresh table on DynamoDB Local.
func newLocalStore(t *testing.T) (*Store, *timeutil.MockClock) {
	t.Helper()

	endpoint := testutil.StartDynamoDB(t)
	cfg := testutil.LocalAWSConfig(endpoint)
	clock := timeutil.NewMockClockFromString("2025-05-01T10:00:00Z")

	s := New(Config{
		Table:    "flights_" + strconv.FormatInt(time.Now().UnixNano(), 10),
		Region:   aws.StringValue(cfg.Region),
		Endpoint: endpoint,
		Client:   dynamodb.New(session.Must(session.NewSession(cfg))),
		Clock:    clock,
		Retry:    retry.OptimisticLockConfig.WithMaxAttempts(50),
	})
	require.NoError(t, s.Connect(context.Background()))
	t.Cleanup(func() { _ = s.Disconnect(context.Background()) })
	return s, clock
}

func TestStore_Integration(t *testing.T) {
	s, clock := newLocalStore(t)
	repo := s.Flights()
	ctx := context.Background()

	t.Run("insert and read back", func(t *testing.T) {
		created, err := repo.Insert(ctx, domain.NewFlight("LAN123", []domain.Passenger{testutil.Passenger(1, "Ana"), testutil.Passenger(2, "Bea")}))
		require.NoError(t, err)
		assert.True(t, clock.Now().Equal(created.CreatedAt))

		got, err := repo.FindByCode(ctx, "LAN123")
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, testutil.PassengerIDs(got.Passengers))

		_, err = repo.Insert(ctx, domain.NewFlight("LAN123", nil))
		assert.ErrorIs(t, err, domain.ErrFlightExists)
	})

	t.Run("insert many keeps creation order", func(t *testing.T) {
		require.NoError(t, repo.InsertMany(ctx, []domain.Flight{
			domain.NewFlight("SKY123", nil),
			domain.NewFlight("EMPTY1", nil),
		}))

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		codes := make([]string, len(all))
		for i, f := range all {
			codes[i] = f.FlightCode
		}
		assert.Equal(t, []string{"LAN123", "SKY123", "EMPTY1"}, codes)
	})

	t.Run("passenger mutations", func(t *testing.T) {
		got, err := repo.AddPassenger(ctx, "EMPTY1", testutil.Passenger(1, "First"))
		require.NoError(t, err)
		assert.Equal(t, []int{1}, testutil.PassengerIDs(got.Passengers))

		got, err = repo.UpdatePassenger(ctx, "LAN123", 2, domain.PassengerPatch{Age: intPtr(41)})
		require.NoError(t, err)
		assert.Equal(t, 41, got.Passengers[1].Age)

		got, err = repo.RemovePassenger(ctx, "LAN123", 1)
		require.NoError(t, err)
		assert.Equal(t, []int{2}, testutil.PassengerIDs(got.Passengers))
	})

	t.Run("rename", func(t *testing.T) {
		got, err := repo.Update(ctx, "EMPTY1", domain.FlightPatch{FlightCode: strPtr("FULL1")})
		require.NoError(t, err)
		assert.Equal(t, "FULL1", got.FlightCode)

		ok, err := repo.Exists(ctx, "EMPTY1")
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = repo.Update(ctx, "FULL1", domain.FlightPatch{FlightCode: strPtr("SKY123")})
		assert.ErrorIs(t, err, domain.ErrFlightExists)

		_, err = repo.Update(ctx, "NOPE", domain.FlightPatch{FlightCode: strPtr("X")})
		assert.ErrorIs(t, err, domain.ErrFlightNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "FULL1"))
		assert.ErrorIs(t, repo.Delete(ctx, "FULL1"), domain.ErrFlightNotFound)
	})
}

func TestStore_ConcurrentAddPassenger(t *testing.T) {
	s, _ := newLocalStore(t)
	repo := s.Flights()
	ctx := context.Background()

	_, err := repo.Insert(ctx, domain.NewFlight("RACE1", nil))
	require.NoError(t, err)

	const writers = 10
	var wg sync.WaitGroup
	for i := 1; i <= writers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_, err := repo.AddPassenger(ctx, "RACE1", testutil.Passenger(id, "P"))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := repo.FindByCode(ctx, "RACE1")
	require.NoError(t, err)
	assert.Len(t, got.Passengers, writers)
}
