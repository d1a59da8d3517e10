package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/ory/dockertest/v3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// containerTTL bounds how long a leaked container survives a crashed test run.
const containerTTL = 180

// dockerPool returns a reachable Docker pool or skips the test.
func dockerPool(t *testing.T) *dockertest.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	if os.Getenv("SKIP_DOCKER_TESTS") != "" {
		t.Skip("SKIP_DOCKER_TESTS is set")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker is not reachable: %v", err)
	}
	pool.MaxWait = 90 * time.Second
	return pool
}

// run starts a container and purges it when the test finishes.
func run(t *testing.T, pool *dockertest.Pool, opts *dockertest.RunOptions) *dockertest.Resource {
	t.Helper()

	resource, err := pool.RunWithOptions(opts)
	if err != nil {
		t.Fatalf("could not start %s: %v", opts.Repository, err)
	}
	_ = resource.Expire(containerTTL)

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("could not purge %s: %v", opts.Repository, err)
		}
	})
	return resource
}

// StartMongo runs a disposable MongoDB server and returns its connection URI.
// The test is skipped when Docker is unavailable.
func StartMongo(t *testing.T) string {
	t.Helper()

	pool := dockerPool(t)
	resource := run(t, pool, &dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "7.0",
	})

	uri := fmt.Sprintf("mongodb://%s", resource.GetHostPort("27017/tcp"))
	err := pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())
		return client.Ping(ctx, nil)
	})
	if err != nil {
		t.Fatalf("mongo did not become ready: %v", err)
	}
	return uri
}

// StartDynamoDB runs DynamoDB Local and returns its endpoint URL.
// The test is skipped when Docker is unavailable.
func StartDynamoDB(t *testing.T) string {
	t.Helper()

	pool := dockerPool(t)
	resource := run(t, pool, &dockertest.RunOptions{
		Repository:   "amazon/dynamodb-local",
		Tag:          "latest",
		ExposedPorts: []string{"8000"},
	})

	endpoint := "http://" + resource.GetHostPort("8000/tcp")
	err := pool.Retry(func() error {
		client := dynamodb.New(session.Must(session.NewSession(LocalAWSConfig(endpoint))))
		_, err := client.ListTables(&dynamodb.ListTablesInput{})
		return err
	})
	if err != nil {
		t.Fatalf("dynamodb-local did not become ready: %v", err)
	}
	return endpoint
}

// LocalAWSConfig returns static credentials suitable for DynamoDB Local.
func LocalAWSConfig(endpoint string) *aws.Config {
	return &aws.Config{
		Region:      aws.String("us-east-1"),
		Endpoint:    aws.String(endpoint),
		Credentials: credentials.NewStaticCredentials("local", "local", ""),
	}
}
