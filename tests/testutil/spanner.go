package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/product-catalog/internal/models/m_product"
)

// SetupSpannerTest creates a test Spanner client and returns a cleanup function.
// SPANNER_EMULATOR_HOST must point at a running emulator with the schema applied.
func SetupSpannerTest(t *testing.T) (*spanner.Client, func()) {
	t.Helper()

	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		t.Skip("SPANNER_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, GetTestSpannerDB())
	require.NoError(t, err, "failed to create Spanner client")

	// Clean database before test
	CleanDatabase(t, client)

	cleanup := func() {
		CleanDatabase(t, client)
		client.Close()
	}

	return client, cleanup
}

// GetTestSpannerDB returns the test Spanner database string.
func GetTestSpannerDB() string {
	if db := os.Getenv("SPANNER_TEST_DATABASE"); db != "" {
		return db
	}
	return "projects/test-project/instances/test-instance/databases/product-catalog-test"
}

// CleanDatabase truncates all tables for test isolation.
func CleanDatabase(t *testing.T, client *spanner.Client) {
	t.Helper()

	_, err := client.Apply(context.Background(), []*spanner.Mutation{
		spanner.Delete(m_product.TableName, spanner.AllKeys()),
	})
	require.NoError(t, err, "failed to clean database")
}

// AssertRowCount asserts the number of rows in a table.
func AssertRowCount(t *testing.T, client *spanner.Client, table string, expectedCount int) {
	t.Helper()

	ctx := context.Background()
	stmt := spanner.Statement{
		SQL: fmt.Sprintf("SELECT COUNT(*) FROM %s", table),
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to query row count")

	var count int64
	require.NoError(t, row.Columns(&count), "failed to parse count")
	require.Equal(t, int64(expectedCount), count, "unexpected row count in table %s", table)
}
