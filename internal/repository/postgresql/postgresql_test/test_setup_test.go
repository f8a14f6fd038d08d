package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/dawamhq/attendance-engine-go/internal/pkg/database"
)

// TestDatabaseSetup wraps a connection to the integration test database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to the database named by TEST_DATABASE_URL. Tests
// call SkipIfUnavailable first so the suite passes without a live database.
func NewTestDatabase() (*TestDatabaseSetup, error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("TEST_DATABASE_URL is not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	return &TestDatabaseSetup{DB: db}, nil
}

// SkipIfUnavailable skips the calling test when no test database is
// configured.
func SkipIfUnavailable(t *testing.T) {
	t.Helper()
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}
}

// TruncateAllTables clears every table between tests.
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"attendance_records",
		"imported_effects",
		"adjustments",
		"leaves",
		"official_holidays",
		"special_rules",
		"punches",
		"employees",
	}

	for _, table := range tables {
		if _, err := tx.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// Close releases the pool.
func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}
