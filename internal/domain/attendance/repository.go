package attendance

import (
	"context"
)

// RecordRepository persists engine output. Upserts are keyed on
// (employee_code, date) so re-processing a range is idempotent.
type RecordRepository interface {
	// UpsertBatch inserts or replaces records by (employee_code, date).
	UpsertBatch(ctx context.Context, records []Record) ([]Record, error)

	// List retrieves stored records with filters and pagination.
	List(ctx context.Context, filter RecordFilter) ([]Record, int64, error)

	// GetByID retrieves a single stored record.
	GetByID(ctx context.Context, id string) (Record, error)
}
