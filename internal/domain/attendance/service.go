package attendance

import (
	"context"
)

// AttendanceService runs the reconciliation engine and serves its output.
type AttendanceService interface {
	// Process loads the stored dataset for the requested range, runs the
	// engine and upserts the resulting records.
	Process(ctx context.Context, req ProcessRequest) (ProcessResponse, error)

	// Preview runs the engine over an inline snapshot without persistence.
	Preview(ctx context.Context, req PreviewRequest) (ProcessResponse, error)

	// ListRecords retrieves stored records with filters.
	ListRecords(ctx context.Context, filter RecordFilter) (ListRecordsResponse, error)

	// GetRecord retrieves a single stored record by ID.
	GetRecord(ctx context.Context, id string) (RecordResponse, error)
}
