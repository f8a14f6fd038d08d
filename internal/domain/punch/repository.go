package punch

import (
	"context"
	"time"
)

type PunchRepository interface {
	// ListBetween returns punches whose instant falls in [from, to).
	ListBetween(ctx context.Context, from, to time.Time) ([]Punch, error)

	// CreateBatch inserts a batch of punches from the import pipeline.
	CreateBatch(ctx context.Context, punches []Punch) (int, error)
}
