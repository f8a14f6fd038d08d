package adjustment

import (
	"context"
	"time"
)

type AdjustmentRepository interface {
	// ListBetween returns adjustments dated in [from, to] inclusive.
	ListBetween(ctx context.Context, from, to time.Time) ([]Adjustment, error)

	// Create inserts a new adjustment.
	Create(ctx context.Context, adj Adjustment) (Adjustment, error)
}

type EffectRepository interface {
	// ListBetween returns imported effects dated in [from, to] inclusive.
	ListBetween(ctx context.Context, from, to time.Time) ([]ImportedEffect, error)

	// CreateBatch stages a batch of imported effects.
	CreateBatch(ctx context.Context, effects []ImportedEffect) (int, error)
}
