package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	// ListActiveBetween returns leaves whose range overlaps [from, to].
	ListActiveBetween(ctx context.Context, from, to time.Time) ([]Leave, error)

	// Create inserts a new leave grant.
	Create(ctx context.Context, l Leave) (Leave, error)
}
