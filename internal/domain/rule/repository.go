package rule

import (
	"context"
	"time"
)

type RuleRepository interface {
	// ListActiveBetween returns rules whose [start_date, end_date] range
	// overlaps the given date window.
	ListActiveBetween(ctx context.Context, from, to time.Time) ([]SpecialRule, error)

	// Create inserts a new rule.
	Create(ctx context.Context, r SpecialRule) (SpecialRule, error)
}
