package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	// ListBetween returns holidays dated in [from, to] inclusive.
	ListBetween(ctx context.Context, from, to time.Time) ([]OfficialHoliday, error)

	// Create inserts a new holiday.
	Create(ctx context.Context, h OfficialHoliday) (OfficialHoliday, error)
}
