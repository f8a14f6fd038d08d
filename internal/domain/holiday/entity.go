package holiday

import (
	"time"
)

// OfficialHoliday is a calendar-wide fact: at most one per date.
type OfficialHoliday struct {
	ID        string
	Date      time.Time // date-only
	Name      string
	CreatedAt time.Time
}
