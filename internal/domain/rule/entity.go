package rule

import (
	"time"
)

type RuleType string

const (
	RuleCustomShift      RuleType = "custom_shift"
	RuleAttendanceExempt RuleType = "attendance_exempt"
	RuleOvernightStay    RuleType = "overnight_stay"
)

// SpecialRule is a time-bounded, scoped business rule. Multiple rules may be
// active on the same day; only the highest-priority custom_shift rule governs
// shift hours, but flag-type rules (attendance_exempt, overnight_stay) are
// all consulted. Rule types outside the known set are carried but ignored by
// the engine.
type SpecialRule struct {
	ID        string
	Scope     Scope
	StartDate time.Time // inclusive, date-only
	EndDate   time.Time // inclusive, date-only
	Priority  int       // higher wins ties
	Type      RuleType

	// custom_shift params; empty means the 09:00/17:00 defaults
	ShiftStart string
	ShiftEnd   string

	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveOn reports whether date falls inside the rule's inclusive range.
// Date comparison is calendar-day based: callers pass midnight-truncated
// local dates.
func (r SpecialRule) ActiveOn(date time.Time) bool {
	return !date.Before(r.StartDate) && !date.After(r.EndDate)
}
