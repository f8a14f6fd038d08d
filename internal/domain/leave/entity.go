package leave

import (
	"time"

	"github.com/dawamhq/attendance-engine-go/internal/domain/rule"
)

type Type string

const (
	TypeOfficial    Type = "official"
	TypeCollections Type = "collections"
)

// Leave is a multi-day, scoped leave grant. Matching is date-range plus
// scope, independent of SpecialRule.
type Leave struct {
	ID        string
	Type      Type
	Scope     rule.Scope
	StartDate time.Time // inclusive, date-only
	EndDate   time.Time // inclusive, date-only
	Note      string
	CreatedAt time.Time
}

// ActiveOn reports whether date falls inside the leave's inclusive range.
func (l Leave) ActiveOn(date time.Time) bool {
	return !date.Before(l.StartDate) && !date.After(l.EndDate)
}

// Category returns the presentation category recorded in day notes.
func (l Leave) Category() string {
	if l.Type == TypeOfficial {
		return "Official"
	}
	return "HR"
}
