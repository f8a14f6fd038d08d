package employee

import (
	"time"
)

// Employee is the engine's read-only view of the directory record. Code is
// the identity used across all signal sources; comparisons always go through
// the normalized form.
type Employee struct {
	Code            string
	FullName        string
	ShiftStart      string // default daily shift start, "HH:MM"
	HireDate        *time.Time
	TerminationDate *time.Time
	Department      string
	Sector          string
	Section         string
	Branch          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
