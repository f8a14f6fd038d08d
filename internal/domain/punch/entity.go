package punch

import (
	"time"
)

// Punch is a raw biometric clock event. Punches are append-only observed
// facts; the engine never mutates stored punches; overnight reattribution
// works on a per-invocation copy grouped by local calendar day.
type Punch struct {
	ID           string
	EmployeeCode string
	PunchedAt    time.Time // absolute instant, stored UTC
	CreatedAt    time.Time
}
