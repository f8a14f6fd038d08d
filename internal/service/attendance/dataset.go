package attendance

import (
	"time"

	"github.com/dawamhq/attendance-engine-go/internal/domain/adjustment"
	"github.com/dawamhq/attendance-engine-go/internal/domain/employee"
	"github.com/dawamhq/attendance-engine-go/internal/domain/holiday"
	"github.com/dawamhq/attendance-engine-go/internal/domain/leave"
	"github.com/dawamhq/attendance-engine-go/internal/domain/punch"
	"github.com/dawamhq/attendance-engine-go/internal/domain/rule"
)

// Dataset is one fully-materialized input snapshot. The engine reads it and
// nothing else; all entities are treated as immutable for the invocation.
type Dataset struct {
	Employees   []employee.Employee
	Punches     []punch.Punch
	Rules       []rule.SpecialRule
	Leaves      []leave.Leave
	Holidays    []holiday.OfficialHoliday
	Adjustments []adjustment.Adjustment
	Effects     []adjustment.ImportedEffect
}

// Options are the per-invocation parameters. Nil pointer fields fall back to
// the engine Config defaults.
type Options struct {
	StartDate time.Time // inclusive, date-only (local civil calendar)
	EndDate   time.Time // inclusive, date-only

	// EmployeeCodes restricts processing to a subset; empty means all.
	EmployeeCodes []string

	// WorkedOnHolidayOverrides holds prior manual holiday-attendance
	// decisions keyed "<employeeCode>__<YYYY-MM-DD>"; they take precedence
	// over auto-detection.
	WorkedOnHolidayOverrides map[string]bool

	TimezoneOffsetMinutes    *int
	DefaultPermissionMinutes *int
	DefaultHalfDayMinutes    *int
}
