package adjustment

import (
	"time"
)

type Type string

const (
	TypeMorningPermission Type = "morning_permission"
	TypeEveningPermission Type = "evening_permission"
	TypeHalfDayLeave      Type = "half_day_leave"
	TypeMission           Type = "mission"
	TypeDeductionLeave    Type = "deduction_leave"
	TypeExcusedAbsence    Type = "excused_absence"
	TypeLeaveFromBalance  Type = "leave_from_balance"
	TypeCompDayUsed       Type = "comp_day_used"
)

var TypeValues = []string{
	string(TypeMorningPermission),
	string(TypeEveningPermission),
	string(TypeHalfDayLeave),
	string(TypeMission),
	string(TypeDeductionLeave),
	string(TypeExcusedAbsence),
	string(TypeLeaveFromBalance),
	string(TypeCompDayUsed),
}

// Adjustment is an ad-hoc per-day correction to an employee's attendance.
// FromTime/ToTime are "HH:MM[:SS]" clock times for the window types; for the
// full-day types they are sentinel markers, not real clock times.
type Adjustment struct {
	ID           string
	EmployeeCode string
	Date         time.Time // date-only
	Type         Type
	FromTime     string
	ToTime       string
	Note         string
	CreatedAt    time.Time
}

// IsFullDay reports whether the type uses sentinel full-day markers.
func (t Type) IsFullDay() bool {
	switch t {
	case TypeDeductionLeave, TypeExcusedAbsence, TypeLeaveFromBalance, TypeCompDayUsed:
		return true
	}
	return false
}

// ImportedEffect is the loose external-import shape: a free-text type label
// plus optionally blank time fields. Effects are folded into synthetic
// Adjustments before classification.
type ImportedEffect struct {
	ID           string
	EmployeeCode string
	Date         time.Time // date-only
	RawType      string
	FromTime     string
	ToTime       string
	CreatedAt    time.Time
}
