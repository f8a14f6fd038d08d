package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent           Status = "Present"
	StatusLate              Status = "Late"
	StatusAbsent            Status = "Absent"
	StatusExcused           Status = "Excused"
	StatusFriday            Status = "Friday"
	StatusFridayAttended    Status = "Friday Attended"
	StatusOfficialHoliday   Status = "Official Holiday"
	StatusCompDay           Status = "Comp Day"
	StatusJoiningPeriod     Status = "Joining Period"
	StatusTerminationPeriod Status = "Termination Period"
	StatusDeductionLeave    Status = "Deduction Leave"
	StatusExcusedAbsence    Status = "Excused Absence"
	StatusLeaveFromBalance  Status = "Leave From Balance"
	StatusCompDayUsed       Status = "Comp Day Used"
)

type PenaltyType string

const (
	PenaltyLateArrival  PenaltyType = "late_arrival"
	PenaltyAbsence      PenaltyType = "absence"
	PenaltyMissingStamp PenaltyType = "missing_stamp"
	PenaltyEarlyLeave   PenaltyType = "early_leave"
)

// Penalty is a single deduction entry. Value is in day-fractions
// (0.25 / 0.5 / 1); decimal keeps sums exact when the payroll layer adds
// them up.
type Penalty struct {
	Type    PenaltyType
	Value   decimal.Decimal
	Minutes *int // minutes late, for late_arrival
}

// Record is the canonical per-employee-per-day output of the engine.
// Exactly one record exists per (employee, date) pair in a processed range.
type Record struct {
	ID           string
	EmployeeCode string
	Date         time.Time // date-only, local civil calendar

	CheckIn  *time.Time
	CheckOut *time.Time

	TotalHours    decimal.Decimal
	OvertimeHours int

	Status    Status
	Penalties []Penalty
	Notes     []string

	MissionStart   *time.Time
	MissionEnd     *time.Time
	HalfDayExcused bool

	IsOfficialHoliday       bool
	WorkedOnOfficialHoliday *bool

	CompDaysFriday        int
	CompDaysOfficial      int
	CompDaysTotal         int
	CompDaysUsed          int
	LeaveDeductionDays    int
	ExcusedAbsenceDays    int
	TerminationPeriodDays int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PenaltyTotal sums the record's penalty values.
func (r Record) PenaltyTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range r.Penalties {
		total = total.Add(p.Value)
	}
	return total
}
