package attendance

import (
	"github.com/dawamhq/attendance-engine-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

var (
	quarterDay = decimal.New(25, -2) // 0.25
	halfDay    = decimal.New(5, -1)  // 0.5
	fullDay    = decimal.New(1, 0)   // 1
)

// latePenalty returns the tiered late-arrival penalty for the given minutes
// past the shift start (caller has already applied the grace period).
func latePenalty(minutesLate int) attendance.Penalty {
	value := quarterDay
	switch {
	case minutesLate > 60:
		value = fullDay
	case minutesLate > 30:
		value = halfDay
	}
	m := minutesLate
	return attendance.Penalty{Type: attendance.PenaltyLateArrival, Value: value, Minutes: &m}
}

func absencePenalty() attendance.Penalty {
	return attendance.Penalty{Type: attendance.PenaltyAbsence, Value: fullDay}
}

func missingStampPenalty() attendance.Penalty {
	return attendance.Penalty{Type: attendance.PenaltyMissingStamp, Value: halfDay}
}

func earlyLeavePenalty() attendance.Penalty {
	return attendance.Penalty{Type: attendance.PenaltyEarlyLeave, Value: halfDay}
}

// overtimeHours counts whole hours worked past the effective shift end plus
// the configured lag, capped at the next day's shift start.
func overtimeHours(cfg Config, effShiftEndSec, effectiveCheckoutSec, nextShiftStartSec int) int {
	from := effShiftEndSec + cfg.OvertimeLagMinutes*60
	to := effectiveCheckoutSec
	if nextShiftStartSec < to {
		to = nextShiftStartSec
	}
	if to <= from {
		return 0
	}
	return (to - from) / 3600
}

// hoursBetween converts a seconds span into decimal hours with two places.
func hoursBetween(fromSec, toSec int) decimal.Decimal {
	if toSec <= fromSec {
		return decimal.Zero
	}
	return decimal.New(int64(toSec-fromSec), 0).Div(decimal.New(3600, 0)).Round(2)
}
