package attendance

import (
	"time"

	"github.com/dawamhq/attendance-engine-go/internal/domain/adjustment"
	"github.com/dawamhq/attendance-engine-go/internal/domain/attendance"
	"github.com/dawamhq/attendance-engine-go/internal/domain/employee"
	"github.com/dawamhq/attendance-engine-go/internal/domain/holiday"
	"github.com/dawamhq/attendance-engine-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// dayInput is everything the classifier needs for one employee-day. Punch
// seconds are relative to the day's local midnight; values past 86400 are
// reattributed overnight punches.
type dayInput struct {
	emp  employee.Employee
	code string // normalized
	date time.Time

	punches    []int
	carryNotes []string // from reattribution and effect translation

	shift             ResolvedShift
	nextShiftStartSec int // next day's shift start, relative to this day's midnight

	adjs           []adjustment.Adjustment
	hol            *holiday.OfficialHoliday
	leaveGrant     *leave.Leave
	workedOverride *bool
}

// classifyDay runs the per-day decision procedure. States are evaluated in
// strict precedence; the first matching state is terminal for the day.
func classifyDay(cfg Config, in dayInput) attendance.Record {
	rec := attendance.Record{
		EmployeeCode: in.code,
		Date:         in.date,
		TotalHours:   decimal.Zero,
		Penalties:    []attendance.Penalty{},
	}

	// 1. Joining period: before the hire date nothing is owed either way.
	if in.emp.HireDate != nil && in.date.Before(civilDate(*in.emp.HireDate)) {
		rec.Status = attendance.StatusJoiningPeriod
		return rec
	}

	// 2. Termination period: after the termination date each day deducts one
	// leave day but never draws an absence penalty.
	if in.emp.TerminationDate != nil && in.date.After(civilDate(*in.emp.TerminationDate)) {
		rec.Status = attendance.StatusTerminationPeriod
		rec.LeaveDeductionDays = 1
		rec.TerminationPeriodDays = 1
		return rec
	}

	rec.Notes = append(rec.Notes, in.carryNotes...)

	eff := foldAdjustments(in.shift, in.adjs)
	rec.HalfDayExcused = eff.HalfDayExcused
	if eff.HasMission() {
		ms := atSecond(in.date, eff.MissionStartSec)
		me := atSecond(in.date, eff.MissionEndSec)
		rec.MissionStart = &ms
		rec.MissionEnd = &me
	}

	checkInSec, checkOutSec := -1, -1
	if len(in.punches) > 0 {
		checkInSec = in.punches[0]
	}
	if len(in.punches) >= 2 {
		checkOutSec = in.punches[len(in.punches)-1]
	}
	setStamps := func() {
		if checkInSec >= 0 {
			t := atSecond(in.date, checkInSec)
			rec.CheckIn = &t
		}
		if checkOutSec >= 0 {
			t := atSecond(in.date, checkOutSec)
			rec.CheckOut = &t
		}
	}

	// 3. Official holiday.
	if in.hol != nil {
		rec.IsOfficialHoliday = true
		rec.Status = attendance.StatusOfficialHoliday
		if in.hol.Name != "" {
			rec.Notes = append(rec.Notes, in.hol.Name)
		}
		setStamps()
		if checkInSec >= 0 && checkOutSec >= 0 {
			rec.TotalHours = hoursBetween(checkInSec, checkOutSec)
		}
		worked := len(in.punches) > 0 || eff.HasMission() || rec.TotalHours.IsPositive()
		if in.workedOverride != nil {
			worked = *in.workedOverride
		}
		rec.WorkedOnOfficialHoliday = &worked
		if worked {
			rec.CompDaysOfficial = 1
		}
		return finalize(rec)
	}

	// 4. Rest day or leave day.
	isRestDay := in.shift.Weekday == cfg.RestDay
	if isRestDay || in.shift.Exempt || in.leaveGrant != nil {
		if isRestDay {
			attended := eff.HasMission()
			for _, w := range cfg.RestDayAttendance {
				for _, p := range in.punches {
					if w.Contains(p) {
						attended = true
					}
				}
			}
			if attended {
				rec.Status = attendance.StatusFridayAttended
				rec.CompDaysFriday = 1
				setStamps()
				if checkInSec >= 0 && checkOutSec >= 0 {
					rec.TotalHours = hoursBetween(checkInSec, checkOutSec)
				}
			} else {
				rec.Status = attendance.StatusFriday
			}
		} else {
			rec.Status = attendance.StatusCompDay
			switch {
			case in.leaveGrant != nil:
				rec.Notes = append(rec.Notes, "Leave: "+in.leaveGrant.Category())
			case in.shift.ExemptNote != "":
				rec.Notes = append(rec.Notes, "Leave: "+in.shift.ExemptNote)
			default:
				rec.Notes = append(rec.Notes, "Leave: HR")
			}
		}
		return finalize(rec)
	}

	hasWindowAdjustment := false
	for _, adj := range in.adjs {
		if !adj.Type.IsFullDay() {
			hasWindowAdjustment = true
			break
		}
	}

	// 5. Ordinary day.
	if len(in.punches) > 0 || hasWindowAdjustment {
		classifyOrdinary(cfg, in, eff, &rec, checkInSec, checkOutSec)
		setStamps()
		return finalize(rec)
	}

	// 6. Fallback: nothing happened today. A full-day adjustment explains the
	// absence; otherwise it costs one unit.
	switch {
	case eff.FullDay[adjustment.TypeExcusedAbsence]:
		rec.Status = attendance.StatusExcusedAbsence
		rec.ExcusedAbsenceDays = 1
	case eff.FullDay[adjustment.TypeDeductionLeave]:
		rec.Status = attendance.StatusDeductionLeave
		rec.LeaveDeductionDays = 1
	case eff.FullDay[adjustment.TypeLeaveFromBalance]:
		rec.Status = attendance.StatusLeaveFromBalance
	case eff.FullDay[adjustment.TypeCompDayUsed]:
		rec.Status = attendance.StatusCompDayUsed
		rec.CompDaysUsed = 1
	default:
		rec.Status = attendance.StatusAbsent
		rec.Penalties = append(rec.Penalties, absencePenalty())
	}
	return finalize(rec)
}

// classifyOrdinary computes the full economics for a day with punches or
// window adjustments.
func classifyOrdinary(cfg Config, in dayInput, eff Effective, rec *attendance.Record, checkInSec, checkOutSec int) {
	hasCheckIn := checkInSec >= 0
	hasCheckOut := checkOutSec >= 0
	graceSec := cfg.GraceMinutes * 60

	excused := (eff.HalfDayExcused && !hasCheckIn) ||
		eff.HasMission() ||
		in.shift.OvernightStay ||
		len(eff.FullDay) > 0

	switch {
	case in.shift.OvernightStay:
		// the checkout belongs to tomorrow's window, today counts as worked
		rec.Status = attendance.StatusPresent
	case excused:
		if eff.HasMission() && eff.MissionEndSec >= eff.ShiftEndSec {
			rec.Status = attendance.StatusPresent
		} else {
			rec.Status = attendance.StatusExcused
		}
	case hasCheckIn:
		if checkInSec <= eff.ShiftStartSec+graceSec {
			rec.Status = attendance.StatusPresent
		} else {
			rec.Status = attendance.StatusLate
			rec.Penalties = append(rec.Penalties, latePenalty((checkInSec-eff.ShiftStartSec)/60))
		}
	default:
		rec.Status = attendance.StatusAbsent
		rec.Penalties = append(rec.Penalties, absencePenalty())
	}

	// Missing checkout beats early leave; both are off the table when the day
	// is excused or an overnight stay is active.
	if !excused {
		if hasCheckIn && !hasCheckOut {
			rec.Penalties = append(rec.Penalties, missingStampPenalty())
		} else if hasCheckOut && checkOutSec < eff.ShiftEndSec-graceSec {
			rec.Penalties = append(rec.Penalties, earlyLeavePenalty())
		}
	}

	// Full-day adjustments override the punch-derived status. Deduction leave
	// is applied last so it wins the final status.
	if eff.FullDay[adjustment.TypeExcusedAbsence] {
		rec.Status = attendance.StatusExcusedAbsence
		rec.ExcusedAbsenceDays = 1
	}
	if eff.FullDay[adjustment.TypeLeaveFromBalance] {
		rec.Status = attendance.StatusLeaveFromBalance
	}
	if eff.FullDay[adjustment.TypeCompDayUsed] {
		rec.Status = attendance.StatusCompDayUsed
		rec.CompDaysUsed = 1
	}
	if eff.FullDay[adjustment.TypeDeductionLeave] {
		rec.Status = attendance.StatusDeductionLeave
		rec.LeaveDeductionDays = 1
	}

	// Stamp window: a mission substitutes for a missing punch on either side.
	firstStamp, lastStamp := checkInSec, checkOutSec
	if eff.HasMission() {
		if firstStamp < 0 || eff.MissionStartSec < firstStamp {
			firstStamp = eff.MissionStartSec
		}
		if eff.MissionEndSec > lastStamp {
			lastStamp = eff.MissionEndSec
		}
	}

	switch {
	case hasCheckIn && hasCheckOut:
		rec.TotalHours = hoursBetween(checkInSec, checkOutSec)
	case firstStamp >= 0 && lastStamp > firstStamp:
		rec.TotalHours = hoursBetween(firstStamp, lastStamp)
	}

	effectiveCheckout := checkOutSec
	if eff.MissionEndSec > effectiveCheckout {
		effectiveCheckout = eff.MissionEndSec
	}
	if effectiveCheckout >= 0 {
		rec.OvertimeHours = overtimeHours(cfg, eff.ShiftEndSec, effectiveCheckout, in.nextShiftStartSec)
	}
}

func finalize(rec attendance.Record) attendance.Record {
	rec.CompDaysTotal = rec.CompDaysFriday + rec.CompDaysOfficial
	return rec
}
