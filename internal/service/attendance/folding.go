package attendance

import (
	"fmt"

	"github.com/dawamhq/attendance-engine-go/internal/domain/adjustment"
	"github.com/dawamhq/attendance-engine-go/internal/pkg/arabic"
	"github.com/dawamhq/attendance-engine-go/internal/pkg/validator"
)

// effectAliases maps folded import labels to canonical adjustment types.
// Keys must be in arabic.FoldLabel form. English tokens cover API imports,
// Arabic ones cover the legacy spreadsheets.
var effectAliases = map[string]adjustment.Type{
	"mission":            adjustment.TypeMission,
	"ماموريه":            adjustment.TypeMission,
	"morning permission": adjustment.TypeMorningPermission,
	"اذن صباحي":          adjustment.TypeMorningPermission,
	"evening permission": adjustment.TypeEveningPermission,
	"اذن مسائي":          adjustment.TypeEveningPermission,
	"half day":           adjustment.TypeHalfDayLeave,
	"half day leave":     adjustment.TypeHalfDayLeave,
	"نصف يوم":            adjustment.TypeHalfDayLeave,
	"نص يوم":             adjustment.TypeHalfDayLeave,
	"deduction leave":    adjustment.TypeDeductionLeave,
	"اجازه خصم":          adjustment.TypeDeductionLeave,
	"excused absence":    adjustment.TypeExcusedAbsence,
	"غياب بعذر":          adjustment.TypeExcusedAbsence,
	"leave from balance": adjustment.TypeLeaveFromBalance,
	"اجازه من الرصيد":    adjustment.TypeLeaveFromBalance,
	"comp day":           adjustment.TypeCompDayUsed,
	"comp day used":      adjustment.TypeCompDayUsed,
	"بدل راحه":           adjustment.TypeCompDayUsed,
}

const (
	fullDayFrom = "00:00:00"
	fullDayTo   = "23:59:59"
)

// translateEffects folds one day's imported effects into synthetic
// adjustments. Missing time bounds are resolved by the configured default
// durations; mission effects without hours are dropped with a note; same-day
// missions merge into one adjustment spanning their union.
func translateEffects(cfg Config, shift ResolvedShift, effects []adjustment.ImportedEffect, punches []int) ([]adjustment.Adjustment, []string) {
	var adjs []adjustment.Adjustment
	var notes []string

	missionFrom, missionTo := -1, -1
	missions := 0

	for _, eff := range effects {
		typ, known := effectAliases[arabic.FoldLabel(eff.RawType)]
		if !known {
			notes = append(notes, fmt.Sprintf("effect %q needs mapping", eff.RawType))
			continue
		}

		fromSec, fromOK := validator.ClockTimeSeconds(eff.FromTime)
		toSec, toOK := validator.ClockTimeSeconds(eff.ToTime)

		switch typ {
		case adjustment.TypeMission:
			if !fromOK || !toOK {
				notes = append(notes, fmt.Sprintf("mission on %s needs hours", dateKey(eff.Date)))
				continue
			}
			if missionFrom < 0 || fromSec < missionFrom {
				missionFrom = fromSec
			}
			if toSec > missionTo {
				missionTo = toSec
			}
			missions++

		case adjustment.TypeMorningPermission:
			if !fromOK || !toOK {
				fromSec = shift.StartSec
				toSec = shift.StartSec + cfg.DefaultPermissionMinutes*60
			}
			adjs = append(adjs, synthetic(eff, typ, fromSec, toSec))

		case adjustment.TypeEveningPermission:
			if !fromOK || !toOK {
				fromSec = shift.EndSec - cfg.DefaultPermissionMinutes*60
				toSec = shift.EndSec
			}
			adjs = append(adjs, synthetic(eff, typ, fromSec, toSec))

		case adjustment.TypeHalfDayLeave:
			if !fromOK || !toOK {
				if morningHalf(cfg, shift, punches) {
					fromSec = shift.StartSec
					toSec = shift.StartSec + cfg.DefaultHalfDayMinutes*60
				} else {
					fromSec = shift.EndSec - cfg.DefaultHalfDayMinutes*60
					toSec = shift.EndSec
				}
			}
			adjs = append(adjs, synthetic(eff, typ, fromSec, toSec))

		default: // full-day sentinel types
			adjs = append(adjs, adjustment.Adjustment{
				EmployeeCode: eff.EmployeeCode,
				Date:         eff.Date,
				Type:         typ,
				FromTime:     fullDayFrom,
				ToTime:       fullDayTo,
			})
		}
	}

	if missions > 0 {
		adjs = append(adjs, adjustment.Adjustment{
			EmployeeCode: effects[0].EmployeeCode,
			Date:         effects[0].Date, // callers pass one day's effects
			Type:         adjustment.TypeMission,
			FromTime:     formatClock(missionFrom),
			ToTime:       formatClock(missionTo),
		})
		if missions > 1 {
			notes = append(notes, fmt.Sprintf("merged %d mission effects", missions))
		}
	}

	return adjs, notes
}

func synthetic(eff adjustment.ImportedEffect, typ adjustment.Type, fromSec, toSec int) adjustment.Adjustment {
	return adjustment.Adjustment{
		EmployeeCode: eff.EmployeeCode,
		Date:         eff.Date,
		Type:         typ,
		FromTime:     formatClock(fromSec),
		ToTime:       formatClock(toSec),
	}
}

// morningHalf infers which half of the day an untimed half-day leave covers.
// A checkout well before shift end implies the evening half; a check-in well
// after shift start implies the morning half; default is morning.
func morningHalf(cfg Config, shift ResolvedShift, punches []int) bool {
	if len(punches) == 0 {
		return true
	}
	slack := cfg.HalfDaySideSlackMinutes * 60
	checkOut := punches[len(punches)-1]
	if len(punches) >= 2 && checkOut <= shift.EndSec-slack {
		return false
	}
	// a late check-in, or anything ambiguous, reads as a morning leave
	return true
}

// Effective is the day's shift window after folding adjustments, plus the
// mission window and penalty-suppression state.
type Effective struct {
	ShiftStartSec int
	ShiftEndSec   int

	MissionStartSec int // -1 when no mission
	MissionEndSec   int

	Suppress       bool // mission present: no penalties for the day
	HalfDayExcused bool

	FullDay map[adjustment.Type]bool
}

// HasMission reports whether a mission window was folded in.
func (e Effective) HasMission() bool {
	return e.MissionStartSec >= 0
}

// foldAdjustments merges one day's adjustments into the effective shift
// window. Morning permissions push the start forward, evening permissions
// pull the end back, half-day leaves replace the boundary they touch, and
// missions widen a running window while suppressing penalties.
func foldAdjustments(shift ResolvedShift, adjs []adjustment.Adjustment) Effective {
	eff := Effective{
		ShiftStartSec:   shift.StartSec,
		ShiftEndSec:     shift.EndSec,
		MissionStartSec: -1,
		MissionEndSec:   -1,
		FullDay:         make(map[adjustment.Type]bool),
	}

	for _, adj := range adjs {
		if adj.Type.IsFullDay() {
			eff.FullDay[adj.Type] = true
			continue
		}

		fromSec, fromOK := validator.ClockTimeSeconds(adj.FromTime)
		toSec, toOK := validator.ClockTimeSeconds(adj.ToTime)
		if !fromOK || !toOK {
			continue
		}

		switch adj.Type {
		case adjustment.TypeMorningPermission:
			// never moves the start backwards
			if toSec > eff.ShiftStartSec {
				eff.ShiftStartSec = toSec
			}
		case adjustment.TypeEveningPermission:
			if fromSec < eff.ShiftEndSec {
				eff.ShiftEndSec = fromSec
			}
		case adjustment.TypeHalfDayLeave:
			if fromSec == shift.StartSec {
				eff.ShiftStartSec = toSec
				eff.HalfDayExcused = true
			} else if toSec == shift.EndSec%daySeconds || toSec == shift.EndSec {
				eff.ShiftEndSec = fromSec
				eff.HalfDayExcused = true
			}
		case adjustment.TypeMission:
			if eff.MissionStartSec < 0 || fromSec < eff.MissionStartSec {
				eff.MissionStartSec = fromSec
			}
			if toSec > eff.MissionEndSec {
				eff.MissionEndSec = toSec
			}
			eff.Suppress = true
		}
	}

	return eff
}
