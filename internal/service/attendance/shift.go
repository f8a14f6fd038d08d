package attendance

import (
	"sort"
	"time"

	"github.com/dawamhq/attendance-engine-go/internal/domain/employee"
	"github.com/dawamhq/attendance-engine-go/internal/domain/rule"
	"github.com/dawamhq/attendance-engine-go/internal/pkg/validator"
)

// ResolvedShift is the outcome of shift resolution for one employee-day.
// Times are seconds since local midnight; EndSec exceeds 86400 when a custom
// shift spans midnight.
type ResolvedShift struct {
	StartSec int
	EndSec   int
	Weekday  time.Weekday

	// Active holds every rule in effect for the day, priority-sorted, for
	// downstream flag checks.
	Active []rule.SpecialRule

	CustomShift   bool
	Exempt        bool
	OvernightStay bool
	ExemptNote    string
}

// resolveShift finds the rules active on date for the employee and derives
// the day's shift window. The highest-priority custom_shift rule wins
// outright; ties break by input order (sort is stable). Without one, the
// short day gets the reduced shift and every other day gets the employee's
// default start plus the configured span.
func resolveShift(cfg Config, emp employee.Employee, date time.Time, rules []rule.SpecialRule) ResolvedShift {
	resolved := ResolvedShift{Weekday: date.Weekday()}

	for _, r := range rules {
		if r.ActiveOn(date) && r.Scope.Matches(emp) {
			resolved.Active = append(resolved.Active, r)
		}
	}
	sort.SliceStable(resolved.Active, func(i, j int) bool {
		return resolved.Active[i].Priority > resolved.Active[j].Priority
	})

	for _, r := range resolved.Active {
		switch r.Type {
		case rule.RuleAttendanceExempt:
			resolved.Exempt = true
			if resolved.ExemptNote == "" {
				resolved.ExemptNote = r.Note
			}
		case rule.RuleOvernightStay:
			resolved.OvernightStay = true
		case rule.RuleCustomShift:
			if resolved.CustomShift {
				continue // a higher-priority custom shift already won
			}
			resolved.CustomShift = true
			resolved.StartSec = clockOrDefault(r.ShiftStart, cfg.CustomShiftDefaultStart)
			resolved.EndSec = clockOrDefault(r.ShiftEnd, cfg.CustomShiftDefaultEnd)
		}
	}

	if !resolved.CustomShift {
		if resolved.Weekday == cfg.ShortDay {
			resolved.StartSec = clockOrDefault(cfg.ShortDayShiftStart, cfg.ShortDayShiftStart)
			resolved.EndSec = clockOrDefault(cfg.ShortDayShiftEnd, cfg.ShortDayShiftEnd)
		} else {
			resolved.StartSec = clockOrDefault(emp.ShiftStart, cfg.DefaultShiftStart)
			resolved.EndSec = resolved.StartSec + cfg.DefaultShiftSpanHours*3600
		}
	}

	// custom shift spanning midnight
	if resolved.EndSec <= resolved.StartSec {
		resolved.EndSec += 24 * 3600
	}

	return resolved
}

func clockOrDefault(s, fallback string) int {
	if sec, ok := validator.ClockTimeSeconds(s); ok {
		return sec
	}
	sec, _ := validator.ClockTimeSeconds(fallback)
	return sec
}
