package attendance

import (
	"sort"
	"strings"
	"time"

	"github.com/dawamhq/attendance-engine-go/internal/domain/adjustment"
	"github.com/dawamhq/attendance-engine-go/internal/domain/attendance"
	"github.com/dawamhq/attendance-engine-go/internal/domain/employee"
	"github.com/dawamhq/attendance-engine-go/internal/domain/holiday"
	"github.com/dawamhq/attendance-engine-go/internal/domain/leave"
	"github.com/dawamhq/attendance-engine-go/internal/domain/punch"
	"github.com/dawamhq/attendance-engine-go/internal/pkg/arabic"
)

// Engine turns a Dataset into one attendance record per employee per day.
// It holds no mutable state; a single Engine is safe for concurrent Runs.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Run evaluates every in-scope employee over [StartDate, EndDate] inclusive
// and returns the records sorted by employee code, then date. Running twice
// over the same inputs yields identical output.
func (e *Engine) Run(ds Dataset, opts Options) ([]attendance.Record, error) {
	if opts.StartDate.IsZero() || opts.EndDate.IsZero() || opts.EndDate.Before(opts.StartDate) {
		return nil, attendance.ErrInvalidDateRange
	}

	cfg := e.cfg
	if opts.TimezoneOffsetMinutes != nil {
		cfg.TimezoneOffsetMinutes = *opts.TimezoneOffsetMinutes
	}
	if opts.DefaultPermissionMinutes != nil {
		cfg.DefaultPermissionMinutes = *opts.DefaultPermissionMinutes
	}
	if opts.DefaultHalfDayMinutes != nil {
		cfg.DefaultHalfDayMinutes = *opts.DefaultHalfDayMinutes
	}

	start := civilDate(opts.StartDate)
	end := civilDate(opts.EndDate)

	filter := make(map[string]struct{}, len(opts.EmployeeCodes))
	for _, c := range opts.EmployeeCodes {
		if n := arabic.NormalizeCode(c); n != "" {
			filter[n] = struct{}{}
		}
	}
	// A requested filter whose codes all normalize away matches nobody. Only
	// an absent filter means all employees.
	filtered := len(opts.EmployeeCodes) > 0

	employees := selectEmployees(ds.Employees, filter, filtered)

	holidays := make(map[string]*holiday.OfficialHoliday, len(ds.Holidays))
	for i := range ds.Holidays {
		holidays[dateKey(ds.Holidays[i].Date)] = &ds.Holidays[i]
	}

	overrides := make(map[string]bool, len(opts.WorkedOnHolidayOverrides))
	for k, v := range opts.WorkedOnHolidayOverrides {
		overrides[normalizeOverrideKey(k)] = v
	}

	adjustments := make(map[string][]adjustment.Adjustment)
	for _, adj := range ds.Adjustments {
		key := arabic.NormalizeCode(adj.EmployeeCode) + "__" + dateKey(adj.Date)
		adjustments[key] = append(adjustments[key], adj)
	}

	effects := make(map[string][]adjustment.ImportedEffect)
	for _, eff := range ds.Effects {
		key := arabic.NormalizeCode(eff.EmployeeCode) + "__" + dateKey(eff.Date)
		effects[key] = append(effects[key], eff)
	}

	punchesByEmp := groupPunches(ds.Punches, cfg.TimezoneOffsetMinutes)

	// The trailing extra day lets an early-morning punch just past the window
	// reattach to the last processed day as its checkout.
	var dayKeys []string
	var days []time.Time
	for d := start; !d.After(end.AddDate(0, 0, 1)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
		dayKeys = append(dayKeys, dateKey(d))
	}

	var records []attendance.Record
	for _, emp := range employees {
		shifts := make(map[string]ResolvedShift, len(days))
		for _, d := range days {
			shifts[dateKey(d)] = resolveShift(cfg, emp, d, ds.Rules)
		}
		dayPunches, carryNotes := reattributeOvernight(cfg, dayKeys, punchesByEmp[emp.Code], func(key string) int {
			if s, ok := shifts[key]; ok {
				return s.StartSec
			}
			return clockOrDefault(cfg.DefaultShiftStart, cfg.DefaultShiftStart)
		})

		for i, d := range days[:len(days)-1] {
			key := dayKeys[i]
			empDayKey := emp.Code + "__" + key

			adjs := append([]adjustment.Adjustment(nil), adjustments[empDayKey]...)
			notes := append([]string(nil), carryNotes[key]...)
			if effs := effects[empDayKey]; len(effs) > 0 {
				translated, effNotes := translateEffects(cfg, shifts[key], effs, dayPunches[key])
				adjs = append(adjs, translated...)
				notes = append(notes, effNotes...)
			}

			var grant *leave.Leave
			for j := range ds.Leaves {
				if ds.Leaves[j].ActiveOn(d) && ds.Leaves[j].Scope.Matches(emp) {
					grant = &ds.Leaves[j]
					break
				}
			}

			var override *bool
			if v, ok := overrides[empDayKey]; ok {
				override = &v
			}

			rec := classifyDay(cfg, dayInput{
				emp:               emp,
				code:              emp.Code,
				date:              d,
				punches:           dayPunches[key],
				carryNotes:        notes,
				shift:             shifts[key],
				nextShiftStartSec: daySeconds + shifts[dayKeys[i+1]].StartSec,
				adjs:              adjs,
				hol:               holidays[key],
				leaveGrant:        grant,
				workedOverride:    override,
			})
			records = append(records, rec)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].EmployeeCode != records[j].EmployeeCode {
			return records[i].EmployeeCode < records[j].EmployeeCode
		}
		return records[i].Date.Before(records[j].Date)
	})
	return records, nil
}

// selectEmployees normalizes codes, drops duplicates keeping the first row,
// and applies the optional code filter.
func selectEmployees(src []employee.Employee, filter map[string]struct{}, filtered bool) []employee.Employee {
	seen := make(map[string]struct{}, len(src))
	out := make([]employee.Employee, 0, len(src))
	for _, emp := range src {
		code := arabic.NormalizeCode(emp.Code)
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		if filtered {
			if _, ok := filter[code]; !ok {
				continue
			}
		}
		seen[code] = struct{}{}
		emp.Code = code
		out = append(out, emp)
	}
	return out
}

// groupPunches buckets punch instants by normalized employee code and local
// civil day, as sorted deduplicated seconds-of-day.
func groupPunches(punches []punch.Punch, offsetMinutes int) map[string]map[string][]int {
	out := make(map[string]map[string][]int)
	for _, p := range punches {
		code := arabic.NormalizeCode(p.EmployeeCode)
		if code == "" {
			continue
		}
		local := localCivil(p.PunchedAt, offsetMinutes)
		key := dateKey(local)
		if out[code] == nil {
			out[code] = make(map[string][]int)
		}
		out[code][key] = append(out[code][key], secondOfDay(local))
	}
	for _, byDay := range out {
		for key, secs := range byDay {
			sort.Ints(secs)
			dedup := secs[:0]
			for i, s := range secs {
				if i == 0 || s != secs[i-1] {
					dedup = append(dedup, s)
				}
			}
			byDay[key] = dedup
		}
	}
	return out
}

// normalizeOverrideKey rewrites the employee-code half of a
// "<code>__<YYYY-MM-DD>" key so lookups survive code variants.
func normalizeOverrideKey(key string) string {
	i := strings.LastIndex(key, "__")
	if i < 0 {
		return key
	}
	return arabic.NormalizeCode(key[:i]) + key[i:]
}
