package attendance

import (
	"time"
)

// Window is a local clock-time window in seconds since midnight.
type Window struct {
	FromSec int
	ToSec   int
}

// Contains reports whether sec falls inside the window (inclusive).
func (w Window) Contains(sec int) bool {
	return sec >= w.FromSec && sec <= w.ToSec
}

// EarlyShiftEdge guards the overnight reattribution heuristic: a punch in
// [PunchFromSec, PunchToSec] on a day whose shift starts at or before
// MaxShiftStartSec, with no normal-arrival punch that day, is treated as a
// legitimate early arrival and never moved to the previous day.
type EarlyShiftEdge struct {
	MaxShiftStartSec int
	PunchFromSec     int
	PunchToSec       int
}

// Config collects every tunable the engine consults. Values are explicit so
// tests can vary them deterministically; DefaultConfig carries the tuned
// production values.
type Config struct {
	// TimezoneOffsetMinutes is added to UTC to get local civil time.
	TimezoneOffsetMinutes int

	GraceMinutes int

	// Shift defaults
	DefaultShiftStart       string // employee fallback when no default shift start is set
	DefaultShiftSpanHours   int    // ordinary day: employee shift start + span
	CustomShiftDefaultStart string // custom_shift rule with blank params
	CustomShiftDefaultEnd   string
	ShortDayShiftStart      string // reduced shift on the short day
	ShortDayShiftEnd        string

	RestDay  time.Weekday // designated weekly rest day
	ShortDay time.Weekday // designated reduced-shift day

	DefaultPermissionMinutes int
	DefaultHalfDayMinutes    int

	// HalfDaySideSlackMinutes is the distance from a shift boundary beyond
	// which punches imply which half of the day a half-day leave covers.
	HalfDaySideSlackMinutes int

	// Overnight reattribution
	AfterMidnightHourLimit int // punches with local hour < limit are candidates
	EarlyShiftEdge         EarlyShiftEdge
	// NormalArrival maps a shift start hour to the local window in which a
	// punch counts as a fresh same-day arrival. Empirically tuned; see the
	// default table.
	NormalArrival        map[int]Window
	NormalArrivalDefault Window

	// RestDayAttendance are the alternative windows a punch must hit for a
	// rest day to count as attended.
	RestDayAttendance []Window

	// OvertimeLagMinutes is the gap after the effective shift end before
	// overtime starts counting.
	OvertimeLagMinutes int
}

func clock(h, m int) int { return h*3600 + m*60 }

// DefaultConfig returns the production defaults: UTC+2 home timezone,
// 09:00 to 17:00 base shift, Saturday 10:00 to 16:00, Friday rest day and the
// tuned overnight heuristics.
func DefaultConfig() Config {
	return Config{
		TimezoneOffsetMinutes: 120,

		GraceMinutes: 15,

		DefaultShiftStart:       "09:00",
		DefaultShiftSpanHours:   8,
		CustomShiftDefaultStart: "09:00",
		CustomShiftDefaultEnd:   "17:00",
		ShortDayShiftStart:      "10:00",
		ShortDayShiftEnd:        "16:00",

		RestDay:  time.Friday,
		ShortDay: time.Saturday,

		DefaultPermissionMinutes: 60,
		DefaultHalfDayMinutes:    240,
		HalfDaySideSlackMinutes:  120,

		AfterMidnightHourLimit: 6,
		EarlyShiftEdge: EarlyShiftEdge{
			MaxShiftStartSec: clock(7, 0),
			PunchFromSec:     clock(4, 30),
			PunchToSec:       clock(5, 0),
		},
		// Tuned per shift start hour; not derived from a formula.
		NormalArrival: map[int]Window{
			6:  {clock(5, 30), clock(11, 0)},
			7:  {clock(6, 0), clock(12, 0)},
			8:  {clock(6, 30), clock(13, 0)},
			9:  {clock(7, 0), clock(14, 0)},
			10: {clock(8, 0), clock(15, 0)},
		},
		NormalArrivalDefault: Window{clock(6, 0), clock(12, 0)},

		RestDayAttendance: []Window{
			{clock(11, 0), clock(16, 0)},
			{clock(12, 0), clock(17, 0)},
		},

		OvertimeLagMinutes: 60,
	}
}

// normalArrivalWindow returns the fresh-arrival window for a shift starting
// at the given second of day.
func (c Config) normalArrivalWindow(shiftStartSec int) Window {
	if w, ok := c.NormalArrival[shiftStartSec/3600]; ok {
		return w
	}
	return c.NormalArrivalDefault
}
