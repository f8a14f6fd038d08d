package attendance

import (
	"fmt"
	"time"
)

const daySeconds = 24 * 3600

// localCivil shifts an absolute instant into the local civil timeline: the
// result's clock fields read as local wall time (its Location is UTC by
// construction, which keeps all arithmetic offset-free).
func localCivil(t time.Time, offsetMinutes int) time.Time {
	return t.UTC().Add(time.Duration(offsetMinutes) * time.Minute)
}

// civilDate truncates a civil instant to its calendar day.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func secondOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// atSecond materializes a second-of-day offset on a calendar day. Offsets
// past 86400 roll into the next day, which is how reattributed overnight
// punches and midnight-spanning shifts are represented.
func atSecond(date time.Time, sec int) time.Time {
	return date.Add(time.Duration(sec) * time.Second)
}

func formatClock(sec int) string {
	sec = ((sec % daySeconds) + daySeconds) % daySeconds
	return fmt.Sprintf("%02d:%02d:%02d", sec/3600, (sec%3600)/60, sec%60)
}
