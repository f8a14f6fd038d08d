package attendance

import (
	"fmt"
	"sort"
)

// reattributeOvernight is the pre-pass over one employee's punches for the
// whole requested range. A punch recorded shortly after midnight may be the
// previous day's late checkout rather than a fresh arrival; such punches move
// to the previous day's bucket (offset by 24h) and are excluded from their
// recording day.
//
// The transform is immutable: it returns fresh buckets plus per-day notes and
// never touches the input map.
func reattributeOvernight(cfg Config, dayKeys []string, punchesByDay map[string][]int, shiftStartSec func(key string) int) (map[string][]int, map[string][]string) {
	out := make(map[string][]int, len(punchesByDay))
	for key, secs := range punchesByDay {
		out[key] = append([]int(nil), secs...)
	}
	notes := make(map[string][]string)

	limit := cfg.AfterMidnightHourLimit * 3600

	for i := 1; i < len(dayKeys); i++ {
		key, prevKey := dayKeys[i], dayKeys[i-1]
		today := out[key]
		if len(today) == 0 {
			continue
		}

		arrival := cfg.normalArrivalWindow(shiftStartSec(key))
		edge := cfg.EarlyShiftEdge

		var kept []int
		for idx, sec := range today {
			if sec >= limit {
				kept = append(kept, sec)
				continue
			}

			hasNormalArrival := false
			for j, other := range today {
				if j != idx && arrival.Contains(other) {
					hasNormalArrival = true
					break
				}
			}

			// Early-shift edge: plausibly a legitimate early arrival, keep it.
			if shiftStartSec(key) <= edge.MaxShiftStartSec &&
				sec >= edge.PunchFromSec && sec <= edge.PunchToSec &&
				!hasNormalArrival {
				kept = append(kept, sec)
				continue
			}

			prev := out[prevKey]
			move := false
			if len(prev) >= 1 {
				if len(prev) < 2 && hasNormalArrival {
					// yesterday is missing its checkout and today already has
					// a real arrival: this is yesterday's checkout
					move = true
				} else if len(prev) >= 2 && hasNormalArrival {
					// ambiguous double punch, resolved in favor of moving it
					move = true
				}
			}
			if !move {
				kept = append(kept, sec)
				continue
			}

			out[prevKey] = append(out[prevKey], sec+daySeconds)
			sort.Ints(out[prevKey])
			notes[prevKey] = append(notes[prevKey],
				fmt.Sprintf("late checkout at %s (%s)", formatClock(sec)[:5], key))
		}
		out[key] = kept
	}

	return out, notes
}
