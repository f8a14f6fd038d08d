package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReattributeOvernight(t *testing.T) {
	cfg := DefaultConfig()
	days := []string{"2024-02-05", "2024-02-06"}
	nineToFive := func(string) int { return clock(9, 0) }

	t.Run("moves early punch when yesterday misses its checkout", func(t *testing.T) {
		punches := map[string][]int{
			"2024-02-05": {clock(8, 50)},
			"2024-02-06": {clock(1, 30), clock(8, 55)},
		}
		out, notes := reattributeOvernight(cfg, days, punches, nineToFive)

		assert.Equal(t, []int{clock(8, 50), clock(1, 30) + daySeconds}, out["2024-02-05"])
		assert.Equal(t, []int{clock(8, 55)}, out["2024-02-06"])
		require.Len(t, notes["2024-02-05"], 1)
		assert.Contains(t, notes["2024-02-05"][0], "01:30")
	})

	t.Run("keeps early punch without a normal arrival", func(t *testing.T) {
		punches := map[string][]int{
			"2024-02-05": {clock(8, 50)},
			"2024-02-06": {clock(1, 30)},
		}
		out, _ := reattributeOvernight(cfg, days, punches, nineToFive)

		assert.Equal(t, []int{clock(8, 50)}, out["2024-02-05"])
		assert.Equal(t, []int{clock(1, 30)}, out["2024-02-06"])
	})

	t.Run("keeps early punch when yesterday is empty", func(t *testing.T) {
		punches := map[string][]int{
			"2024-02-06": {clock(1, 30), clock(8, 55)},
		}
		out, _ := reattributeOvernight(cfg, days, punches, nineToFive)
		assert.Equal(t, []int{clock(1, 30), clock(8, 55)}, out["2024-02-06"])
	})

	t.Run("early shift edge guard keeps plausible arrivals", func(t *testing.T) {
		sevenStart := func(string) int { return clock(7, 0) }
		punches := map[string][]int{
			"2024-02-05": {clock(7, 5)},
			"2024-02-06": {clock(4, 45)},
		}
		out, _ := reattributeOvernight(cfg, days, punches, sevenStart)

		// 04:45 sits in the early-arrival band for a 07:00 shift
		assert.Equal(t, []int{clock(4, 45)}, out["2024-02-06"])
		assert.Equal(t, []int{clock(7, 5)}, out["2024-02-05"])
	})

	t.Run("does not mutate the input map", func(t *testing.T) {
		punches := map[string][]int{
			"2024-02-05": {clock(8, 50)},
			"2024-02-06": {clock(1, 30), clock(8, 55)},
		}
		_, _ = reattributeOvernight(cfg, days, punches, nineToFive)
		assert.Equal(t, []int{clock(1, 30), clock(8, 55)}, punches["2024-02-06"])
	})
}
