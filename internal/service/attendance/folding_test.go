package attendance

import (
	"testing"

	"github.com/dawamhq/attendance-engine-go/internal/domain/adjustment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardShift() ResolvedShift {
	return ResolvedShift{StartSec: clock(9, 0), EndSec: clock(17, 0)}
}

func TestTranslateEffects(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("unknown label becomes a note", func(t *testing.T) {
		adjs, notes := translateEffects(cfg, standardShift(), []adjustment.ImportedEffect{
			{EmployeeCode: "7", Date: date("2024-02-05"), RawType: "mystery row"},
		}, nil)
		assert.Empty(t, adjs)
		require.Len(t, notes, 1)
		assert.Contains(t, notes[0], "mystery row")
	})

	t.Run("arabic labels fold to canonical types", func(t *testing.T) {
		adjs, _ := translateEffects(cfg, standardShift(), []adjustment.ImportedEffect{
			{EmployeeCode: "7", Date: date("2024-02-05"), RawType: "مأمورية", FromTime: "10:00", ToTime: "14:00"},
		}, nil)
		require.Len(t, adjs, 1)
		assert.Equal(t, adjustment.TypeMission, adjs[0].Type)
	})

	t.Run("morning permission defaults to one hour from shift start", func(t *testing.T) {
		adjs, _ := translateEffects(cfg, standardShift(), []adjustment.ImportedEffect{
			{EmployeeCode: "7", Date: date("2024-02-05"), RawType: "Morning Permission"},
		}, nil)
		require.Len(t, adjs, 1)
		assert.Equal(t, "09:00:00", adjs[0].FromTime)
		assert.Equal(t, "10:00:00", adjs[0].ToTime)
	})

	t.Run("mission without hours is dropped with a note", func(t *testing.T) {
		adjs, notes := translateEffects(cfg, standardShift(), []adjustment.ImportedEffect{
			{EmployeeCode: "7", Date: date("2024-02-05"), RawType: "Mission"},
		}, nil)
		assert.Empty(t, adjs)
		require.Len(t, notes, 1)
		assert.Contains(t, notes[0], "needs hours")
	})

	t.Run("half day side inferred from checkout", func(t *testing.T) {
		// checkout well before shift end, the morning was worked
		punches := []int{clock(9, 2), clock(13, 0)}
		adjs, _ := translateEffects(cfg, standardShift(), []adjustment.ImportedEffect{
			{EmployeeCode: "7", Date: date("2024-02-05"), RawType: "Half Day"},
		}, punches)
		require.Len(t, adjs, 1)
		assert.Equal(t, adjustment.TypeHalfDayLeave, adjs[0].Type)
		assert.Equal(t, "13:00:00", adjs[0].FromTime)
		assert.Equal(t, "17:00:00", adjs[0].ToTime)
	})
}

func TestFoldAdjustments(t *testing.T) {
	day := date("2024-02-05")
	adj := func(typ adjustment.Type, from, to string) adjustment.Adjustment {
		return adjustment.Adjustment{EmployeeCode: "7", Date: day, Type: typ, FromTime: from, ToTime: to}
	}

	t.Run("morning permission raises the start", func(t *testing.T) {
		eff := foldAdjustments(standardShift(), []adjustment.Adjustment{
			adj(adjustment.TypeMorningPermission, "09:00", "10:30"),
		})
		assert.Equal(t, clock(10, 30), eff.ShiftStartSec)
		assert.Equal(t, clock(17, 0), eff.ShiftEndSec)
	})

	t.Run("evening permission lowers the end", func(t *testing.T) {
		eff := foldAdjustments(standardShift(), []adjustment.Adjustment{
			adj(adjustment.TypeEveningPermission, "15:00", "17:00"),
		})
		assert.Equal(t, clock(15, 0), eff.ShiftEndSec)
	})

	t.Run("mission widens and suppresses", func(t *testing.T) {
		eff := foldAdjustments(standardShift(), []adjustment.Adjustment{
			adj(adjustment.TypeMission, "08:00", "18:00"),
		})
		assert.True(t, eff.Suppress)
		assert.True(t, eff.HasMission())
		assert.Equal(t, clock(8, 0), eff.MissionStartSec)
		assert.Equal(t, clock(18, 0), eff.MissionEndSec)
	})

	t.Run("full day types set flags only", func(t *testing.T) {
		eff := foldAdjustments(standardShift(), []adjustment.Adjustment{
			adj(adjustment.TypeDeductionLeave, "00:00:00", "23:59:59"),
		})
		assert.True(t, eff.FullDay[adjustment.TypeDeductionLeave])
		assert.Equal(t, clock(9, 0), eff.ShiftStartSec)
	})
}
