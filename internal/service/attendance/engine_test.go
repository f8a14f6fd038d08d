package attendance

import (
	"testing"
	"time"

	"github.com/dawamhq/attendance-engine-go/internal/domain/adjustment"
	domain "github.com/dawamhq/attendance-engine-go/internal/domain/attendance"
	"github.com/dawamhq/attendance-engine-go/internal/domain/employee"
	"github.com/dawamhq/attendance-engine-go/internal/domain/holiday"
	"github.com/dawamhq/attendance-engine-go/internal/domain/punch"
	"github.com/dawamhq/attendance-engine-go/internal/domain/rule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// localStamp converts a "2006-01-02 15:04" local civil time to the UTC
// instant a device would have recorded, assuming the default UTC+2 offset.
func localStamp(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return t.Add(-2 * time.Hour)
}

func punchAt(code, local string) punch.Punch {
	return punch.Punch{EmployeeCode: code, PunchedAt: localStamp(local)}
}

func testEmployee(code string) employee.Employee {
	return employee.Employee{Code: code, FullName: "Employee " + code, ShiftStart: "09:00"}
}

func runOne(t *testing.T, ds Dataset, opts Options) domain.Record {
	t.Helper()
	records, err := NewEngine(DefaultConfig()).Run(ds, opts)
	require.NoError(t, err)
	require.Len(t, records, 1)
	return records[0]
}

func TestRunInvalidDateRange(t *testing.T) {
	_, err := NewEngine(DefaultConfig()).Run(Dataset{}, Options{
		StartDate: date("2024-02-10"),
		EndDate:   date("2024-02-05"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestRunOneRecordPerEmployeeDayAndDeterministic(t *testing.T) {
	ds := Dataset{
		Employees: []employee.Employee{testEmployee("7"), testEmployee("12")},
		Punches: []punch.Punch{
			punchAt("7", "2024-02-05 08:55"),
			punchAt("7", "2024-02-05 17:10"),
			punchAt("12", "2024-02-06 09:40"),
		},
	}
	opts := Options{StartDate: date("2024-02-05"), EndDate: date("2024-02-07")}

	first, err := NewEngine(DefaultConfig()).Run(ds, opts)
	require.NoError(t, err)
	require.Len(t, first, 6)

	seen := map[string]bool{}
	for _, rec := range first {
		key := rec.EmployeeCode + "__" + rec.Date.Format("2006-01-02")
		assert.False(t, seen[key], "duplicate record for %s", key)
		seen[key] = true
	}

	second, err := NewEngine(DefaultConfig()).Run(ds, opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRunAbsentByDefault(t *testing.T) {
	rec := runOne(t, Dataset{Employees: []employee.Employee{testEmployee("7")}}, Options{
		StartDate: date("2024-02-05"), // Monday
		EndDate:   date("2024-02-05"),
	})

	assert.Equal(t, domain.StatusAbsent, rec.Status)
	require.Len(t, rec.Penalties, 1)
	assert.Equal(t, domain.PenaltyAbsence, rec.Penalties[0].Type)
	assert.True(t, rec.Penalties[0].Value.Equal(decimal.NewFromInt(1)))
}

func TestRunLateTiers(t *testing.T) {
	cases := []struct {
		name    string
		checkIn string
		status  domain.Status
		penalty string
	}{
		{"within grace", "2024-02-05 09:14", domain.StatusPresent, ""},
		{"quarter day", "2024-02-05 09:20", domain.StatusLate, "0.25"},
		{"half day at 35 minutes", "2024-02-05 09:35", domain.StatusLate, "0.5"},
		{"full day past an hour", "2024-02-05 10:05", domain.StatusLate, "1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := runOne(t, Dataset{
				Employees: []employee.Employee{testEmployee("7")},
				Punches: []punch.Punch{
					punchAt("7", tc.checkIn),
					punchAt("7", "2024-02-05 17:05"),
				},
			}, Options{StartDate: date("2024-02-05"), EndDate: date("2024-02-05")})

			assert.Equal(t, tc.status, rec.Status)
			if tc.penalty == "" {
				assert.Empty(t, rec.Penalties)
				return
			}
			require.Len(t, rec.Penalties, 1)
			assert.Equal(t, domain.PenaltyLateArrival, rec.Penalties[0].Type)
			assert.True(t, rec.Penalties[0].Value.Equal(decimal.RequireFromString(tc.penalty)),
				"got %s", rec.Penalties[0].Value)
		})
	}
}

func TestRunMissingStampBeatsEarlyLeave(t *testing.T) {
	rec := runOne(t, Dataset{
		Employees: []employee.Employee{testEmployee("7")},
		Punches:   []punch.Punch{punchAt("7", "2024-02-05 08:58")},
	}, Options{StartDate: date("2024-02-05"), EndDate: date("2024-02-05")})

	assert.Equal(t, domain.StatusPresent, rec.Status)
	require.Len(t, rec.Penalties, 1)
	assert.Equal(t, domain.PenaltyMissingStamp, rec.Penalties[0].Type)
	assert.True(t, rec.Penalties[0].Value.Equal(decimal.RequireFromString("0.5")))
}

func TestRunEarlyLeave(t *testing.T) {
	rec := runOne(t, Dataset{
		Employees: []employee.Employee{testEmployee("7")},
		Punches: []punch.Punch{
			punchAt("7", "2024-02-05 08:58"),
			punchAt("7", "2024-02-05 16:10"),
		},
	}, Options{StartDate: date("2024-02-05"), EndDate: date("2024-02-05")})

	assert.Equal(t, domain.StatusPresent, rec.Status)
	require.Len(t, rec.Penalties, 1)
	assert.Equal(t, domain.PenaltyEarlyLeave, rec.Penalties[0].Type)
}

func TestRunMissionSuppressesPenalties(t *testing.T) {
	rec := runOne(t, Dataset{
		Employees: []employee.Employee{testEmployee("7")},
		Effects: []adjustment.ImportedEffect{{
			EmployeeCode: "7",
			Date:         date("2024-02-05"),
			RawType:      "Mission",
			FromTime:     "09:00:00",
			ToTime:       "17:00:00",
		}},
	}, Options{StartDate: date("2024-02-05"), EndDate: date("2024-02-05")})

	assert.Equal(t, domain.StatusPresent, rec.Status)
	assert.Empty(t, rec.Penalties)
	require.NotNil(t, rec.MissionStart)
	require.NotNil(t, rec.MissionEnd)
}

func TestRunMissionSuppressesLateAndEarlyLeave(t *testing.T) {
	// 90 minutes late in, 2 hours early out, but the mission spans the whole
	// shift so neither counts.
	rec := runOne(t, Dataset{
		Employees: []employee.Employee{testEmployee("7")},
		Punches: []punch.Punch{
			punchAt("7", "2024-02-05 10:30"),
			punchAt("7", "2024-02-05 15:00"),
		},
		Effects: []adjustment.ImportedEffect{{
			EmployeeCode: "7",
			Date:         date("2024-02-05"),
			RawType:      "Mission",
			FromTime:     "09:00:00",
			ToTime:       "17:00:00",
		}},
	}, Options{StartDate: date("2024-02-05"), EndDate: date("2024-02-05")})

	assert.Equal(t, domain.StatusPresent, rec.Status)
	assert.Empty(t, rec.Penalties)
	assert.True(t, rec.PenaltyTotal().IsZero())
}

func TestRunMissionEffectsMerge(t *testing.T) {
	rec := runOne(t, Dataset{
		Employees: []employee.Employee{testEmployee("7")},
		Effects: []adjustment.ImportedEffect{
			{EmployeeCode: "7", Date: date("2024-02-05"), RawType: "Mission", FromTime: "09:00:00", ToTime: "13:00:00"},
			{EmployeeCode: "7", Date: date("2024-02-05"), RawType: "Mission", FromTime: "12:00:00", ToTime: "17:00:00"},
		},
	}, Options{StartDate: date("2024-02-05"), EndDate: date("2024-02-05")})

	require.NotNil(t, rec.MissionStart)
	require.NotNil(t, rec.MissionEnd)
	assert.Equal(t, "09:00", rec.MissionStart.Format("15:04"))
	assert.Equal(t, "17:00", rec.MissionEnd.Format("15:04"))
	assert.Contains(t, rec.Notes, "merged 2 mission effects")
}

func TestRunFriday(t *testing.T) {
	t.Run("no punches", func(t *testing.T) {
		rec := runOne(t, Dataset{Employees: []employee.Employee{testEmployee("7")}}, Options{
			StartDate: date("2024-02-09"), // Friday
			EndDate:   date("2024-02-09"),
		})
		assert.Equal(t, domain.StatusFriday, rec.Status)
		assert.Empty(t, rec.Penalties)
		assert.Equal(t, 0, rec.CompDaysTotal)
	})

	t.Run("attended inside the midday window", func(t *testing.T) {
		rec := runOne(t, Dataset{
			Employees: []employee.Employee{testEmployee("7")},
			Punches:   []punch.Punch{punchAt("7", "2024-02-09 12:30")},
		}, Options{StartDate: date("2024-02-09"), EndDate: date("2024-02-09")})

		assert.Equal(t, domain.StatusFridayAttended, rec.Status)
		assert.Equal(t, 1, rec.CompDaysFriday)
		assert.Equal(t, 1, rec.CompDaysTotal)
	})

	t.Run("stray punch outside the window", func(t *testing.T) {
		rec := runOne(t, Dataset{
			Employees: []employee.Employee{testEmployee("7")},
			Punches:   []punch.Punch{punchAt("7", "2024-02-09 07:10")},
		}, Options{StartDate: date("2024-02-09"), EndDate: date("2024-02-09")})

		assert.Equal(t, domain.StatusFriday, rec.Status)
	})
}

func TestRunOfficialHoliday(t *testing.T) {
	hol := holiday.OfficialHoliday{Date: date("2024-02-05"), Name: "National Day"}

	t.Run("not worked", func(t *testing.T) {
		rec := runOne(t, Dataset{
			Employees: []employee.Employee{testEmployee("7")},
			Holidays:  []holiday.OfficialHoliday{hol},
		}, Options{StartDate: date("2024-02-05"), EndDate: date("2024-02-05")})

		assert.Equal(t, domain.StatusOfficialHoliday, rec.Status)
		assert.True(t, rec.IsOfficialHoliday)
		require.NotNil(t, rec.WorkedOnOfficialHoliday)
		assert.False(t, *rec.WorkedOnOfficialHoliday)
		assert.Equal(t, 0, rec.CompDaysOfficial)
	})

	t.Run("worked", func(t *testing.T) {
		rec := runOne(t, Dataset{
			Employees: []employee.Employee{testEmployee("7")},
			Holidays:  []holiday.OfficialHoliday{hol},
			Punches: []punch.Punch{
				punchAt("7", "2024-02-05 09:05"),
				punchAt("7", "2024-02-05 15:40"),
			},
		}, Options{StartDate: date("2024-02-05"), EndDate: date("2024-02-05")})

		assert.Equal(t, domain.StatusOfficialHoliday, rec.Status)
		require.NotNil(t, rec.WorkedOnOfficialHoliday)
		assert.True(t, *rec.WorkedOnOfficialHoliday)
		assert.Equal(t, 1, rec.CompDaysOfficial)
		assert.Empty(t, rec.Penalties)
	})

	t.Run("manual override wins over punches", func(t *testing.T) {
		rec := runOne(t, Dataset{
			Employees: []employee.Employee{testEmployee("7")},
			Holidays:  []holiday.OfficialHoliday{hol},
			Punches:   []punch.Punch{punchAt("7", "2024-02-05 09:05"), punchAt("7", "2024-02-05 15:40")},
		}, Options{
			StartDate:                date("2024-02-05"),
			EndDate:                  date("2024-02-05"),
			WorkedOnHolidayOverrides: map[string]bool{"٠٠٧__2024-02-05": false},
		})

		require.NotNil(t, rec.WorkedOnOfficialHoliday)
		assert.False(t, *rec.WorkedOnOfficialHoliday)
		assert.Equal(t, 0, rec.CompDaysOfficial)
	})
}

func TestRunJoiningPeriod(t *testing.T) {
	hire := date("2024-02-07")
	emp := testEmployee("7")
	emp.HireDate = &hire

	records, err := NewEngine(DefaultConfig()).Run(Dataset{
		Employees: []employee.Employee{emp},
	}, Options{StartDate: date("2024-02-05"), EndDate: date("2024-02-07")})
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, domain.StatusJoiningPeriod, records[0].Status)
	assert.Equal(t, domain.StatusJoiningPeriod, records[1].Status)
	assert.Empty(t, records[0].Penalties)
	assert.Equal(t, domain.StatusAbsent, records[2].Status)
}

func TestRunTerminationPeriod(t *testing.T) {
	term := date("2024-02-05")
	emp := testEmployee("7")
	emp.TerminationDate = &term

	records, err := NewEngine(DefaultConfig()).Run(Dataset{
		Employees: []employee.Employee{emp},
	}, Options{StartDate: date("2024-02-06"), EndDate: date("2024-02-07")})
	require.NoError(t, err)
	require.Len(t, records, 2)

	for _, rec := range records {
		assert.Equal(t, domain.StatusTerminationPeriod, rec.Status)
		assert.Equal(t, 1, rec.LeaveDeductionDays)
		assert.Equal(t, 1, rec.TerminationPeriodDays)
		assert.Empty(t, rec.Penalties)
	}
}

func TestRunCustomShiftRulePriority(t *testing.T) {
	rules := []rule.SpecialRule{
		{
			Scope:      rule.ParseScope("الكل"),
			StartDate:  date("2024-02-01"),
			EndDate:    date("2024-02-29"),
			Priority:   1,
			Type:       rule.RuleCustomShift,
			ShiftStart: "10:00",
			ShiftEnd:   "18:00",
		},
		{
			Scope:      rule.ParseScope("emp:7"),
			StartDate:  date("2024-02-01"),
			EndDate:    date("2024-02-29"),
			Priority:   5,
			Type:       rule.RuleCustomShift,
			ShiftStart: "11:00",
			ShiftEnd:   "19:00",
		},
	}

	rec := runOne(t, Dataset{
		Employees: []employee.Employee{testEmployee("7")},
		Rules:     rules,
		Punches: []punch.Punch{
			punchAt("7", "2024-02-05 11:10"),
			punchAt("7", "2024-02-05 19:05"),
		},
	}, Options{StartDate: date("2024-02-05"), EndDate: date("2024-02-05")})

	// 11:10 is inside grace for the priority-5 shift, late for the other
	assert.Equal(t, domain.StatusPresent, rec.Status)
	assert.Empty(t, rec.Penalties)
}

func TestRunOvernightReattribution(t *testing.T) {
	ds := Dataset{
		Employees: []employee.Employee{testEmployee("7")},
		Punches: []punch.Punch{
			punchAt("7", "2024-02-05 08:50"),
			punchAt("7", "2024-02-06 01:30"),
			punchAt("7", "2024-02-06 08:55"),
			punchAt("7", "2024-02-06 17:05"),
		},
	}
	records, err := NewEngine(DefaultConfig()).Run(ds, Options{
		StartDate: date("2024-02-05"),
		EndDate:   date("2024-02-06"),
	})
	require.NoError(t, err)
	require.Len(t, records, 2)

	day1, day2 := records[0], records[1]

	// the 01:30 punch becomes day one's checkout
	assert.Equal(t, domain.StatusPresent, day1.Status)
	assert.Empty(t, day1.Penalties)
	require.NotNil(t, day1.CheckOut)
	assert.Equal(t, "01:30", day1.CheckOut.Format("15:04"))
	assert.NotEmpty(t, day1.Notes)

	assert.Equal(t, domain.StatusPresent, day2.Status)
	assert.Empty(t, day2.Penalties)
	require.NotNil(t, day2.CheckIn)
	assert.Equal(t, "08:55", day2.CheckIn.Format("15:04"))
}

func TestRunOvertime(t *testing.T) {
	rec := runOne(t, Dataset{
		Employees: []employee.Employee{testEmployee("7")},
		Punches: []punch.Punch{
			punchAt("7", "2024-02-05 08:55"),
			punchAt("7", "2024-02-05 20:30"),
		},
	}, Options{StartDate: date("2024-02-05"), EndDate: date("2024-02-05")})

	// counting starts one hour after the 17:00 shift end
	assert.Equal(t, 2, rec.OvertimeHours)
}

func TestRunFullDayAdjustmentFallback(t *testing.T) {
	cases := []struct {
		typ    adjustment.Type
		status domain.Status
	}{
		{adjustment.TypeExcusedAbsence, domain.StatusExcusedAbsence},
		{adjustment.TypeDeductionLeave, domain.StatusDeductionLeave},
		{adjustment.TypeLeaveFromBalance, domain.StatusLeaveFromBalance},
		{adjustment.TypeCompDayUsed, domain.StatusCompDayUsed},
	}

	for _, tc := range cases {
		t.Run(string(tc.typ), func(t *testing.T) {
			rec := runOne(t, Dataset{
				Employees: []employee.Employee{testEmployee("7")},
				Adjustments: []adjustment.Adjustment{{
					EmployeeCode: "7",
					Date:         date("2024-02-05"),
					Type:         tc.typ,
					FromTime:     "00:00:00",
					ToTime:       "23:59:59",
				}},
			}, Options{StartDate: date("2024-02-05"), EndDate: date("2024-02-05")})

			assert.Equal(t, tc.status, rec.Status)
			assert.Empty(t, rec.Penalties)
		})
	}
}

func TestRunArabicCodeVariantsCollapse(t *testing.T) {
	ds := Dataset{
		Employees: []employee.Employee{testEmployee("007")},
		Punches: []punch.Punch{
			punchAt("٧", "2024-02-05 08:55"),
			punchAt("7", "2024-02-05 17:05"),
		},
	}
	rec := runOne(t, ds, Options{
		StartDate:     date("2024-02-05"),
		EndDate:       date("2024-02-05"),
		EmployeeCodes: []string{"٠٠٧"},
	})

	assert.Equal(t, "7", rec.EmployeeCode)
	assert.Equal(t, domain.StatusPresent, rec.Status)
	assert.Empty(t, rec.Penalties)
}

func TestRunEmployeeFilterNormalizingToNothingMatchesNobody(t *testing.T) {
	ds := Dataset{
		Employees: []employee.Employee{testEmployee("7"), testEmployee("8")},
	}
	opts := Options{
		StartDate: date("2024-02-05"),
		EndDate:   date("2024-02-05"),
		// every entry strips to the empty string
		EmployeeCodes: []string{"\u200b", "  "},
	}

	records, err := NewEngine(DefaultConfig()).Run(ds, opts)
	require.NoError(t, err)
	assert.Empty(t, records)
}
