package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/dawamhq/attendance-engine-go/internal/domain/attendance"
	"github.com/dawamhq/attendance-engine-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordUpsertIsIdempotent(t *testing.T) {
	SkipIfUnavailable(t)

	setup, err := NewTestDatabase()
	require.NoError(t, err)
	defer setup.Close()

	ctx := context.Background()
	require.NoError(t, setup.TruncateAllTables(ctx))

	repo := postgresql.NewRecordRepository(setup.DB)
	date := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
	minutes := 35

	rec := attendance.Record{
		EmployeeCode: "7",
		Date:         date,
		TotalHours:   decimal.RequireFromString("7.25"),
		Status:       attendance.StatusLate,
		Penalties: []attendance.Penalty{{
			Type:    attendance.PenaltyLateArrival,
			Value:   decimal.RequireFromString("0.5"),
			Minutes: &minutes,
		}},
		Notes: []string{"device sync delayed"},
	}

	first, err := repo.UpsertBatch(ctx, []attendance.Record{rec})
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.NotEmpty(t, first[0].ID)

	rec.Status = attendance.StatusPresent
	rec.Penalties = nil
	second, err := repo.UpsertBatch(ctx, []attendance.Record{rec})
	require.NoError(t, err)
	require.Len(t, second, 1)

	// same (employee_code, date) row, replaced in place
	assert.Equal(t, first[0].ID, second[0].ID)

	stored, err := repo.GetByID(ctx, first[0].ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, stored.Status)
	assert.Empty(t, stored.Penalties)
	assert.True(t, stored.TotalHours.Equal(decimal.RequireFromString("7.25")))
}

func TestRecordListFilters(t *testing.T) {
	SkipIfUnavailable(t)

	setup, err := NewTestDatabase()
	require.NoError(t, err)
	defer setup.Close()

	ctx := context.Background()
	require.NoError(t, setup.TruncateAllTables(ctx))

	repo := postgresql.NewRecordRepository(setup.DB)
	base := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)

	var records []attendance.Record
	for day := 0; day < 3; day++ {
		for _, code := range []string{"7", "12"} {
			records = append(records, attendance.Record{
				EmployeeCode: code,
				Date:         base.AddDate(0, 0, day),
				TotalHours:   decimal.Zero,
				Status:       attendance.StatusAbsent,
				Penalties: []attendance.Penalty{{
					Type:  attendance.PenaltyAbsence,
					Value: decimal.NewFromInt(1),
				}},
			})
		}
	}
	_, err = repo.UpsertBatch(ctx, records)
	require.NoError(t, err)

	code := "7"
	filter := attendance.RecordFilter{EmployeeCode: &code}
	require.NoError(t, filter.Validate())

	got, total, err := repo.List(ctx, filter)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, got, 3)
	for _, rec := range got {
		assert.Equal(t, "7", rec.EmployeeCode)
	}
}
