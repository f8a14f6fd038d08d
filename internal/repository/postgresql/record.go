package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dawamhq/attendance-engine-go/internal/domain/attendance"
	"github.com/dawamhq/attendance-engine-go/internal/pkg/arabic"
	"github.com/dawamhq/attendance-engine-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type recordRepository struct {
	db *database.DB
}

func NewRecordRepository(db *database.DB) attendance.RecordRepository {
	return &recordRepository{db: db}
}

// dbPenalty is the JSONB shape penalties are stored in. The value keeps its
// exact decimal text form.
type dbPenalty struct {
	Type    string `json:"type"`
	Value   string `json:"value"`
	Minutes *int   `json:"minutes,omitempty"`
}

func marshalPenalties(penalties []attendance.Penalty) ([]byte, error) {
	out := make([]dbPenalty, 0, len(penalties))
	for _, p := range penalties {
		out = append(out, dbPenalty{
			Type:    string(p.Type),
			Value:   p.Value.String(),
			Minutes: p.Minutes,
		})
	}
	return json.Marshal(out)
}

func unmarshalPenalties(raw []byte) ([]attendance.Penalty, error) {
	var stored []dbPenalty
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode penalties: %w", err)
	}
	out := make([]attendance.Penalty, 0, len(stored))
	for _, p := range stored {
		value, err := decimal.NewFromString(p.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to decode penalty value %q: %w", p.Value, err)
		}
		out = append(out, attendance.Penalty{
			Type:    attendance.PenaltyType(p.Type),
			Value:   value,
			Minutes: p.Minutes,
		})
	}
	return out, nil
}

const recordColumns = `
	id, employee_code, date, check_in, check_out, total_hours, overtime_hours,
	status, penalties, notes, mission_start, mission_end, half_day_excused,
	is_official_holiday, worked_on_official_holiday,
	comp_days_friday, comp_days_official, comp_days_total, comp_days_used,
	leave_deduction_days, excused_absence_days, termination_period_days,
	created_at, updated_at
`

// UpsertBatch implements attendance.RecordRepository. Records are keyed on
// (employee_code, date) so re-processing a range replaces the previous run.
func (r *recordRepository) UpsertBatch(ctx context.Context, records []attendance.Record) ([]attendance.Record, error) {
	stored := make([]attendance.Record, 0, len(records))

	err := WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO attendance_records (
				id, employee_code, date, check_in, check_out, total_hours, overtime_hours,
				status, penalties, notes, mission_start, mission_end, half_day_excused,
				is_official_holiday, worked_on_official_holiday,
				comp_days_friday, comp_days_official, comp_days_total, comp_days_used,
				leave_deduction_days, excused_absence_days, termination_period_days
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
				$16, $17, $18, $19, $20, $21, $22
			)
			ON CONFLICT (employee_code, date) DO UPDATE SET
				check_in = EXCLUDED.check_in,
				check_out = EXCLUDED.check_out,
				total_hours = EXCLUDED.total_hours,
				overtime_hours = EXCLUDED.overtime_hours,
				status = EXCLUDED.status,
				penalties = EXCLUDED.penalties,
				notes = EXCLUDED.notes,
				mission_start = EXCLUDED.mission_start,
				mission_end = EXCLUDED.mission_end,
				half_day_excused = EXCLUDED.half_day_excused,
				is_official_holiday = EXCLUDED.is_official_holiday,
				worked_on_official_holiday = EXCLUDED.worked_on_official_holiday,
				comp_days_friday = EXCLUDED.comp_days_friday,
				comp_days_official = EXCLUDED.comp_days_official,
				comp_days_total = EXCLUDED.comp_days_total,
				comp_days_used = EXCLUDED.comp_days_used,
				leave_deduction_days = EXCLUDED.leave_deduction_days,
				excused_absence_days = EXCLUDED.excused_absence_days,
				termination_period_days = EXCLUDED.termination_period_days,
				updated_at = now()
			RETURNING id, created_at, updated_at
		`

		for i := range records {
			rec := records[i]

			penalties, err := marshalPenalties(rec.Penalties)
			if err != nil {
				return fmt.Errorf("failed to encode penalties: %w", err)
			}

			err = tx.QueryRow(ctx, query,
				uuid.NewString(),
				rec.EmployeeCode,
				rec.Date,
				rec.CheckIn,
				rec.CheckOut,
				rec.TotalHours,
				rec.OvertimeHours,
				rec.Status,
				penalties,
				rec.Notes,
				rec.MissionStart,
				rec.MissionEnd,
				rec.HalfDayExcused,
				rec.IsOfficialHoliday,
				rec.WorkedOnOfficialHoliday,
				rec.CompDaysFriday,
				rec.CompDaysOfficial,
				rec.CompDaysTotal,
				rec.CompDaysUsed,
				rec.LeaveDeductionDays,
				rec.ExcusedAbsenceDays,
				rec.TerminationPeriodDays,
			).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

			if err != nil {
				return fmt.Errorf("failed to upsert record for %s on %s: %w",
					rec.EmployeeCode, rec.Date.Format("2006-01-02"), err)
			}
			stored = append(stored, rec)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return stored, nil
}

// List implements attendance.RecordRepository.
func (r *recordRepository) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	addCondition := func(cond string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, argIdx))
		args = append(args, value)
		argIdx++
	}

	if filter.EmployeeCode != nil && *filter.EmployeeCode != "" {
		addCondition("employee_code = $%d", arabic.NormalizeCode(*filter.EmployeeCode))
	}
	if filter.Status != nil && *filter.Status != "" {
		addCondition("status = $%d", *filter.Status)
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		addCondition("date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		addCondition("date <= $%d", *filter.EndDate)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendance_records " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count records: %w", err)
	}

	// filter.Validate restricts sort columns, no user input reaches the SQL
	orderBy := filter.SortBy
	if strings.EqualFold(filter.SortOrder, "desc") {
		orderBy += " DESC"
	}

	query := fmt.Sprintf(
		"SELECT %s FROM attendance_records %s ORDER BY %s, employee_code LIMIT $%d OFFSET $%d",
		recordColumns, where, orderBy, argIdx, argIdx+1,
	)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}

// GetByID implements attendance.RecordRepository.
func (r *recordRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	row := q.QueryRow(ctx, `SELECT `+recordColumns+` FROM attendance_records WHERE id = $1`, id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, err
	}
	return rec, nil
}

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	var penalties []byte

	err := row.Scan(
		&rec.ID, &rec.EmployeeCode, &rec.Date, &rec.CheckIn, &rec.CheckOut,
		&rec.TotalHours, &rec.OvertimeHours, &rec.Status, &penalties, &rec.Notes,
		&rec.MissionStart, &rec.MissionEnd, &rec.HalfDayExcused,
		&rec.IsOfficialHoliday, &rec.WorkedOnOfficialHoliday,
		&rec.CompDaysFriday, &rec.CompDaysOfficial, &rec.CompDaysTotal, &rec.CompDaysUsed,
		&rec.LeaveDeductionDays, &rec.ExcusedAbsenceDays, &rec.TerminationPeriodDays,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, err
		}
		return attendance.Record{}, fmt.Errorf("failed to scan record: %w", err)
	}

	rec.Penalties, err = unmarshalPenalties(penalties)
	if err != nil {
		return attendance.Record{}, err
	}
	return rec, nil
}
