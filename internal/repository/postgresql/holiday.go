package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/dawamhq/attendance-engine-go/internal/domain/holiday"
	"github.com/dawamhq/attendance-engine-go/internal/pkg/database"
	"github.com/google/uuid"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}

// ListBetween implements holiday.HolidayRepository.
func (r *holidayRepository) ListBetween(ctx context.Context, from, to time.Time) ([]holiday.OfficialHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, date, name, created_at
		FROM official_holidays
		WHERE date >= $1 AND date <= $2
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.OfficialHoliday
	for rows.Next() {
		var h holiday.OfficialHoliday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// Create implements holiday.HolidayRepository. One holiday per date; a
// second insert for the same date updates the name instead.
func (r *holidayRepository) Create(ctx context.Context, h holiday.OfficialHoliday) (holiday.OfficialHoliday, error) {
	q := GetQuerier(ctx, r.db)

	h.ID = uuid.NewString()

	query := `
		INSERT INTO official_holidays (id, date, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (date) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, h.ID, h.Date, h.Name).Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		return holiday.OfficialHoliday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return h, nil
}
