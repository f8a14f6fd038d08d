package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/dawamhq/attendance-engine-go/internal/domain/punch"
	"github.com/dawamhq/attendance-engine-go/internal/pkg/arabic"
	"github.com/dawamhq/attendance-engine-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type punchRepository struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) punch.PunchRepository {
	return &punchRepository{db: db}
}

// ListBetween implements punch.PunchRepository.
func (r *punchRepository) ListBetween(ctx context.Context, from, to time.Time) ([]punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, punched_at, created_at
		FROM punches
		WHERE punched_at >= $1 AND punched_at < $2
		ORDER BY employee_code, punched_at
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	defer rows.Close()

	var punches []punch.Punch
	for rows.Next() {
		var p punch.Punch
		if err := rows.Scan(&p.ID, &p.EmployeeCode, &p.PunchedAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, p)
	}
	return punches, rows.Err()
}

// CreateBatch implements punch.PunchRepository. Duplicate device reads for
// the same employee and instant are dropped silently.
func (r *punchRepository) CreateBatch(ctx context.Context, punches []punch.Punch) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO punches (id, employee_code, punched_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_code, punched_at) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, p := range punches {
		batch.Queue(query, uuid.NewString(), arabic.NormalizeCode(p.EmployeeCode), p.PunchedAt.UTC())
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for range punches {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("failed to insert punch: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}
