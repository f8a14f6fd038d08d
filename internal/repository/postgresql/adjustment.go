package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/dawamhq/attendance-engine-go/internal/domain/adjustment"
	"github.com/dawamhq/attendance-engine-go/internal/pkg/arabic"
	"github.com/dawamhq/attendance-engine-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type adjustmentRepository struct {
	db *database.DB
}

func NewAdjustmentRepository(db *database.DB) adjustment.AdjustmentRepository {
	return &adjustmentRepository{db: db}
}

// ListBetween implements adjustment.AdjustmentRepository.
func (r *adjustmentRepository) ListBetween(ctx context.Context, from, to time.Time) ([]adjustment.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, date, type, from_time, to_time, note, created_at
		FROM adjustments
		WHERE date >= $1 AND date <= $2
		ORDER BY employee_code, date, created_at
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []adjustment.Adjustment
	for rows.Next() {
		var adj adjustment.Adjustment
		err := rows.Scan(
			&adj.ID, &adj.EmployeeCode, &adj.Date, &adj.Type,
			&adj.FromTime, &adj.ToTime, &adj.Note, &adj.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan adjustment: %w", err)
		}
		adjustments = append(adjustments, adj)
	}
	return adjustments, rows.Err()
}

// Create implements adjustment.AdjustmentRepository.
func (r *adjustmentRepository) Create(ctx context.Context, adj adjustment.Adjustment) (adjustment.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	adj.ID = uuid.NewString()
	adj.EmployeeCode = arabic.NormalizeCode(adj.EmployeeCode)

	query := `
		INSERT INTO adjustments (id, employee_code, date, type, from_time, to_time, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		adj.ID, adj.EmployeeCode, adj.Date, adj.Type, adj.FromTime, adj.ToTime, adj.Note,
	).Scan(&adj.CreatedAt)

	if err != nil {
		return adjustment.Adjustment{}, fmt.Errorf("failed to create adjustment: %w", err)
	}
	return adj, nil
}

type effectRepository struct {
	db *database.DB
}

func NewEffectRepository(db *database.DB) adjustment.EffectRepository {
	return &effectRepository{db: db}
}

// ListBetween implements adjustment.EffectRepository.
func (r *effectRepository) ListBetween(ctx context.Context, from, to time.Time) ([]adjustment.ImportedEffect, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, date, raw_type, from_time, to_time, created_at
		FROM imported_effects
		WHERE date >= $1 AND date <= $2
		ORDER BY employee_code, date, created_at
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list effects: %w", err)
	}
	defer rows.Close()

	var effects []adjustment.ImportedEffect
	for rows.Next() {
		var eff adjustment.ImportedEffect
		err := rows.Scan(
			&eff.ID, &eff.EmployeeCode, &eff.Date, &eff.RawType,
			&eff.FromTime, &eff.ToTime, &eff.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan effect: %w", err)
		}
		effects = append(effects, eff)
	}
	return effects, rows.Err()
}

// CreateBatch implements adjustment.EffectRepository. The raw type label is
// stored untouched; interpretation happens at processing time so unmapped
// labels can be fixed without re-importing.
func (r *effectRepository) CreateBatch(ctx context.Context, effects []adjustment.ImportedEffect) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO imported_effects (id, employee_code, date, raw_type, from_time, to_time)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	batch := &pgx.Batch{}
	for _, eff := range effects {
		batch.Queue(query,
			uuid.NewString(),
			arabic.NormalizeCode(eff.EmployeeCode),
			eff.Date,
			eff.RawType,
			eff.FromTime,
			eff.ToTime,
		)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range effects {
		if _, err := results.Exec(); err != nil {
			return 0, fmt.Errorf("failed to insert effect: %w", err)
		}
	}
	return len(effects), nil
}
