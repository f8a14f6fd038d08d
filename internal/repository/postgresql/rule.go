package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/dawamhq/attendance-engine-go/internal/domain/rule"
	"github.com/dawamhq/attendance-engine-go/internal/pkg/database"
	"github.com/google/uuid"
)

type ruleRepository struct {
	db *database.DB
}

func NewRuleRepository(db *database.DB) rule.RuleRepository {
	return &ruleRepository{db: db}
}

// ListActiveBetween implements rule.RuleRepository. Scopes are stored in
// their textual form and parsed on the way out.
func (r *ruleRepository) ListActiveBetween(ctx context.Context, from, to time.Time) ([]rule.SpecialRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, scope, start_date, end_date, priority, type,
			   shift_start, shift_end, note, created_at, updated_at
		FROM special_rules
		WHERE start_date <= $2 AND end_date >= $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	defer rows.Close()

	var rules []rule.SpecialRule
	for rows.Next() {
		var sr rule.SpecialRule
		var scope string
		err := rows.Scan(
			&sr.ID, &scope, &sr.StartDate, &sr.EndDate, &sr.Priority, &sr.Type,
			&sr.ShiftStart, &sr.ShiftEnd, &sr.Note, &sr.CreatedAt, &sr.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		sr.Scope = rule.ParseScope(scope)
		rules = append(rules, sr)
	}
	return rules, rows.Err()
}

// Create implements rule.RuleRepository.
func (r *ruleRepository) Create(ctx context.Context, sr rule.SpecialRule) (rule.SpecialRule, error) {
	q := GetQuerier(ctx, r.db)

	sr.ID = uuid.NewString()

	query := `
		INSERT INTO special_rules (
			id, scope, start_date, end_date, priority, type, shift_start, shift_end, note
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		sr.ID,
		sr.Scope.String(),
		sr.StartDate,
		sr.EndDate,
		sr.Priority,
		sr.Type,
		sr.ShiftStart,
		sr.ShiftEnd,
		sr.Note,
	).Scan(&sr.CreatedAt, &sr.UpdatedAt)

	if err != nil {
		return rule.SpecialRule{}, fmt.Errorf("failed to create rule: %w", err)
	}
	return sr, nil
}
