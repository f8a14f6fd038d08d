package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/dawamhq/attendance-engine-go/internal/domain/leave"
	"github.com/dawamhq/attendance-engine-go/internal/domain/rule"
	"github.com/dawamhq/attendance-engine-go/internal/pkg/database"
	"github.com/google/uuid"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

// ListActiveBetween implements leave.LeaveRepository.
func (r *leaveRepository) ListActiveBetween(ctx context.Context, from, to time.Time) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, type, scope, start_date, end_date, note, created_at
		FROM leaves
		WHERE start_date <= $2 AND end_date >= $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		var l leave.Leave
		var scope string
		err := rows.Scan(&l.ID, &l.Type, &scope, &l.StartDate, &l.EndDate, &l.Note, &l.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		l.Scope = rule.ParseScope(scope)
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

// Create implements leave.LeaveRepository.
func (r *leaveRepository) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	l.ID = uuid.NewString()

	query := `
		INSERT INTO leaves (id, type, scope, start_date, end_date, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		l.ID, l.Type, l.Scope.String(), l.StartDate, l.EndDate, l.Note,
	).Scan(&l.CreatedAt)

	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave: %w", err)
	}
	return l, nil
}
