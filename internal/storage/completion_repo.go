package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type CompletionRepo struct {
	q Querier
}

func NewCompletionRepo(q Querier) *CompletionRepo {
	return &CompletionRepo{q: q}
}

func (r *CompletionRepo) Insert(ctx context.Context, taskID, userID int64, completedAt time.Time, xpAwarded int) (string, error) {
	id := uuid.NewString()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO completions (id, task_id, user_id, completed_at, xp_awarded)
		VALUES (?, ?, ?, ?, ?)
	`, id, taskID, userID, completedAt, xpAwarded)
	if err != nil {
		return "", fmt.Errorf("completion insert: %w", err)
	}
	return id, nil
}

// Last returns the most recent completion for the task, or nil.
func (r *CompletionRepo) Last(ctx context.Context, taskID, userID int64) (*Completion, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, task_id, user_id, completed_at, xp_awarded
		FROM completions
		WHERE task_id = ? AND user_id = ?
		ORDER BY completed_at DESC
		LIMIT 1
	`, taskID, userID)
	var c Completion
	if err := row.Scan(&c.ID, &c.TaskID, &c.UserID, &c.CompletedAt, &c.XPAwarded); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("completion last: %w", err)
	}
	return &c, nil
}

func (r *CompletionRepo) CountForUserSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM completions
		WHERE user_id = ? AND completed_at >= ?
	`, userID, since)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("completion count: %w", err)
	}
	return n, nil
}
