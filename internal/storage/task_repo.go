package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type TaskRepo struct {
	q Querier
}

func NewTaskRepo(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

type TaskInsert struct {
	UserID     int64
	Title      string
	Difficulty int
}

func (r *TaskRepo) Insert(ctx context.Context, in TaskInsert) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO tasks (user_id, title, difficulty)
		VALUES (?, ?, ?)
	`, in.UserID, in.Title, in.Difficulty)
	if err != nil {
		return 0, fmt.Errorf("task insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task last insert id: %w", err)
	}
	return id, nil
}

// Get returns the task only if it belongs to userID; nil if absent.
func (r *TaskRepo) Get(ctx context.Context, id, userID int64) (*Task, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, user_id, title, difficulty, active, created_at
		FROM tasks
		WHERE id = ? AND user_id = ?
	`, id, userID)

	var t Task
	var active int
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Difficulty, &active, &t.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("task scan: %w", err)
	}
	t.Active = active != 0
	return &t, nil
}

func (r *TaskRepo) ListActive(ctx context.Context, userID int64) ([]Task, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, user_id, title, difficulty, active, created_at
		FROM tasks
		WHERE user_id = ? AND active = 1
		ORDER BY id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		var t Task
		var active int
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Difficulty, &active, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("task list scan: %w", err)
		}
		t.Active = active != 0
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

// Deactivate is the one-way active=1 → active=0 transition, shared by
// completion and removal. A task is never reactivated.
func (r *TaskRepo) Deactivate(ctx context.Context, id, userID int64) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE tasks SET active = 0 WHERE id = ? AND user_id = ? AND active = 1
	`, id, userID)
	if err != nil {
		return fmt.Errorf("task deactivate: %w", err)
	}
	return nil
}

func (r *TaskRepo) CountActive(ctx context.Context, userID int64) (int, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM tasks WHERE user_id = ? AND active = 1
	`, userID)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("task count: %w", err)
	}
	return n, nil
}
