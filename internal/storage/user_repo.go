package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type UserRepo struct {
	q Querier
}

func NewUserRepo(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `user_id, chat_id, xp, level, streak_current, streak_best, best_badge_tier,
	last_activity_date, reminder_enabled, last_empty_notified_date, created_at`

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var remind int
	if err := row.Scan(
		&u.UserID, &u.ChatID, &u.XP, &u.Level, &u.StreakCurrent, &u.StreakBest, &u.BestBadgeTier,
		&u.LastActivityDate, &remind, &u.LastEmptyNotifiedDate, &u.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user scan: %w", err)
	}
	u.ReminderEnabled = remind != 0
	return &u, nil
}

func (r *UserRepo) Get(ctx context.Context, userID int64) (*User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = ?`, userID)
	return scanUser(row)
}

// GetOrCreate returns the user's state, bootstrapping the row with default
// progression values on first interaction.
func (r *UserRepo) GetOrCreate(ctx context.Context, userID, chatID int64) (*User, error) {
	u, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT INTO users (user_id, chat_id) VALUES (?, ?)
		ON CONFLICT(user_id) DO NOTHING
	`, userID, chatID)
	if err != nil {
		return nil, fmt.Errorf("user insert: %w", err)
	}
	return r.Get(ctx, userID)
}

// Update replaces the user's progression fields in full.
func (r *UserRepo) Update(ctx context.Context, u *User) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE users
		SET xp = ?, level = ?, streak_current = ?, streak_best = ?, best_badge_tier = ?,
			last_activity_date = ?, reminder_enabled = ?, last_empty_notified_date = ?
		WHERE user_id = ?
	`, u.XP, u.Level, u.StreakCurrent, u.StreakBest, u.BestBadgeTier,
		u.LastActivityDate, boolToInt(u.ReminderEnabled), u.LastEmptyNotifiedDate, u.UserID)
	if err != nil {
		return fmt.Errorf("user update: %w", err)
	}
	return nil
}

func (r *UserRepo) SetReminder(ctx context.Context, userID int64, enabled bool) error {
	_, err := r.q.ExecContext(ctx, `UPDATE users SET reminder_enabled = ? WHERE user_id = ?`,
		boolToInt(enabled), userID)
	if err != nil {
		return fmt.Errorf("user set reminder: %w", err)
	}
	return nil
}

func (r *UserRepo) SetEmptyNotifiedDate(ctx context.Context, userID int64, date string) error {
	_, err := r.q.ExecContext(ctx, `UPDATE users SET last_empty_notified_date = ? WHERE user_id = ?`,
		date, userID)
	if err != nil {
		return fmt.Errorf("user set empty-notified date: %w", err)
	}
	return nil
}

func (r *UserRepo) ListWithRemindersEnabled(ctx context.Context) ([]ReminderTarget, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT user_id, chat_id
		FROM users
		WHERE reminder_enabled = 1
		ORDER BY user_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("user reminder list: %w", err)
	}
	defer rows.Close()

	var out []ReminderTarget
	for rows.Next() {
		var t ReminderTarget
		if err := rows.Scan(&t.UserID, &t.ChatID); err != nil {
			return nil, fmt.Errorf("user reminder scan: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user reminder rows: %w", err)
	}
	return out, nil
}

// ListOverview returns every user together with their active-task count.
// The count is a correlated subquery so the task lifecycle remains the only
// writer of task state.
func (r *UserRepo) ListOverview(ctx context.Context) ([]UserOverview, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT u.user_id, u.chat_id, u.last_empty_notified_date,
			(SELECT COUNT(*) FROM tasks t WHERE t.user_id = u.user_id AND t.active = 1)
		FROM users u
		ORDER BY u.user_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("user overview list: %w", err)
	}
	defer rows.Close()

	var out []UserOverview
	for rows.Next() {
		var o UserOverview
		if err := rows.Scan(&o.UserID, &o.ChatID, &o.LastEmptyNotifiedDate, &o.ActiveTaskCount); err != nil {
			return nil, fmt.Errorf("user overview scan: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user overview rows: %w", err)
	}
	return out, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
