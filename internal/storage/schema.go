package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id INTEGER PRIMARY KEY,
			chat_id INTEGER NOT NULL,
			xp INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			streak_current INTEGER NOT NULL DEFAULT 0,
			streak_best INTEGER NOT NULL DEFAULT 0,
			best_badge_tier INTEGER NOT NULL DEFAULT 0,
			last_activity_date TEXT NOT NULL DEFAULT '',
			reminder_enabled INTEGER NOT NULL DEFAULT 1,
			last_empty_notified_date TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			difficulty INTEGER NOT NULL DEFAULT 1,
			active INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,

			FOREIGN KEY(user_id) REFERENCES users(user_id)
		);`,
		// Append-only; rows are never updated or deleted. The latest row per
		// task feeds the duplicate-submission guard.
		`CREATE TABLE IF NOT EXISTS completions (
			id TEXT PRIMARY KEY,
			task_id INTEGER NOT NULL,
			user_id INTEGER NOT NULL,
			completed_at DATETIME NOT NULL,
			xp_awarded INTEGER NOT NULL,

			FOREIGN KEY(task_id) REFERENCES tasks(id),
			FOREIGN KEY(user_id) REFERENCES users(user_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_user_id_active ON tasks(user_id, active);`,
		`CREATE INDEX IF NOT EXISTS idx_completions_task_id_completed_at ON completions(task_id, completed_at);`,
		`CREATE INDEX IF NOT EXISTS idx_completions_user_id_completed_at ON completions(user_id, completed_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
