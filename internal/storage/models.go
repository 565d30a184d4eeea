package storage

import "time"

// User is one external identity plus its progression state. Calendar dates
// are stored as "YYYY-MM-DD" in the reference time zone; the empty string
// means "never".
type User struct {
	UserID                int64
	ChatID                int64
	XP                    int
	Level                 int
	StreakCurrent         int
	StreakBest            int
	BestBadgeTier         int
	LastActivityDate      string
	ReminderEnabled       bool
	LastEmptyNotifiedDate string
	CreatedAt             time.Time
}

type Task struct {
	ID         int64
	UserID     int64
	Title      string
	Difficulty int
	Active     bool
	CreatedAt  time.Time
}

type Completion struct {
	ID          string
	TaskID      int64
	UserID      int64
	CompletedAt time.Time
	XPAwarded   int
}

// ReminderTarget is one row of the streak-at-risk scan.
type ReminderTarget struct {
	UserID int64
	ChatID int64
}

// UserOverview is one row of the empty-list scan.
type UserOverview struct {
	UserID                int64
	ChatID                int64
	LastEmptyNotifiedDate string
	ActiveTaskCount       int
}
