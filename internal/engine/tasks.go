package engine

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/AAChaika/duotasks/internal/storage"
)

// MaxTitleLen bounds task titles in runes.
const MaxTitleLen = 200

type CreateTaskInput struct {
	UserID     int64
	ChatID     int64
	Title      string
	Difficulty int
}

type CreatedTask struct {
	TaskID     int64
	Title      string
	Difficulty Difficulty
}

// CreateTask validates and persists a new active task, bootstrapping the
// user row on first interaction.
func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (*CreatedTask, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errors.New("title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return nil, errors.New("title is too long")
	}
	diff := ClampDifficulty(in.Difficulty)

	var created *CreatedTask
	err := s.serializer.RunExclusive(ctx, func() error {
		return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
			users := storage.NewUserRepo(tx)
			tasks := storage.NewTaskRepo(tx)

			if _, err := users.GetOrCreate(ctx, in.UserID, in.ChatID); err != nil {
				return err
			}
			id, err := tasks.Insert(ctx, storage.TaskInsert{
				UserID:     in.UserID,
				Title:      title,
				Difficulty: int(diff),
			})
			if err != nil {
				return err
			}
			created = &CreatedTask{TaskID: id, Title: title, Difficulty: diff}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// RemoveTask deactivates a task without awarding anything. Same one-way
// transition as completion; a removed task cannot come back.
func (s *Service) RemoveTask(ctx context.Context, taskID, userID int64) (*storage.Task, error) {
	var removed *storage.Task
	err := s.serializer.RunExclusive(ctx, func() error {
		return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
			tasks := storage.NewTaskRepo(tx)

			task, err := tasks.Get(ctx, taskID, userID)
			if err != nil {
				return err
			}
			if task == nil || !task.Active {
				return ErrTaskNotFound
			}
			if err := tasks.Deactivate(ctx, taskID, userID); err != nil {
				return err
			}
			removed = task
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// ListActive is a display read; it runs outside the serializer and may be
// slightly stale.
func (s *Service) ListActive(ctx context.Context, userID int64) ([]storage.Task, error) {
	return s.tasks.ListActive(ctx, userID)
}

// ProfileView is the data behind the profile card.
type ProfileView struct {
	XP              int
	Level           int
	StreakCurrent   int
	StreakBest      int
	Badge           *BadgeTier // nil until a tier is earned
	ActiveTasks     int
	ReminderEnabled bool
}

func (s *Service) Profile(ctx context.Context, userID, chatID int64) (*ProfileView, error) {
	user, err := s.users.GetOrCreate(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	active, err := s.tasks.CountActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := &ProfileView{
		XP:              user.XP,
		Level:           LevelForXP(user.XP),
		StreakCurrent:   user.StreakCurrent,
		StreakBest:      user.StreakBest,
		ActiveTasks:     active,
		ReminderEnabled: user.ReminderEnabled,
	}
	if tier, ok := BadgeByThreshold(user.BestBadgeTier); ok {
		view.Badge = &tier
	}
	return view, nil
}

// SetReminder toggles the daily streak reminder for the user.
func (s *Service) SetReminder(ctx context.Context, userID, chatID int64, enabled bool) error {
	return s.serializer.RunExclusive(ctx, func() error {
		return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
			users := storage.NewUserRepo(tx)
			if _, err := users.GetOrCreate(ctx, userID, chatID); err != nil {
				return err
			}
			return users.SetReminder(ctx, userID, enabled)
		})
	})
}

// MarkEmptyListNotified stamps today's date so the empty-list job doesn't
// re-notify within the same day. The only progression-table write the
// reminder path performs, hence it takes the serializer.
func (s *Service) MarkEmptyListNotified(ctx context.Context, userID int64, day Date) error {
	return s.serializer.RunExclusive(ctx, func() error {
		return s.users.SetEmptyNotifiedDate(ctx, userID, day.String())
	})
}
