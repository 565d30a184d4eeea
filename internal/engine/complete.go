package engine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/AAChaika/duotasks/internal/storage"
)

// CompleteResult is what the external adapter renders after a completion.
// Duplicate=true is the defined no-op outcome, not an error: the debounce
// guard swallowed a re-submission and nothing changed.
type CompleteResult struct {
	TaskID        int64
	Title         string
	Duplicate     bool
	XPGained      int
	LevelBefore   int
	LevelAfter    int
	LevelUp       bool
	Streak        int
	BadgeUnlocked bool
	Badge         BadgeTier
	ListEmptied   bool
}

// Complete runs the whole completion transaction: task read, duplicate
// guard, completion insert, task deactivation, progression update — all
// under the write serializer and one store transaction. On any failure the
// transaction rolls back in full; a task is never archived without its XP
// being granted.
func (s *Service) Complete(ctx context.Context, taskID, userID int64) (*CompleteResult, error) {
	var res *CompleteResult
	var chatID int64

	err := s.serializer.RunExclusive(ctx, func() error {
		return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
			tasks := storage.NewTaskRepo(tx)
			users := storage.NewUserRepo(tx)
			completions := storage.NewCompletionRepo(tx)

			task, err := tasks.Get(ctx, taskID, userID)
			if err != nil {
				return err
			}
			if task == nil {
				return ErrTaskNotFound
			}

			// The duplicate check precedes the inactive check: a double-tap
			// races the first tap's deactivation, and the loser must come
			// back as a quiet no-op rather than "nothing to do".
			now := s.clock.Now()
			last, err := completions.Last(ctx, taskID, userID)
			if err != nil {
				return err
			}
			if last != nil && IsDuplicate(last.CompletedAt, now, s.debounce) {
				res = &CompleteResult{TaskID: taskID, Title: task.Title, Duplicate: true}
				return nil
			}
			if !task.Active {
				return ErrTaskNotFound
			}

			user, err := users.GetOrCreate(ctx, userID, userID)
			if err != nil {
				return err
			}
			chatID = user.ChatID

			prior, err := progressOf(user)
			if err != nil {
				return err
			}

			today := DateOf(now, s.clock.Location())
			next, adv := AdvanceProgress(prior, ClampDifficulty(task.Difficulty), today)

			if _, err := completions.Insert(ctx, taskID, userID, now.UTC(), adv.XPGained); err != nil {
				return err
			}
			if err := tasks.Deactivate(ctx, taskID, userID); err != nil {
				return err
			}

			applyProgress(user, next)

			// The empty-list nudge is debounced per calendar day; the stamp
			// rides the same transaction, the send happens after commit.
			listEmptied := false
			active, err := tasks.CountActive(ctx, userID)
			if err != nil {
				return err
			}
			if active == 0 && user.LastEmptyNotifiedDate != today.String() {
				user.LastEmptyNotifiedDate = today.String()
				listEmptied = true
			}

			if err := users.Update(ctx, user); err != nil {
				return err
			}

			res = &CompleteResult{
				TaskID:        taskID,
				Title:         task.Title,
				XPGained:      adv.XPGained,
				LevelBefore:   adv.LevelBefore,
				LevelAfter:    adv.LevelAfter,
				LevelUp:       adv.LevelUp,
				Streak:        adv.Streak,
				BadgeUnlocked: adv.BadgeUnlocked,
				Badge:         adv.Badge,
				ListEmptied:   listEmptied,
			}
			return nil
		})
	})
	if err != nil {
		var inv InvariantError
		if errors.As(err, &inv) {
			s.logger.Error("completion aborted on invariant violation",
				"user_id", inv.UserID, "detail", inv.Detail, "task_id", taskID)
		}
		return nil, err
	}

	if res.ListEmptied {
		go s.sendListEmpty(chatID)
	}
	return res, nil
}

// sendListEmpty is best-effort and detached from the caller: a messaging
// failure must never surface into the completion result.
func (s *Service) sendListEmpty(chatID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.notifier.Notify(ctx, chatID, MessageListEmpty, nil); err != nil {
		s.logger.Warn("empty-list notification failed", "chat_id", chatID, "err", err)
	}
}
