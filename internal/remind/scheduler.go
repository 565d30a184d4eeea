// Package remind runs the two daily background jobs: the streak-at-risk
// nudge and the empty-list nudge. Both scan all users outside the write
// serializer and isolate per-user failures so one bad record never blocks
// the batch.
package remind

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/AAChaika/duotasks/internal/engine"
)

type Scheduler struct {
	svc      *engine.Service
	notifier engine.Notifier
	logger   *slog.Logger

	streakHour int // local hour for the streak-at-risk job
	emptyHour  int // local hour for the empty-list job
}

type Options struct {
	Notifier   engine.Notifier
	Logger     *slog.Logger
	StreakHour int
	EmptyHour  int
}

func New(svc *engine.Service, opts Options) *Scheduler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Notifier == nil {
		opts.Notifier = engine.LogNotifier{Logger: opts.Logger}
	}
	return &Scheduler{
		svc:        svc,
		notifier:   opts.Notifier,
		logger:     opts.Logger,
		streakHour: opts.StreakHour,
		emptyHour:  opts.EmptyHour,
	}
}

// Run blocks until ctx is cancelled, firing each job once per local day at
// its configured hour.
func (s *Scheduler) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.runDaily(ctx, s.streakHour, "streak_at_risk", s.StreakAtRisk)
	}()
	go func() {
		defer wg.Done()
		s.runDaily(ctx, s.emptyHour, "empty_list", s.EmptyList)
	}()
	wg.Wait()
}

func (s *Scheduler) runDaily(ctx context.Context, hour int, name string, job func(context.Context) error) {
	for {
		clock := s.svc.Clock()
		wait := time.Until(nextFire(clock.Now(), hour, clock.Location()))
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		if err := job(ctx); err != nil {
			s.logger.Error("reminder job failed", "job", name, "err", err)
		}
	}
}

// nextFire returns the next occurrence of hour:00 local time strictly
// after now.
func nextFire(now time.Time, hour int, loc *time.Location) time.Time {
	now = now.In(loc)
	at := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, loc)
	if !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}

// StreakAtRisk notifies every reminder-enabled user who has not completed
// anything during the current local day. Read-only.
func (s *Scheduler) StreakAtRisk(ctx context.Context) error {
	clock := s.svc.Clock()
	targets, err := s.svc.UserRepo().ListWithRemindersEnabled(ctx)
	if err != nil {
		return err
	}

	dayStart := engine.DateOf(clock.Now(), clock.Location()).StartOfDay(clock.Location())
	for _, t := range targets {
		n, err := s.svc.CompletionRepo().CountForUserSince(ctx, t.UserID, dayStart.UTC())
		if err != nil {
			s.logger.Warn("streak reminder skipped", "user_id", t.UserID, "err", err)
			continue
		}
		if n > 0 {
			continue
		}
		if err := s.notifier.Notify(ctx, t.ChatID, engine.MessageStreakAtRisk, nil); err != nil {
			s.logger.Warn("streak reminder send failed", "user_id", t.UserID, "err", err)
		}
	}
	return nil
}

// EmptyList notifies every user whose active list is empty, at most once
// per local day. The date stamp goes through the service so it runs under
// the write serializer.
func (s *Scheduler) EmptyList(ctx context.Context) error {
	clock := s.svc.Clock()
	users, err := s.svc.UserRepo().ListOverview(ctx)
	if err != nil {
		return err
	}

	today := engine.DateOf(clock.Now(), clock.Location())
	for _, u := range users {
		if u.ActiveTaskCount > 0 || u.LastEmptyNotifiedDate == today.String() {
			continue
		}
		if err := s.notifier.Notify(ctx, u.ChatID, engine.MessageListEmpty, nil); err != nil {
			s.logger.Warn("empty-list reminder send failed", "user_id", u.UserID, "err", err)
			continue
		}
		if err := s.svc.MarkEmptyListNotified(ctx, u.UserID, today); err != nil {
			s.logger.Warn("empty-list stamp failed", "user_id", u.UserID, "err", err)
		}
	}
	return nil
}
