package remind

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/AAChaika/duotasks/internal/engine"
	"github.com/AAChaika/duotasks/internal/storage"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time           { return c.now }
func (c *fakeClock) Location() *time.Location { return c.now.Location() }

type memoNotifier struct {
	mu    sync.Mutex
	calls []int64 // chat IDs in order
	fail  map[int64]bool
}

func (n *memoNotifier) Notify(ctx context.Context, chatID int64, kind engine.MessageKind, payload map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail[chatID] {
		return errors.New("send failed")
	}
	n.calls = append(n.calls, chatID)
	return nil
}

func (n *memoNotifier) chats() []int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]int64, len(n.calls))
	copy(out, n.calls)
	return out
}

func newTestScheduler(t *testing.T, clock engine.Clock, notifier engine.Notifier) (*Scheduler, *engine.Service) {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := engine.NewService(db, engine.Options{Clock: clock, Notifier: notifier})
	return New(svc, Options{Notifier: notifier, StreakHour: 20, EmptyHour: 11}), svc
}

func seedUser(t *testing.T, svc *engine.Service, userID int64, withTask bool) int64 {
	t.Helper()
	created, err := svc.CreateTask(context.Background(), engine.CreateTaskInput{
		UserID: userID, ChatID: userID, Title: "seed", Difficulty: 1,
	})
	if err != nil {
		t.Fatalf("seed user %d: %v", userID, err)
	}
	if !withTask {
		if _, err := svc.RemoveTask(context.Background(), created.TaskID, userID); err != nil {
			t.Fatalf("clear task for user %d: %v", userID, err)
		}
	}
	return created.TaskID
}

func TestStreakAtRiskSkipsTodaysFinishers(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2025, time.March, 10, 20, 0, 0, 0, time.UTC)}
	notifier := &memoNotifier{}
	sched, svc := newTestScheduler(t, clock, notifier)

	seedUser(t, svc, 1, true)
	doneTask := seedUser(t, svc, 2, true)
	seedUser(t, svc, 2, true) // keep user 2's list non-empty after completing
	seedUser(t, svc, 3, true)

	// user 2 completed something today; user 3 opted out
	if _, err := svc.Complete(ctx, doneTask, 2); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := svc.SetReminder(ctx, 3, 3, false); err != nil {
		t.Fatalf("SetReminder: %v", err)
	}

	if err := sched.StreakAtRisk(ctx); err != nil {
		t.Fatalf("StreakAtRisk: %v", err)
	}

	got := notifier.chats()
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("notified chats=%v, want [1]", got)
	}
}

func TestEmptyListStampsAndDebounces(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2025, time.March, 10, 11, 0, 0, 0, time.UTC)}
	notifier := &memoNotifier{}
	sched, svc := newTestScheduler(t, clock, notifier)

	seedUser(t, svc, 1, false) // empty list
	seedUser(t, svc, 2, true)  // has a task

	if err := sched.EmptyList(ctx); err != nil {
		t.Fatalf("EmptyList: %v", err)
	}
	if got := notifier.chats(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("notified chats=%v, want [1]", got)
	}

	// a second run the same day must stay quiet
	if err := sched.EmptyList(ctx); err != nil {
		t.Fatalf("EmptyList rerun: %v", err)
	}
	if got := notifier.chats(); len(got) != 1 {
		t.Fatalf("re-notified same day: %v", got)
	}

	// next day it fires again
	clock.now = clock.now.AddDate(0, 0, 1)
	if err := sched.EmptyList(ctx); err != nil {
		t.Fatalf("EmptyList next day: %v", err)
	}
	if got := notifier.chats(); len(got) != 2 {
		t.Fatalf("expected next-day re-notify, got %v", got)
	}
}

func TestJobsIsolatePerUserFailures(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2025, time.March, 10, 11, 0, 0, 0, time.UTC)}
	notifier := &memoNotifier{fail: map[int64]bool{1: true}}
	sched, svc := newTestScheduler(t, clock, notifier)

	seedUser(t, svc, 1, false)
	seedUser(t, svc, 2, false)

	if err := sched.EmptyList(ctx); err != nil {
		t.Fatalf("EmptyList: %v", err)
	}
	if got := notifier.chats(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("failure for user 1 must not block user 2; got %v", got)
	}

	// the failed user keeps no stamp and is retried next run
	notifier.mu.Lock()
	notifier.fail = nil
	notifier.mu.Unlock()
	if err := sched.EmptyList(ctx); err != nil {
		t.Fatalf("EmptyList retry: %v", err)
	}
	got := notifier.chats()
	if len(got) != 2 || got[1] != 1 {
		t.Fatalf("expected retry for user 1, got %v", got)
	}
}

func TestNextFire(t *testing.T) {
	loc := time.UTC
	cases := []struct {
		now  time.Time
		hour int
		want time.Time
	}{
		{time.Date(2025, time.March, 10, 9, 0, 0, 0, loc), 20, time.Date(2025, time.March, 10, 20, 0, 0, 0, loc)},
		{time.Date(2025, time.March, 10, 20, 0, 0, 0, loc), 20, time.Date(2025, time.March, 11, 20, 0, 0, 0, loc)},
		{time.Date(2025, time.March, 10, 23, 30, 0, 0, loc), 11, time.Date(2025, time.March, 11, 11, 0, 0, 0, loc)},
	}
	for _, c := range cases {
		if got := nextFire(c.now, c.hour, loc); !got.Equal(c.want) {
			t.Errorf("nextFire(%v, %d)=%v, want %v", c.now, c.hour, got, c.want)
		}
	}
}
