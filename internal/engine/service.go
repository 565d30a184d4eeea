package engine

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/AAChaika/duotasks/internal/storage"
)

// Service owns the progression pipeline: repos, the write serializer, the
// clock and the outbound notifier. Everything that mutates progression
// state goes through it.
type Service struct {
	db          *sql.DB
	users       *storage.UserRepo
	tasks       *storage.TaskRepo
	completions *storage.CompletionRepo

	serializer *WriteSerializer
	clock      Clock
	notifier   Notifier
	logger     *slog.Logger
	debounce   time.Duration
}

type Options struct {
	Clock     Clock
	Notifier  Notifier
	Logger    *slog.Logger
	Debounce  time.Duration // duplicate-submission window
	WriteWait time.Duration // serializer acquire bound
}

func NewService(db *sql.DB, opts Options) *Service {
	if opts.Clock == nil {
		opts.Clock = NewClock(time.UTC)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Notifier == nil {
		opts.Notifier = LogNotifier{Logger: opts.Logger}
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Service{
		db:          db,
		users:       storage.NewUserRepo(db),
		tasks:       storage.NewTaskRepo(db),
		completions: storage.NewCompletionRepo(db),
		serializer:  NewWriteSerializer(opts.WriteWait),
		clock:       opts.Clock,
		notifier:    opts.Notifier,
		logger:      opts.Logger,
		debounce:    opts.Debounce,
	}
}

func (s *Service) UserRepo() *storage.UserRepo             { return s.users }
func (s *Service) TaskRepo() *storage.TaskRepo             { return s.tasks }
func (s *Service) CompletionRepo() *storage.CompletionRepo { return s.completions }
func (s *Service) Clock() Clock                            { return s.clock }

func (s *Service) today() Date {
	return DateOf(s.clock.Now(), s.clock.Location())
}

// progressOf lifts the stored row into calculator input, checking read-side
// invariants on the way. A violation aborts the operation before anything
// is computed from bad state.
func progressOf(u *storage.User) (Progress, error) {
	last, err := ParseDate(u.LastActivityDate)
	if err != nil {
		return Progress{}, InvariantError{UserID: u.UserID, Detail: err.Error()}
	}
	if u.XP < 0 {
		return Progress{}, InvariantError{UserID: u.UserID, Detail: "negative xp"}
	}
	if u.StreakBest < u.StreakCurrent {
		return Progress{}, InvariantError{UserID: u.UserID, Detail: "streak_best below streak_current"}
	}
	return Progress{
		XP:            u.XP,
		Level:         u.Level,
		StreakCurrent: u.StreakCurrent,
		StreakBest:    u.StreakBest,
		BestBadgeTier: u.BestBadgeTier,
		LastActivity:  last,
	}, nil
}

func applyProgress(u *storage.User, p Progress) {
	u.XP = p.XP
	u.Level = p.Level
	u.StreakCurrent = p.StreakCurrent
	u.StreakBest = p.StreakBest
	u.BestBadgeTier = p.BestBadgeTier
	u.LastActivityDate = p.LastActivity.String()
}
