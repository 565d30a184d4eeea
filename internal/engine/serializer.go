package engine

import (
	"context"
	"time"
)

// DefaultWriteWait bounds how long a caller blocks waiting for the write
// slot before giving up with ErrStoreBusy.
const DefaultWriteWait = 5 * time.Second

// WriteSerializer is the process-wide gate in front of all store writes.
// SQLite has a single writer, and streak/XP math is a read-modify-write
// spanning several statements, so the whole sequence runs as one critical
// section. One global slot, not per-user: a deliberate throughput ceiling
// for a low-volume single-instance service.
type WriteSerializer struct {
	slot chan struct{}
	wait time.Duration
}

func NewWriteSerializer(wait time.Duration) *WriteSerializer {
	if wait <= 0 {
		wait = DefaultWriteWait
	}
	return &WriteSerializer{
		slot: make(chan struct{}, 1),
		wait: wait,
	}
}

// RunExclusive executes fn while holding the write slot. The slot is
// released on every exit path, including a panic inside fn. If the slot
// cannot be acquired within the bounded wait, ErrStoreBusy is returned and
// the caller may retry.
func (s *WriteSerializer) RunExclusive(ctx context.Context, fn func() error) error {
	timer := time.NewTimer(s.wait)
	defer timer.Stop()

	select {
	case s.slot <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrStoreBusy
	}
	defer func() { <-s.slot }()

	return fn()
}
