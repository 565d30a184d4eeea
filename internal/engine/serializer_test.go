package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRunExclusiveMutualExclusion(t *testing.T) {
	s := NewWriteSerializer(time.Second)
	ctx := context.Background()

	inside := 0
	maxInside := 0
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.RunExclusive(ctx, func() error {
				mu.Lock()
				inside++
				if inside > maxInside {
					maxInside = inside
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
			if err != nil {
				t.Errorf("RunExclusive: %v", err)
			}
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Fatalf("critical section overlap: max concurrency %d", maxInside)
	}
}

func TestRunExclusiveBoundedWait(t *testing.T) {
	s := NewWriteSerializer(20 * time.Millisecond)
	ctx := context.Background()

	release := make(chan struct{})
	go func() {
		_ = s.RunExclusive(ctx, func() error {
			<-release
			return nil
		})
	}()

	// give the holder time to take the slot
	time.Sleep(5 * time.Millisecond)

	err := s.RunExclusive(ctx, func() error { return nil })
	if !errors.Is(err, ErrStoreBusy) {
		t.Fatalf("err=%v, want ErrStoreBusy", err)
	}
	close(release)
}

func TestRunExclusiveReleasesOnPanic(t *testing.T) {
	s := NewWriteSerializer(time.Second)
	ctx := context.Background()

	func() {
		defer func() { _ = recover() }()
		_ = s.RunExclusive(ctx, func() error {
			panic("boom")
		})
	}()

	// the slot must be free again
	if err := s.RunExclusive(ctx, func() error { return nil }); err != nil {
		t.Fatalf("serializer deadlocked after panic: %v", err)
	}
}

func TestRunExclusiveHonorsContext(t *testing.T) {
	s := NewWriteSerializer(time.Minute)

	release := make(chan struct{})
	go func() {
		_ = s.RunExclusive(context.Background(), func() error {
			<-release
			return nil
		})
	}()
	time.Sleep(5 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := s.RunExclusive(ctx, func() error { return nil })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err=%v, want deadline exceeded", err)
	}
	close(release)
}
