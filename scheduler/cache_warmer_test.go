package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingWarmer struct {
	calls atomic.Int32
	err   error
	ran   chan struct{}
}

func (w *countingWarmer) WarmCache(ctx context.Context) error {
	if w.calls.Add(1) == 1 && w.ran != nil {
		close(w.ran)
	}
	return w.err
}

func TestRunOnce_PropagatesError(t *testing.T) {
	warmer := &countingWarmer{err: errors.New("boom")}

	err := NewCacheWarmer(warmer, time.Minute).RunOnce(context.Background())

	if err == nil {
		t.Fatalf("expected error from warmer")
	}
	if warmer.calls.Load() != 1 {
		t.Errorf("expected one call, got %d", warmer.calls.Load())
	}
}

func TestStart_RunsImmediatelyAndStops(t *testing.T) {
	warmer := &countingWarmer{ran: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- NewCacheWarmer(warmer, time.Hour).Start(ctx)
	}()

	select {
	case <-warmer.ran:
	case <-time.After(5 * time.Second):
		t.Fatalf("warmer did not run on start")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Start did not return after cancel")
	}
}

func TestStart_RejectsZeroInterval(t *testing.T) {
	err := NewCacheWarmer(&countingWarmer{}, 0).Start(context.Background())
	if err == nil {
		t.Errorf("expected error for zero interval")
	}
}
