package router

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

type countingSweeper struct {
	calls atomic.Int32
	idle  atomic.Int64
}

func (s *countingSweeper) Sweep(idle time.Duration) int {
	s.calls.Add(1)
	s.idle.Store(int64(idle))
	return 1
}

func TestJanitorSweepsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	a, b := &countingSweeper{}, &countingSweeper{}
	startJanitor(ctx, zap.NewNop(), 10*time.Millisecond, time.Hour, a, b)

	eventually(t, func() bool { return a.calls.Load() >= 2 && b.calls.Load() >= 2 })
	if got := time.Duration(a.idle.Load()); got != time.Hour {
		t.Errorf("idle = %v, want 1h", got)
	}

	cancel()
	time.Sleep(30 * time.Millisecond)
	stopped := a.calls.Load()
	time.Sleep(50 * time.Millisecond)
	if a.calls.Load() != stopped {
		t.Error("janitor kept sweeping after cancel")
	}
}
