package router

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// sweeper drops per-browser state that has not been used within idle.
type sweeper interface {
	Sweep(idle time.Duration) int
}

// startJanitor sweeps idle browser state every interval until ctx is done.
func startJanitor(ctx context.Context, log *zap.Logger, interval, idle time.Duration, targets ...sweeper) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				dropped := 0
				for _, t := range targets {
					dropped += t.Sweep(idle)
				}
				if dropped > 0 {
					log.Debug("Dropped idle browser state", zap.Int("entries", dropped))
				}
			}
		}
	}()
}
