package quiz

import (
	"context"
	"math/rand/v2"
	"time"
)

// Celebrator plays the effect shown for a passing score. Celebrate must not block.
type Celebrator interface {
	Celebrate(ctx context.Context)
}

// NopCelebrator disables the effect.
type NopCelebrator struct{}

func (NopCelebrator) Celebrate(context.Context) {}

// Burst is one particle burst of the confetti effect.
type Burst struct {
	ParticleCount float64 `json:"particleCount"`
	OriginX       float64 `json:"originX"`
	OriginY       float64 `json:"originY"`
	StartVelocity int     `json:"startVelocity"`
	Spread        int     `json:"spread"`
	Ticks         int     `json:"ticks"`
}

// Confetti fires two bursts from mirrored origins on every tick until Duration
// has elapsed, shrinking the particle count as time runs out.
type Confetti struct {
	Duration time.Duration
	Interval time.Duration
	Emit     func(Burst)
}

// NewConfetti returns the 3 second, 250ms tick effect.
func NewConfetti(emit func(Burst)) *Confetti {
	return &Confetti{Duration: 3 * time.Second, Interval: 250 * time.Millisecond, Emit: emit}
}

func (c *Confetti) Celebrate(ctx context.Context) {
	go c.run(ctx)
}

func (c *Confetti) run(ctx context.Context) {
	end := time.Now().Add(c.Duration)
	ticker := time.NewTicker(c.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		left := time.Until(end)
		if left <= 0 {
			return
		}
		count := 50 * float64(left) / float64(c.Duration)
		c.Emit(burst(count, between(0.1, 0.3)))
		c.Emit(burst(count, between(0.7, 0.9)))
	}
}

func burst(count, x float64) Burst {
	return Burst{
		ParticleCount: count,
		OriginX:       x,
		OriginY:       rand.Float64() - 0.2,
		StartVelocity: 30,
		Spread:        360,
		Ticks:         60,
	}
}

func between(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}
