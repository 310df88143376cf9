package sim

import (
	"context"
	"fmt"
	"math"
)

// Run steps the world by dt until duration has elapsed, calling fn after
// every step with the world time. fn returning false stops the run early.
func (s *Simulator) Run(ctx context.Context, dt, duration float64, fn func(t float64) bool) error {
	if dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", dt)
	}
	if duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", duration)
	}
	steps := int(math.Round(duration / dt))
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		t := s.StepWorld(dt)
		if fn != nil && !fn(t) {
			return nil
		}
	}
	return nil
}
