package sim

import (
	"context"
	"sync"

	"github.com/mohammed-7/habitat-sim/internal/config"
)

// Ensemble runs independent simulators side by side, one goroutine per
// simulator. Each member is seeded seedStart+i.
type Ensemble struct {
	sims []*Simulator
}

// NewEnsemble builds n simulators from cfg. opts is called once per member so
// members never share a loader.
func NewEnsemble(ctx context.Context, cfg *config.SimulatorConfiguration, n int, seedStart uint32, opts func(i int) []Option) (*Ensemble, error) {
	e := &Ensemble{sims: make([]*Simulator, 0, n)}
	for i := 0; i < n; i++ {
		var o []Option
		if opts != nil {
			o = opts(i)
		}
		s, err := New(ctx, cfg, o...)
		if err != nil {
			e.Close()
			return nil, err
		}
		s.Seed(seedStart + uint32(i))
		e.sims = append(e.sims, s)
	}
	return e, nil
}

func (e *Ensemble) Simulators() []*Simulator { return e.sims }

// Run runs every member for duration and returns their final world times.
// setup, when non-nil, is called on each member's goroutine before stepping.
func (e *Ensemble) Run(ctx context.Context, dt, duration float64, setup func(i int, s *Simulator)) ([]float64, error) {
	times := make([]float64, len(e.sims))
	errs := make([]error, len(e.sims))

	var wg sync.WaitGroup
	for i, s := range e.sims {
		wg.Add(1)
		go func(idx int, s *Simulator) {
			defer wg.Done()
			if setup != nil {
				setup(idx, s)
			}
			errs[idx] = s.Run(ctx, dt, duration, nil)
			times[idx] = s.WorldTime()
		}(i, s)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return times, nil
}

func (e *Ensemble) Close() {
	for _, s := range e.sims {
		s.Close()
	}
}
