package trace

import (
	"context"
	"sync"
)

// Ensemble runs the same options over consecutive seeds. Each run owns its
// lifecycle, so runs proceed in parallel without sharing state.
type Ensemble struct {
	base      Options
	numRuns   int
	seedStart int64
}

func NewEnsemble(opts Options, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{base: opts, numRuns: numRuns, seedStart: seedStart}
}

// Run returns one result per seed, in seed order. Observers and surfaces in
// the base options are not shared with the runs.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	if e.numRuns <= 0 {
		return nil, nil
	}
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			opts := e.base
			opts.Seed = e.seedStart + int64(idx)
			opts.Surface = nil
			opts.Observers = nil

			results[idx], errs[idx] = Run(ctx, opts)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Seeds returns the seed of each run in order.
func (e *Ensemble) Seeds() []int64 {
	seeds := make([]int64, e.numRuns)
	for i := range seeds {
		seeds[i] = e.seedStart + int64(i)
	}
	return seeds
}
