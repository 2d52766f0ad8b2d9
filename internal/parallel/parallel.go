// Package parallel runs independent jobs on a bounded number of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Number of worker goroutines to use.
}

// DefaultConfig uses one worker per CPU.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
	}
}

// For calls f(i) for i in [0, n). It returns the error of the lowest
// failing index, so the result does not depend on scheduling. Sequential
// execution stops at the first error; parallel execution runs every job.
func For(n int, f func(i int) error, cfg Config) error {
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < 2 {
		for i := 0; i < n; i++ {
			if err := f(i); err != nil {
				return err
			}
		}
		return nil
	}

	errs := make([]error, n)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range min(cfg.NumWorkers, n) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				errs[i] = f(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Map calls f(i) for i in [0, n) and collects the results in index order.
// On error no results are returned.
func Map[T any](n int, f func(i int) (T, error), cfg Config) ([]T, error) {
	out := make([]T, n)
	err := For(n, func(i int) error {
		v, err := f(i)
		if err != nil {
			return err
		}
		out[i] = v
		return nil
	}, cfg)
	if err != nil {
		return nil, err
	}
	return out, nil
}
