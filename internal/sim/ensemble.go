// Package sim runs many independent walks concurrently and summarizes them.
package sim

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/san-kum/randwalk/internal/metrics"
	"github.com/san-kum/randwalk/internal/walk"
)

// Ensemble generates Runs walks with seeds SeedStart, SeedStart+1, ...
type Ensemble struct {
	params    walk.Params
	runs      int
	seedStart uint64
	workers   int
}

func NewEnsemble(p walk.Params, runs int, seedStart uint64) (*Ensemble, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if runs <= 0 {
		return nil, fmt.Errorf("ensemble needs at least one run, got %d", runs)
	}
	// seed 0 would mean "from the clock" for the first walk
	if seedStart == 0 {
		seedStart = 1
	}
	return &Ensemble{params: p, runs: runs, seedStart: seedStart, workers: runtime.NumCPU()}, nil
}

// SetWorkers bounds the number of walks generated at once.
func (e *Ensemble) SetWorkers(n int) {
	if n > 0 {
		e.workers = n
	}
}

type Result struct {
	Seed    uint64
	Metrics map[string]float64
}

type Summary struct {
	Runs        int
	Steps       int
	Mean        map[string]float64
	RMSDistance float64
	ExpectedRMS float64
}

// Run generates every walk and returns the per-run results ordered by seed.
func (e *Ensemble) Run(ctx context.Context) ([]Result, error) {
	results := make([]Result, e.runs)
	errs := make([]error, e.runs)

	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup
	for i := 0; i < e.runs; i++ {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			p := e.params
			p.Seed = e.seedStart + uint64(idx)
			st, err := walk.Run(p)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx] = Result{Seed: p.Seed, Metrics: metrics.Compute(st)}
		}(i)
	}

	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Summarize averages every metric and the squared final distance.
func (e *Ensemble) Summarize(results []Result) Summary {
	s := Summary{
		Runs:        len(results),
		Steps:       e.params.Steps,
		Mean:        make(map[string]float64),
		ExpectedRMS: metrics.ExpectedRMS(e.params.Steps, e.params.MaxStepLength),
	}
	if len(results) == 0 {
		return s
	}

	var sq float64
	for _, r := range results {
		for k, v := range r.Metrics {
			s.Mean[k] += v
		}
		d := r.Metrics["final_distance"]
		sq += d * d
	}
	n := float64(len(results))
	for k := range s.Mean {
		s.Mean[k] /= n
	}
	s.RMSDistance = math.Sqrt(sq / n)
	return s
}

// MetricNames returns the summary metric names in a stable order.
func (s Summary) MetricNames() []string {
	names := make([]string, 0, len(s.Mean))
	for k := range s.Mean {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
