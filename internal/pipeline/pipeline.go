// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"sync"
)

// Config controls the worker pool.
type Config struct {
	Threads int // number of worker goroutines (>=1)
}

// ForEach runs work on every input with cfg.Threads workers and calls visit
// with each result in input order. It returns the first error encountered
// (including context cancellation); visit is not called past a failed input.
func ForEach[In, Out any](
	ctx context.Context,
	cfg Config,
	inputs []In,
	work func(context.Context, In) (Out, error),
	visit func(int, Out) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if cfg.Threads > len(inputs) {
		cfg.Threads = max(len(inputs), 1)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		i   int
		out Out
		err error
	}
	jobs := make(chan int, cfg.Threads*2)
	results := make(chan result, cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-jobs:
					if !ok {
						return
					}
					out, err := work(ctx, inputs[i])
					select {
					case results <- result{i: i, out: out, err: err}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector: reorders results and stops at the first failure.
	var (
		cerr    error
		cwg     sync.WaitGroup
		pending = make(map[int]result, cfg.Threads)
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		next := 0
		for r := range results {
			if cerr != nil {
				continue
			}
			pending[r.i] = r
			for {
				p, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				err := p.err
				if err == nil {
					err = visit(p.i, p.out)
				}
				if err != nil {
					cerr = err
					cancel()
					break
				}
			}
		}
	}()

	// Feed work
feed:
	for i := range inputs {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if cerr != nil {
		return cerr
	}
	return ctx.Err()
}
