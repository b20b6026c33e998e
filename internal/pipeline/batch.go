// internal/pipeline/batch.go
package pipeline

import (
	"context"
	"sync"

	"ab1align/internal/ingest"
)

// Item is the result for one trace of a batch. Exactly one of Outcome and
// Err is set.
type Item struct {
	Index     int
	TracePath string
	Outcome   *Outcome
	Err       error
}

// ForEachTrace aligns every trace against the reference read from refPath,
// using up to threads workers, and calls visit once per trace in input order.
// A failing trace is reported through Item.Err and does not stop the batch.
// It returns the reference's ingestion error, the first visit error, or the
// context's error.
func (r *Runner) ForEachTrace(
	parent context.Context,
	refPath string,
	tracePaths []string,
	threads int,
	visit func(Item) error,
) error {
	if threads < 1 {
		threads = 1
	}
	ref, err := ingest.ReadReference(refPath)
	if err != nil {
		return err
	}
	if err := r.checkLength(refPath, ref); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	jobs := make(chan int, threads*2)
	results := make(chan Item, threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(threads)
	for w := 0; w < threads; w++ {
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
					it := Item{Index: i, TracePath: tracePaths[i]}
					trace, err := ingest.ReadTrace(it.TracePath)
					if err == nil {
						err = r.checkLength(it.TracePath, trace)
					}
					if err == nil {
						it.Outcome, err = r.Align(ref, trace)
					}
					it.Err = err

					select {
					case results <- it:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector; restores input order.
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		pending := make(map[int]Item)
		next := 0
		for it := range results {
			pending[it.Index] = it
			for {
				cur, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if cerr != nil {
					continue
				}
				if err := visit(cur); err != nil {
					cerr = err
					cancel()
				}
			}
		}
	}()

	// Feed work
feed:
	for i := range tracePaths {
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
	return parent.Err()
}
