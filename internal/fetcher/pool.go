package fetcher

import (
	"context"
	"sync"
)

// DefaultWorkers caps concurrent enrichment calls per bucket. Small on
// purpose: the ceiling bounds both upstream load and local browser tabs.
const DefaultWorkers = 5

// EnrichAll runs fn over items with at most width calls in flight,
// preserving input order in the result. Each call receives a pointer into
// the original slice so partial enrichment survives a failure. Errors are
// reported per index and never cancel sibling items.
func EnrichAll[T any](ctx context.Context, width int, items []T, fn func(ctx context.Context, i int, item *T) error) []error {
	if width <= 0 {
		width = DefaultWorkers
	}

	errs := make([]error, len(items))
	sem := make(chan struct{}, width)
	var wg sync.WaitGroup

	for i := range items {
		select {
		case <-ctx.Done():
			errs[i] = ctx.Err()
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			errs[i] = fn(ctx, i, &items[i])
		}(i)
	}

	wg.Wait()
	return errs
}
