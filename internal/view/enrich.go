package view

import (
	"context"
	"log/slog"
	"sync"
)

// Lookup attaches one secondary record to a row in place. Returning an error
// leaves the row's derived field at its missing placeholder; it never fails
// the row or the batch.
type Lookup[T any] func(ctx context.Context, row *T) error

// EnrichOptions configures the enrichment fan-out.
type EnrichOptions struct {
	// OnRow, if set, is called after each row finishes all its lookups.
	// Used by commands to tick a progress bar.
	OnRow func()
	// Workers bounds the number of rows enriched concurrently.
	Workers int
}

// DefaultEnrichWorkers bounds the secondary-lookup fan-out so a large
// collection cannot flood the backend.
const DefaultEnrichWorkers = 8

// Enrich runs every lookup against every row on a bounded worker pool and
// returns the same slice with derived fields attached. Input order is
// preserved: workers write only to their own row, so results merge by row
// identity rather than completion order. Lookup failures are logged and
// swallowed per row; only context cancellation stops the batch early.
func Enrich[T any](ctx context.Context, rows []T, lookups []Lookup[T], opts EnrichOptions) []T {
	if len(rows) == 0 || len(lookups) == 0 {
		return rows
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultEnrichWorkers
	}
	if workers > len(rows) {
		workers = len(rows)
	}

	workChan := make(chan int, len(rows))
	for i := range rows {
		workChan <- i
	}
	close(workChan)

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range workChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				for _, lookup := range lookups {
					if err := lookup(ctx, &rows[i]); err != nil {
						slog.Warn("Enrichment lookup failed, leaving field empty",
							"row_index", i,
							"error", err)
					}
				}

				if opts.OnRow != nil {
					opts.OnRow()
				}
			}
		}()
	}

	wg.Wait()
	return rows
}
