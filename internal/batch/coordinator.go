// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

// Package batch coordinates fetching many independent resources under a
// concurrency cap. Requests are partitioned into sequential waves of the
// batch size; a wave's requests run concurrently and the next wave does
// not start until every request in the current one has settled. This is
// the admission-control mechanism bounding outbound load no matter how
// many entities are tracked.
package batch

import (
	"context"
	"sync"

	"github.com/tmorland/pitchside/internal/logging"
	"github.com/tmorland/pitchside/internal/metrics"
)

// Item is one unit of work: a resource id plus the logical group it
// belongs to, carried through to the aggregated result.
type Item struct {
	ID    int
	Group string
}

// Result is one fulfilled fetch together with its originating item.
type Result[T any] struct {
	Item  Item
	Value T
}

// FetchFunc fetches one item's resource.
type FetchFunc[T any] func(ctx context.Context, item Item) (T, error)

// FetchAll fetches all items in ⌈len(items)/batchSize⌉ sequential waves.
// Rejected requests are dropped silently; only fulfilled results appear in
// the returned slice, in item order. A failure never aborts the wave or
// the waves after it. batchSize below 1 runs everything in a single wave.
func FetchAll[T any](ctx context.Context, items []Item, batchSize int, fetch FetchFunc[T]) []Result[T] {
	if len(items) == 0 {
		return nil
	}
	if batchSize < 1 {
		batchSize = len(items)
	}

	// Settled slots, indexed like items so aggregation preserves order.
	values := make([]T, len(items))
	fulfilled := make([]bool, len(items))

	for start := 0; start < len(items); start += batchSize {
		end := start + batchSize
		if end > len(items) {
			end = len(items)
		}
		metrics.BatchWaves.Inc()

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				value, err := fetch(ctx, items[i])
				if err != nil {
					metrics.BatchDropped.Inc()
					logging.Debug().
						Err(err).
						Int("id", items[i].ID).
						Str("group", items[i].Group).
						Msg("Batch request dropped")
					return
				}
				values[i] = value
				fulfilled[i] = true
			}(i)
		}
		wg.Wait()
	}

	results := make([]Result[T], 0, len(items))
	for i, ok := range fulfilled {
		if ok {
			results = append(results, Result[T]{Item: items[i], Value: values[i]})
		}
	}
	return results
}
