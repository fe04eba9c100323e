package batchlib

import "context"

// Pipeline glues a source, a worker pool and a collector together.
type Pipeline struct {
	Pool *WorkerPool

	// OnResult is called for each result as it comes from the pool,
	// in completion order. It is called from a single goroutine.
	OnResult func(ResultEntry)
}

// Run resolves all addresses of the source and returns them in input
// order. Per-address failures are part of the result set; an error is
// returned only if a batch could not be completed.
func (p Pipeline) Run(ctx context.Context, source Source) (ResultSet, error) {
	batch := p.Pool.Run(ctx, source)
	collector := NewCollector(0)

	for entry := range batch.Results() {
		collector.Add(entry)

		if p.OnResult != nil {
			p.OnResult(entry)
		}
	}

	if err := batch.Err(); err != nil {
		return nil, err
	}

	return collector.Finish(batch.Dispatched())
}
