package batchlib

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

const (
	// DefaultResultsBufferFactor defines a capacity of results channel
	// per worker if it is not set explicitly.
	DefaultResultsBufferFactor = 4

	workerPoolExpireTime = time.Minute
)

type resolveRequest struct {
	entry   AddressEntry
	results chan<- ResultEntry
	wg      *sync.WaitGroup
}

// WorkerPool runs a resolver on a bounded number of goroutines.
type WorkerPool struct {
	resolver   Resolver
	logger     Logger
	pool       *ants.PoolWithFunc
	bufferSize int
	closeOnce  sync.Once
}

// Workers returns a number of goroutines which can resolve at the same
// time.
func (w *WorkerPool) Workers() int {
	return w.pool.Cap()
}

// Run starts to consume the source in background and returns a batch.
// Results of the batch have to be drained by the caller: a full results
// channel blocks workers and, through them, the source consumption.
func (w *WorkerPool) Run(ctx context.Context, source Source) *Batch {
	results := make(chan ResultEntry, w.bufferSize)
	batch := &Batch{
		results: results,
	}

	go batch.dispatch(ctx, w, source, results)

	return batch
}

func (w *WorkerPool) Close() {
	w.closeOnce.Do(func() {
		w.pool.Release()
	})
}

func (w *WorkerPool) resolve(args interface{}) {
	req := args.(*resolveRequest)
	defer req.wg.Done()

	rv := ResultEntry{
		Index: req.entry.Index,
	}

	if record, err := w.resolver.Resolve(req.entry.Raw); err != nil {
		rv.Failure = asLookupFailure(req.entry.Raw, err)
		w.logger.LookupError(req.entry.Raw, rv.Failure)
	} else {
		rv.Record = record
	}

	req.results <- rv
}

// Batch is a single run of the worker pool over a source.
type Batch struct {
	results    chan ResultEntry
	dispatched uint64
	err        error
}

// Results is a channel of resolved entries in no particular order. It
// is closed when all dispatched entries are resolved.
func (b *Batch) Results() <-chan ResultEntry {
	return b.results
}

// Dispatched returns a number of entries sent to workers. It is valid
// only after Results is closed.
func (b *Batch) Dispatched() uint64 {
	return b.dispatched
}

// Err returns an error which stopped dispatching: source read error,
// closed context or closed pool. It is valid only after Results is
// closed.
func (b *Batch) Err() error {
	return b.err
}

func (b *Batch) dispatch(ctx context.Context,
	w *WorkerPool,
	source Source,
	results chan<- ResultEntry) {
	wg := &sync.WaitGroup{}

	defer func() {
		wg.Wait()
		close(results)
	}()

	for {
		select {
		case <-ctx.Done():
			b.err = fmt.Errorf("%w: %v", ErrContextIsClosed, ctx.Err())

			return
		default:
		}

		entry, err := source.Next()

		switch {
		case errors.Is(err, io.EOF):
			return
		case err != nil:
			b.err = fmt.Errorf("cannot read next address: %w", err)

			return
		}

		wg.Add(1)

		req := &resolveRequest{
			entry:   entry,
			results: results,
			wg:      wg,
		}

		if err := w.pool.Invoke(req); err != nil {
			wg.Done()

			if errors.Is(err, ants.ErrPoolClosed) {
				err = ErrPoolClosed
			}

			b.err = fmt.Errorf("cannot schedule a task: %w", err)

			return
		}

		b.dispatched++
	}
}

// DefaultWorkers is a worker count which is used if nothing is set
// explicitly.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// NewWorkerPool creates a new pool of workers. Non-positive workers or
// bufferSize mean defaults.
func NewWorkerPool(resolver Resolver, logger Logger, workers, bufferSize int) (*WorkerPool, error) {
	if workers <= 0 {
		workers = DefaultWorkers()
	}

	if bufferSize <= 0 {
		bufferSize = DefaultResultsBufferFactor * workers
	}

	rv := &WorkerPool{
		resolver:   resolver,
		logger:     logger,
		bufferSize: bufferSize,
	}

	pool, err := ants.NewPoolWithFunc(workers, rv.resolve,
		ants.WithExpiryDuration(workerPoolExpireTime),
		ants.WithPanicHandler(logger.WorkerPanic))
	if err != nil {
		return nil, fmt.Errorf("cannot create a worker pool: %w", err)
	}

	rv.pool = pool

	return rv, nil
}
