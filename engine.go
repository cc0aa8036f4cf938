package parfill

import (
	"sync"
	"sync/atomic"
	"time"
)

// op is the state of one fill operation: the target storage, the
// producer, the completion record, and the first-failure slot shared by
// every sub-task of the recursion.
type op[T any] struct {
	dst       []T
	produce   func(int) (T, error)
	exec      Executor
	threshold int
	release   func(T)
	onRange   func(lo, hi int, d time.Duration)

	failed   atomic.Bool
	failOnce sync.Once
	err      error
	pan      *PanicError

	guard guard
	stats opStats
}

// run is the common top-level wrapper behind every entry point. It
// executes the fork-join fill over [0, len(dst)), then either returns
// cleanly or — after releasing every initialized slot — surfaces the
// first recorded failure: fallible errors by return, produce panics by
// re-raising the captured *PanicError.
func run[T any](dst []T, produce func(int) (T, error), opts []Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(dst) == 0 {
		if cfg.onComplete != nil {
			cfg.onComplete(Stats{})
		}
		return nil
	}

	o := &op[T]{
		dst:       dst,
		produce:   produce,
		threshold: cfg.threshold,
		release:   releaseFor[T](&cfg),
		exec:      cfg.exec,
		onRange:   cfg.onRange,
	}
	if o.threshold == 0 {
		o.threshold = defaultThreshold(len(dst))
	}
	if o.exec == nil {
		workers := cfg.maxWorkers
		if workers == 0 {
			workers = maxWorkersDefault()
		}
		o.exec = newGoExecutor(workers)
	}

	// Every sub-task has joined by the time fill returns, so the
	// failure slots and completion record are safe to read plainly.
	o.fill(0, len(dst))

	if o.err == nil && o.pan == nil {
		if cfg.onComplete != nil {
			cfg.onComplete(o.stats.snapshot())
		}
		return nil
	}

	released := o.releaseAll()
	o.stats.released.Store(int64(released))
	if cfg.onComplete != nil {
		cfg.onComplete(o.stats.snapshot())
	}

	if o.pan != nil {
		panic(o.pan)
	}
	return o.err
}

// fill covers [lo, hi): below the threshold it produces sequentially,
// otherwise it splits at the midpoint, offers the right half to the
// executor, runs the left half itself, and joins before returning. When
// the executor refuses the fork, both halves run inline.
func (o *op[T]) fill(lo, hi int) {
	if o.failed.Load() {
		o.stats.skipped.Add(int64(hi - lo))
		return
	}
	if hi-lo <= o.threshold {
		o.runSeq(lo, hi)
		return
	}

	mid := splitRange(lo, hi)

	var wg sync.WaitGroup
	wg.Add(1)
	if o.exec.TrySubmit(func() {
		defer wg.Done()
		o.fill(mid, hi)
	}) {
		o.stats.forks.Add(1)
		o.fill(lo, mid)
		wg.Wait()
		return
	}
	wg.Done()

	o.fill(lo, mid)
	o.fill(mid, hi)
}

// runSeq is the base case: produce each slot of [lo, hi) in index
// order, recording the initialized prefix whether the range completes
// or fails partway.
func (o *op[T]) runSeq(lo, hi int) {
	var start time.Time
	if o.onRange != nil {
		start = time.Now()
	}

	o.stats.seqRanges.Add(1)

	written := lo
	err := o.produceRange(lo, hi, &written)
	if written > lo {
		o.guard.record(lo, written)
		o.stats.produced.Add(int64(written - lo))
	}
	if err != nil {
		o.fail(err)
	}

	if o.onRange != nil {
		o.onRange(lo, hi, time.Since(start))
	}
}

// produceRange writes slots lo..hi-1, advancing *written past each
// successful slot. A produce panic is captured as a *PanicError so the
// recursion never unwinds past the completion record. Once another task
// has recorded a failure, remaining production is skipped.
func (o *op[T]) produceRange(lo, hi int, written *int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newPanicError(r)
		}
	}()

	for i := lo; i < hi; i++ {
		if o.failed.Load() {
			o.stats.skipped.Add(int64(hi - i))
			return nil
		}
		v, perr := o.produce(i)
		if perr != nil {
			return &SlotError{Index: i, Err: perr}
		}
		// Safe without synchronization: no other task owns index i.
		o.dst[i] = v
		*written = i + 1
	}
	return nil
}

// fail records the operation's failure. First one wins; later failures
// are dropped, matching the best-effort short-circuit contract.
func (o *op[T]) fail(err error) {
	o.failOnce.Do(func() {
		if pe, ok := err.(*PanicError); ok {
			o.pan = pe
		} else {
			o.err = err
		}
		o.failed.Store(true)
	})
}
