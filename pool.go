package parfill

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrPoolClosed is returned by [Pool.Submit] when the pool has been closed.
var ErrPoolClosed = errors.New("parfill: pool is closed")

// Pool is a fixed set of worker goroutines implementing [Executor], so
// many fill operations can share one bounded set of workers instead of
// each spawning its own goroutines.
//
// Handoff is direct: TrySubmit accepts a task only when a worker is
// ready to take it on the spot. That upholds the [Executor] contract —
// an accepted fork starts immediately — so fork-join fills cannot
// deadlock on a saturated pool; refused forks simply run inline.
type Pool struct {
	tasks  chan func()
	done   chan struct{}
	wg     sync.WaitGroup
	closed atomic.Bool

	// Observability counters.
	accepted atomic.Int64
	rejected atomic.Int64
	inFlight atomic.Int64
	workers  int
}

// PoolStats is a point-in-time snapshot of pool activity.
type PoolStats struct {
	Accepted int64 // tasks handed to a worker
	Rejected int64 // TrySubmit calls refused for lack of a ready worker
	InFlight int64 // tasks currently executing
	Workers  int   // worker count (fixed at creation)
}

// NewPool starts a pool with n worker goroutines. Workers run until
// [Pool.Close] is called. Panics if n <= 0.
func NewPool(n int) *Pool {
	if n <= 0 {
		panic("parfill: NewPool requires n > 0")
	}

	p := &Pool{
		// Unbuffered: a send succeeds only when a worker is receiving.
		tasks:   make(chan func()),
		done:    make(chan struct{}),
		workers: n,
	}

	p.wg.Add(n)
	for range n {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case fn := <-p.tasks:
			p.runTask(fn)
		case <-p.done:
			return
		}
	}
}

func (p *Pool) runTask(fn func()) {
	p.inFlight.Add(1)
	defer p.inFlight.Add(-1)
	fn()
}

// TrySubmit implements [Executor]. It returns true only if an idle
// worker took the task; fn is never queued.
func (p *Pool) TrySubmit(fn func()) bool {
	if p.closed.Load() {
		return false
	}

	select {
	case p.tasks <- fn:
		p.accepted.Add(1)
		return true
	default:
		p.rejected.Add(1)
		return false
	}
}

// Submit blocks until a worker takes the task, the pool closes, or ctx
// is cancelled. Unlike [Pool.TrySubmit] it is meant for independent
// top-level work, not for forks the caller will join on.
func (p *Pool) Submit(ctx context.Context, fn func()) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- fn:
		p.accepted.Add(1)
		return nil
	case <-p.done:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns a point-in-time snapshot of pool activity.
// Safe to call concurrently.
func (p *Pool) Stats() PoolStats {
	return PoolStats{
		Accepted: p.accepted.Load(),
		Rejected: p.rejected.Load(),
		InFlight: p.inFlight.Load(),
		Workers:  p.workers,
	}
}

// Close stops the workers after their current tasks finish and waits
// for them to exit. Subsequent submissions are refused.
// Safe to call multiple times.
func (p *Pool) Close() {
	if p.closed.CompareAndSwap(false, true) {
		close(p.done)
	}
	p.wg.Wait()
}
