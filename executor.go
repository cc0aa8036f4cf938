package parfill

import (
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Executor places forked sub-ranges of a fill operation.
//
// TrySubmit must either start fn promptly on another goroutine and
// return true, or leave fn untouched and return false. Accepting fn and
// then queueing it behind the calling goroutine is forbidden: the caller
// joins on fn's completion, so a queued task would deadlock the fork.
// When TrySubmit returns false the engine runs the range inline instead.
type Executor interface {
	TrySubmit(fn func()) bool
}

// goExecutor is the default executor: one fresh goroutine per accepted
// fork, bounded by a token budget so a fill never runs on more than the
// configured number of goroutines at once.
type goExecutor struct {
	sem *semaphore.Weighted
}

// newGoExecutor builds an executor for a fill allowed to occupy
// `workers` goroutines. The caller's goroutine is one of them, so the
// fork budget is workers-1.
func newGoExecutor(workers int) *goExecutor {
	spare := workers - 1
	if spare < 0 {
		spare = 0
	}
	return &goExecutor{sem: semaphore.NewWeighted(int64(spare))}
}

func maxWorkersDefault() int {
	return runtime.GOMAXPROCS(0)
}

func (e *goExecutor) TrySubmit(fn func()) bool {
	if !e.sem.TryAcquire(1) {
		return false
	}
	go func() {
		defer e.sem.Release(1)
		fn()
	}()
	return true
}
