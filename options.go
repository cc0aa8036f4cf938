package parfill

import "time"

type config struct {
	threshold  int
	maxWorkers int
	exec       Executor
	release    any // func(T); matched against the element type at the entry point
	onRange    func(lo, hi int, d time.Duration)
	onComplete func(Stats)
}

// Option configures a single fill operation.
type Option func(*config)

func defaultConfig() config {
	return config{}
}

// WithThreshold sets the sequential grain: ranges at or below this many
// slots are produced sequentially instead of being split further. A
// threshold of zero (the default) derives the grain from the array
// length and GOMAXPROCS. WithThreshold panics if n is negative.
func WithThreshold(n int) Option {
	if n < 0 {
		panic("parfill: threshold must be non-negative")
	}
	return func(c *config) {
		c.threshold = n
	}
}

// WithMaxWorkers bounds how many goroutines may execute the operation
// concurrently, including the calling goroutine. Zero (the default)
// means GOMAXPROCS. One disables forking entirely.
// WithMaxWorkers panics if n is negative.
//
// Ignored when [WithExecutor] is set; the executor then owns placement.
func WithMaxWorkers(n int) Option {
	if n < 0 {
		panic("parfill: max workers must be non-negative")
	}
	return func(c *config) {
		c.maxWorkers = n
	}
}

// WithExecutor supplies the [Executor] that runs forked sub-ranges,
// replacing the default goroutine-per-fork executor. Use a [*Pool] to
// share a fixed set of workers across many fills.
// WithExecutor panics if e is nil.
func WithExecutor(e Executor) Option {
	if e == nil {
		panic("parfill: WithExecutor requires non-nil executor")
	}
	return func(c *config) {
		c.exec = e
	}
}

// WithRelease registers a teardown hook for initialized slots. If the
// operation fails partway, the hook is called exactly once for every
// value already written before the failure propagates; the slot is then
// zeroed. Successful operations never invoke the hook.
//
// T must match the element type of the fill the option is passed to;
// a mismatch panics at the entry point.
// WithRelease panics if fn is nil.
func WithRelease[T any](fn func(T)) Option {
	if fn == nil {
		panic("parfill: WithRelease requires non-nil function")
	}
	return func(c *config) {
		c.release = fn
	}
}

// WithOnRange registers a hook invoked after each base-case range has
// been produced, with the range bounds and its wall-clock duration.
// The hook runs in the producing goroutine and must not panic.
func WithOnRange(fn func(lo, hi int, d time.Duration)) Option {
	return func(c *config) {
		c.onRange = fn
	}
}

// WithOnComplete registers a hook invoked once with the operation's
// [Stats] after it finishes, whether it succeeded or failed. On failure
// the hook runs after cleanup, before the error or panic propagates.
func WithOnComplete(fn func(Stats)) Option {
	return func(c *config) {
		c.onComplete = fn
	}
}

// releaseFor resolves the type-erased release hook against the fill's
// element type.
func releaseFor[T any](c *config) func(T) {
	if c.release == nil {
		return nil
	}
	fn, ok := c.release.(func(T))
	if !ok {
		panic("parfill: WithRelease function does not match the fill element type")
	}
	return fn
}
