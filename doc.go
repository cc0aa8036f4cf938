// Package parfill initializes fixed-length storage in parallel.
//
// A fill computes every element of a caller-supplied slice (typically a
// slice over a fixed array) concurrently, either from an index→value
// function or by draining a [Stream]. Each slot is written exactly
// once, concurrent tasks never share a slot, and completion order is
// unspecified — the result is indistinguishable from a sequential fill.
//
// # Filling
//
// [Fill] and [TryFill] write into storage the caller owns; [Of] and
// [TryOf] allocate it:
//
//	var arr [50]int
//	parfill.Fill(arr[:], func(i int) int { return i * i })
//
//	users, err := parfill.TryOf(len(ids), func(i int) (User, error) {
//	    return lookup(ids[i])
//	})
//
// Internally a fill splits its index range at the midpoint, offers one
// half to an [Executor], runs the other half itself, and joins both
// before returning. Ranges at or below a threshold ([WithThreshold])
// are produced sequentially in index order.
//
// # Failure and cleanup
//
// If produce panics or returns an error, the first failure wins:
// remaining production is skipped cooperatively, in-flight sub-tasks
// run to completion, and every slot initialized so far is torn down
// exactly once — the [WithRelease] hook runs with the value, then the
// slot is zeroed. Only then does the failure propagate: [TryFill]
// returns the error wrapped in a [*SlotError]; [Fill] re-raises the
// panic as a [*PanicError] with the producing goroutine's stack.
// Callers never observe a partially valid array.
//
// # Streams
//
// [FromStream] and [OfStream] fill from a pull-based [Stream], created
// with [NewStream], [FromSlice], or [FromChan] and composed lazily via
// [Stream.Filter], [Stream.Take], [Stream.Skip], [Stream.Peek], and
// [Map]. Exactly len(dst) items are consumed; a stream that runs dry
// first yields an error wrapping [ErrLengthMismatch], and surplus items
// stay in the stream.
//
// # Executors
//
// By default forks run on fresh goroutines, bounded by [WithMaxWorkers]
// (GOMAXPROCS when unset). [WithExecutor] substitutes any [Executor];
// [Pool] is a fixed worker set with direct handoff, safe for fork-join
// because it refuses — rather than queues — work when saturated, and a
// refused fork runs inline.
//
// # Asynchronous fills
//
// [OfAsync] and [TryOfAsync] run a fill on its own goroutine and return
// a [Result] handle; [Result.Wait] reports produce panics as errors.
//
// # Observability
//
// [WithOnRange] observes each sequential range with its duration;
// [WithOnComplete] receives per-operation [Stats]. Hooks run in task
// goroutines and must not panic.
package parfill
