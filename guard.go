package parfill

import "sync"

// span is a half-open range [lo, hi) of initialized slots.
type span struct {
	lo, hi int
}

// guard is the completion record for one fill operation. Every
// base-case range reports the prefix of slots it actually initialized;
// spans are disjoint because ranges in flight never overlap. On failure
// the record drives teardown of exactly the initialized slots.
type guard struct {
	mu    sync.Mutex
	spans []span
}

// record marks [lo, hi) as initialized. No-op for empty ranges.
func (g *guard) record(lo, hi int) {
	if hi <= lo {
		return
	}
	g.mu.Lock()
	g.spans = append(g.spans, span{lo: lo, hi: hi})
	g.mu.Unlock()
}

// take consumes the record so teardown can run at most once.
func (g *guard) take() []span {
	g.mu.Lock()
	spans := g.spans
	g.spans = nil
	g.mu.Unlock()
	return spans
}

// releaseAll tears down every initialized slot exactly once: the
// release hook (if any) runs with the slot's value, then the slot is
// zeroed so the caller never observes a partial result. Uninitialized
// slots are untouched. Returns the number of slots released.
//
// Must only be called after every sub-task has joined.
func (o *op[T]) releaseAll() int {
	var zero T
	released := 0
	for _, sp := range o.guard.take() {
		for i := sp.lo; i < sp.hi; i++ {
			if o.release != nil {
				o.release(o.dst[i])
			}
			o.dst[i] = zero
			released++
		}
	}
	return released
}
