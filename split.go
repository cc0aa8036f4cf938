package parfill

import "runtime"

// splitRange returns the midpoint of the half-open range [lo, hi).
// The two halves [lo, mid) and [mid, hi) partition the input exactly.
// Only defined for hi-lo > 1; smaller ranges are base cases.
func splitRange(lo, hi int) int {
	return int(uint(lo+hi) >> 1)
}

// defaultThreshold picks the sequential grain for an n-slot fill:
// roughly eight leaf ranges per processor, so the scheduler has slack
// to balance uneven produce costs, but never below one slot.
func defaultThreshold(n int) int {
	grain := n / (8 * runtime.GOMAXPROCS(0))
	if grain < 1 {
		grain = 1
	}
	return grain
}
