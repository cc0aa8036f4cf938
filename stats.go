package parfill

import "sync/atomic"

// Stats is a summary of one fill operation, delivered to the
// [WithOnComplete] hook after the operation has finished (and, on
// failure, after cleanup).
type Stats struct {
	Forks     int64 // sub-ranges handed off to the executor
	SeqRanges int64 // base-case ranges executed sequentially
	Produced  int64 // slots successfully produced and written
	Skipped   int64 // slots skipped after a failure was recorded
	Released  int64 // slots torn down during failure cleanup
}

// opStats holds the live counters behind [Stats]. Counters are updated
// from concurrently executing sub-tasks, hence atomics.
type opStats struct {
	forks     atomic.Int64
	seqRanges atomic.Int64
	produced  atomic.Int64
	skipped   atomic.Int64
	released  atomic.Int64
}

func (s *opStats) snapshot() Stats {
	return Stats{
		Forks:     s.forks.Load(),
		SeqRanges: s.seqRanges.Load(),
		Produced:  s.produced.Load(),
		Skipped:   s.skipped.Load(),
		Released:  s.released.Load(),
	}
}
