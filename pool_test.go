package parfill_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parfill/parfill"
)

func TestPoolDirectHandoff(t *testing.T) {
	p := parfill.NewPool(2)
	defer p.Close()

	block := make(chan struct{})
	var started sync.WaitGroup

	// Occupy both workers.
	for range 2 {
		started.Add(1)
		ok := p.TrySubmit(func() {
			started.Done()
			<-block
		})
		require.True(t, ok, "idle worker should take the task")
	}
	started.Wait()

	// No worker is free: the pool must refuse rather than queue.
	assert.False(t, p.TrySubmit(func() {}))

	stats := p.Stats()
	assert.Equal(t, int64(2), stats.Accepted)
	assert.Equal(t, int64(1), stats.Rejected)
	assert.Equal(t, int64(2), stats.InFlight)
	assert.Equal(t, 2, stats.Workers)

	close(block)
}

func TestPoolSubmitBlocksForWorker(t *testing.T) {
	p := parfill.NewPool(1)
	defer p.Close()

	block := make(chan struct{})
	require.True(t, p.TrySubmit(func() { <-block }))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = p.Submit(context.Background(), func() {})
	}()

	select {
	case <-done:
		t.Fatal("Submit should block while the only worker is busy")
	case <-time.After(20 * time.Millisecond):
	}

	close(block)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit did not complete after a worker freed up")
	}
}

func TestPoolSubmitCancelledContext(t *testing.T) {
	p := parfill.NewPool(1)
	defer p.Close()

	block := make(chan struct{})
	defer close(block)
	require.True(t, p.TrySubmit(func() { <-block }))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := p.Submit(ctx, func() {})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPoolClosedRefusesWork(t *testing.T) {
	p := parfill.NewPool(2)
	p.Close()

	assert.False(t, p.TrySubmit(func() {}))
	assert.ErrorIs(t, p.Submit(context.Background(), func() {}), parfill.ErrPoolClosed)

	// Close is idempotent.
	p.Close()
}

func TestPoolAsFillExecutor(t *testing.T) {
	p := parfill.NewPool(4)
	defer p.Close()

	for _, n := range []int{1, 5, 1000} {
		dst := make([]int, n)
		parfill.Fill(dst, func(i int) int { return i * 2 },
			parfill.WithExecutor(p),
			parfill.WithThreshold(8),
		)
		for i, v := range dst {
			if v != i*2 {
				t.Fatalf("n=%d: slot %d holds %d, expected %d", n, i, v, i*2)
			}
		}
	}
}

func TestPoolSharedAcrossConcurrentFills(t *testing.T) {
	p := parfill.NewPool(3)
	defer p.Close()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := parfill.Of(256, func(i int) int { return i },
				parfill.WithExecutor(p),
				parfill.WithThreshold(4),
			)
			for i, v := range got {
				if v != i {
					t.Errorf("slot %d holds %d", i, v)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestNewPoolInvalid(t *testing.T) {
	if capturePanic(func() { parfill.NewPool(0) }) == nil {
		t.Fatal("expected panic for n = 0")
	}
}
