package parfill

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

// Fill initializes every slot of dst by calling produce concurrently,
// one call per index. Element-to-element completion order is
// unspecified; on return, dst[i] == produce(i) for every i.
//
// If produce panics, already-initialized slots are released (see
// [WithRelease]) and zeroed before the panic is re-raised as a
// [*PanicError]. Fill panics immediately if produce is nil.
func Fill[T any](dst []T, produce func(int) T, opts ...Option) {
	if produce == nil {
		panic("parfill: Fill requires non-nil produce")
	}
	// produce cannot fail here, so run ends in success or a re-raised panic.
	_ = run(dst, func(i int) (T, error) {
		return produce(i), nil
	}, opts)
}

// TryFill is the fallible form of [Fill]. The first error returned by
// any produce call is recorded, remaining production is skipped
// cooperatively, and — once every in-flight sub-task has joined — all
// previously initialized slots are released and zeroed. The recorded
// error is returned wrapped in a [*SlotError] carrying the slot index.
func TryFill[T any](dst []T, produce func(int) (T, error), opts ...Option) error {
	if produce == nil {
		panic("parfill: TryFill requires non-nil produce")
	}
	return run(dst, produce, opts)
}

// Of allocates a slice of n elements and fills it via [Fill].
//
//	squares := parfill.Of(50, func(i int) int { return i * i })
func Of[T any](n int, produce func(int) T, opts ...Option) []T {
	if n < 0 {
		panic("parfill: Of requires n >= 0")
	}
	dst := make([]T, n)
	Fill(dst, produce, opts...)
	return dst
}

// TryOf allocates a slice of n elements and fills it via [TryFill].
// On error it returns nil and the first error recorded.
func TryOf[T any](n int, produce func(int) (T, error), opts ...Option) ([]T, error) {
	if n < 0 {
		panic("parfill: TryOf requires n >= 0")
	}
	dst := make([]T, n)
	if err := TryFill(dst, produce, opts...); err != nil {
		return nil, err
	}
	return dst, nil
}

// FromStream fills dst by draining exactly len(dst) items from src.
// Pulls are serialized under an internal lock, so which item lands in
// which slot is unspecified, consistent with unspecified completion
// order; surplus items are left unconsumed.
//
// If src is exhausted before dst is full, FromStream releases every
// initialized slot and returns an error wrapping [ErrLengthMismatch].
// Other stream errors propagate like produce errors in [TryFill].
func FromStream[T any](ctx context.Context, dst []T, src *Stream[T], opts ...Option) error {
	if src == nil {
		panic("parfill: FromStream requires non-nil src")
	}

	var (
		mu     sync.Mutex
		pulled int
	)
	want := len(dst)

	return run(dst, func(int) (T, error) {
		mu.Lock()
		defer mu.Unlock()

		v, err := src.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return v, fmt.Errorf("%w: stream yielded %d of %d items",
					ErrLengthMismatch, pulled, want)
			}
			return v, err
		}
		pulled++
		return v, nil
	}, opts)
}

// OfStream allocates a slice of n elements and fills it via [FromStream].
func OfStream[T any](ctx context.Context, n int, src *Stream[T], opts ...Option) ([]T, error) {
	if n < 0 {
		panic("parfill: OfStream requires n >= 0")
	}
	dst := make([]T, n)
	if err := FromStream(ctx, dst, src, opts...); err != nil {
		return nil, err
	}
	return dst, nil
}
