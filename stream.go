package parfill

import (
	"context"
	"io"
	"sync"
)

// Stream is a pull-based sequence of items, used as the source for
// [FromStream] and [OfStream]. A stream ends with io.EOF.
//
// Streams are single-consumer: Next must not be called concurrently.
// FromStream serializes its pulls internally.
type Stream[T any] struct {
	next func(ctx context.Context) (T, error)

	mu  sync.Mutex
	err error
}

// NewStream creates a stream from an iterator function. fn returns
// io.EOF when the sequence is exhausted.
func NewStream[T any](fn func(context.Context) (T, error)) *Stream[T] {
	return &Stream[T]{next: fn}
}

// FromSlice creates a stream yielding the items of a slice in order.
func FromSlice[T any](items []T) *Stream[T] {
	var idx int
	return NewStream(func(ctx context.Context) (T, error) {
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		default:
		}
		if idx >= len(items) {
			var zero T
			return zero, io.EOF
		}
		val := items[idx]
		idx++
		return val, nil
	})
}

// FromChan creates a stream that pulls from a channel until it is
// closed or the context is cancelled.
func FromChan[T any](ch <-chan T) *Stream[T] {
	return NewStream(func(ctx context.Context) (T, error) {
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case v, ok := <-ch:
			if !ok {
				var zero T
				return zero, io.EOF
			}
			return v, nil
		}
	})
}

// Next returns the next item, io.EOF at the end of the stream, or the
// first error encountered by the underlying source.
func (s *Stream[T]) Next(ctx context.Context) (T, error) {
	val, err := s.next(ctx)
	if err != nil && err != io.EOF {
		s.setError(err)
	}
	return val, err
}

// Err returns the first non-EOF error observed by the stream, if any.
func (s *Stream[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Stream[T]) setError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// Filter keeps only items for which fn returns true.
func (s *Stream[T]) Filter(fn func(T) bool) *Stream[T] {
	return NewStream(func(ctx context.Context) (T, error) {
		for {
			val, err := s.Next(ctx)
			if err != nil {
				return val, err
			}
			if fn(val) {
				return val, nil
			}
		}
	})
}

// Take limits the stream to n items.
func (s *Stream[T]) Take(n int) *Stream[T] {
	var idx int
	return NewStream(func(ctx context.Context) (T, error) {
		if idx >= n {
			var zero T
			return zero, io.EOF
		}
		val, err := s.Next(ctx)
		if err != nil {
			return val, err
		}
		idx++
		return val, nil
	})
}

// Skip discards the first n items.
func (s *Stream[T]) Skip(n int) *Stream[T] {
	var skipped int
	return NewStream(func(ctx context.Context) (T, error) {
		for skipped < n {
			if _, err := s.Next(ctx); err != nil {
				var zero T
				return zero, err
			}
			skipped++
		}
		return s.Next(ctx)
	})
}

// Peek invokes fn on each item as it passes through.
func (s *Stream[T]) Peek(fn func(T)) *Stream[T] {
	return NewStream(func(ctx context.Context) (T, error) {
		val, err := s.Next(ctx)
		if err == nil {
			fn(val)
		}
		return val, err
	})
}

// Map transforms a stream with fn.
//
// Map is a function rather than a method because Go does not support
// generic methods on generic types.
func Map[A, B any](s *Stream[A], fn func(context.Context, A) (B, error)) *Stream[B] {
	return NewStream(func(ctx context.Context) (B, error) {
		val, err := s.Next(ctx)
		if err != nil {
			var zero B
			return zero, err
		}
		return fn(ctx, val)
	})
}

// ToSlice drains the stream into a slice.
func (s *Stream[T]) ToSlice(ctx context.Context) ([]T, error) {
	var items []T
	for {
		val, err := s.Next(ctx)
		if err == io.EOF {
			return items, s.Err()
		}
		if err != nil {
			return nil, err
		}
		items = append(items, val)
	}
}

// Count drains the stream and returns the number of items.
func (s *Stream[T]) Count(ctx context.Context) (int, error) {
	var count int
	for {
		_, err := s.Next(ctx)
		if err == io.EOF {
			return count, s.Err()
		}
		if err != nil {
			return 0, err
		}
		count++
	}
}
