package parfill

// Result is the handle of an asynchronous fill started by [OfAsync] or
// [TryOfAsync].
type Result[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Wait blocks until the fill completes and returns its outcome.
// Idempotent; every call returns the same result.
func (r *Result[T]) Wait() (T, error) {
	<-r.done
	return r.val, r.err
}

// Done returns a channel closed when the fill completes.
func (r *Result[T]) Done() <-chan struct{} {
	return r.done
}

// OfAsync starts [Of] on its own goroutine and returns a handle to the
// eventual result. A produce panic does not escape the goroutine: the
// captured [*PanicError] is returned as the error from [Result.Wait],
// after cleanup has run as usual.
func OfAsync[T any](n int, produce func(int) T, opts ...Option) *Result[[]T] {
	if n < 0 {
		panic("parfill: OfAsync requires n >= 0")
	}
	if produce == nil {
		panic("parfill: OfAsync requires non-nil produce")
	}
	return startFill(func() ([]T, error) {
		return TryOf(n, func(i int) (T, error) {
			return produce(i), nil
		}, opts...)
	})
}

// TryOfAsync starts [TryOf] on its own goroutine and returns a handle
// to the eventual result. Produce panics surface as a [*PanicError]
// from [Result.Wait] rather than crashing the goroutine.
func TryOfAsync[T any](n int, produce func(int) (T, error), opts ...Option) *Result[[]T] {
	if n < 0 {
		panic("parfill: TryOfAsync requires n >= 0")
	}
	if produce == nil {
		panic("parfill: TryOfAsync requires non-nil produce")
	}
	return startFill(func() ([]T, error) {
		return TryOf(n, produce, opts...)
	})
}

func startFill[T any](fn func() ([]T, error)) *Result[[]T] {
	r := &Result[[]T]{done: make(chan struct{})}
	go func() {
		defer close(r.done)
		r.val, r.err = capturePanic(fn)
	}()
	return r
}

// capturePanic converts a re-raised *PanicError into a plain error so
// asynchronous fills report panics through the Result instead of
// killing the process. Any other panic is not ours and is re-raised.
func capturePanic[T any](fn func() ([]T, error)) (out []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*PanicError)
			if !ok {
				panic(r)
			}
			out, err = nil, pe
		}
	}()
	return fn()
}
