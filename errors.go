package parfill

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch is returned by [FromStream] and [OfStream] when the
// source stream is exhausted before every slot has received an item.
// The returned error wraps it with the produced and required counts.
var ErrLengthMismatch = errors.New("parfill: source exhausted before the array was full")

// SlotError wraps an error from a fallible produce function together
// with the index of the slot being produced. [TryFill] and [FromStream]
// return the first SlotError recorded across the whole operation so
// callers can attribute the failure to a specific slot.
type SlotError struct {
	Index int
	Err   error
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("parfill: slot %d: %v", e.Index, e.Err)
}

func (e *SlotError) Unwrap() error {
	return e.Err
}

// IsSlotError reports whether err (or any error in its chain) is a [*SlotError].
func IsSlotError(err error) bool {
	if err == nil {
		return false
	}
	var se *SlotError
	return errors.As(err, &se)
}

// IndexOf extracts the slot index from the first [*SlotError] in err's
// chain. Returns false if no SlotError is found.
func IndexOf(err error) (int, bool) {
	if err == nil {
		return 0, false
	}

	var se *SlotError
	if errors.As(err, &se) {
		return se.Index, true
	}
	return 0, false
}

// CauseOf unwraps the first [*SlotError] in err's chain and returns its
// underlying cause. If err is not a SlotError, it is returned as-is.
// Returns nil if err is nil.
func CauseOf(err error) error {
	if err == nil {
		return nil
	}

	var se *SlotError
	if errors.As(err, &se) {
		return se.Err
	}

	return err
}
