package parfill_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parfill/parfill"
)

func TestSlotErrorHelpers(t *testing.T) {
	cause := errors.New("lookup failed")
	se := &parfill.SlotError{Index: 42, Err: cause}

	assert.Contains(t, se.Error(), "slot 42")
	assert.Equal(t, cause, errors.Unwrap(se))

	assert.True(t, parfill.IsSlotError(se))
	assert.False(t, parfill.IsSlotError(cause))
	assert.False(t, parfill.IsSlotError(nil))

	idx, ok := parfill.IndexOf(se)
	require.True(t, ok)
	assert.Equal(t, 42, idx)

	_, ok = parfill.IndexOf(cause)
	assert.False(t, ok)
	_, ok = parfill.IndexOf(nil)
	assert.False(t, ok)

	assert.Equal(t, cause, parfill.CauseOf(se))
	assert.Equal(t, cause, parfill.CauseOf(cause))
	assert.Nil(t, parfill.CauseOf(nil))
}

func TestSlotErrorWrapped(t *testing.T) {
	cause := errors.New("inner")
	se := &parfill.SlotError{Index: 7, Err: cause}
	wrapped := fmt.Errorf("operation failed: %w", se)

	assert.True(t, parfill.IsSlotError(wrapped))
	idx, ok := parfill.IndexOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, 7, idx)
	assert.ErrorIs(t, wrapped, cause)
}

func TestPanicErrorFormat(t *testing.T) {
	var pe *parfill.PanicError

	v := capturePanic(func() {
		parfill.Fill(make([]int, 1), func(int) int { panic("kaboom") })
	})
	var ok bool
	pe, ok = v.(*parfill.PanicError)
	require.True(t, ok)

	assert.Contains(t, pe.Error(), "kaboom")
	assert.Contains(t, pe.Error(), "goroutine")
	assert.Nil(t, pe.Unwrap())
}
