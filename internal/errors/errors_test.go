package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	t.Run("wraps error with context", func(t *testing.T) {
		err := Wrap(ErrNotFound, "key lookup")
		assert.Error(t, err)
		assert.Equal(t, "key lookup: not found", err.Error())
		assert.True(t, Is(err, ErrNotFound))
	})

	t.Run("returns nil for nil error", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "context"))
	})

	t.Run("preserves chain through multiple wraps", func(t *testing.T) {
		err := Wrap(Wrap(ErrUnavailable, "store"), "provider")
		assert.True(t, Is(err, ErrUnavailable))
		assert.Equal(t, "provider: store: unavailable", err.Error())
	})
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("outer: %w", ErrInvalidConfig)
	assert.True(t, Is(err, ErrInvalidConfig))
	assert.False(t, Is(err, ErrInvalidInput))
}

func TestNew(t *testing.T) {
	err := New("boom")
	assert.EqualError(t, err, "boom")
}
