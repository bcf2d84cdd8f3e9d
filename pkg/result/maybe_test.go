package result

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaybe(t *testing.T) {
	t.Run("zero value is none", func(t *testing.T) {
		var m Maybe[string]
		assert.True(t, m.HasNoValue())
		assert.False(t, m.HasValue())
		assert.Panics(t, func() { _ = m.Value() })
		assert.Equal(t, "fallback", m.ValueOr("fallback"))
		assert.Nil(t, m.Ptr())
	})

	t.Run("some", func(t *testing.T) {
		m := Some("apple")
		assert.True(t, m.HasValue())
		assert.Equal(t, "apple", m.Value())
		assert.Equal(t, "apple", *m.Ptr())
	})

	t.Run("some of zero value is present", func(t *testing.T) {
		assert.True(t, Some("").HasValue())
	})

	t.Run("from pointer", func(t *testing.T) {
		s := "x"
		assert.Equal(t, Some("x"), FromPtr(&s))
		assert.Equal(t, None[string](), FromPtr[string](nil))
	})

	t.Run("to result", func(t *testing.T) {
		errMissing := errors.New("missing")
		assert.Equal(t, 3, Some(3).ToResult(errMissing).Value())
		assert.ErrorIs(t, None[int]().ToResult(errMissing).Err(), errMissing)
	})

	t.Run("map", func(t *testing.T) {
		double := func(i int) int { return i * 2 }
		assert.Equal(t, Some(4), MapMaybe(Some(2), double))
		assert.True(t, MapMaybe(None[int](), double).HasNoValue())
	})
}
