package dreamfuse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStage(t *testing.T) {
	t.Run("succeeded", func(t *testing.T) {
		s := Succeeded("analysis")
		assert.True(t, s.OK())
		v, err := s.Get()
		assert.NoError(t, err)
		assert.Equal(t, "analysis", v)
	})

	t.Run("failed", func(t *testing.T) {
		boom := errors.New("boom")
		s := Failed[string](boom)
		assert.False(t, s.OK())
		assert.Empty(t, s.Value)
		assert.ErrorIs(t, s.Err, boom)
	})

	t.Run("from pair drops value on error", func(t *testing.T) {
		s := StageOf("partial", errors.New("late failure"))
		assert.False(t, s.OK())
		assert.Empty(t, s.Value)

		ok := StageOf(42, nil)
		assert.True(t, ok.OK())
		assert.Equal(t, 42, ok.Value)
	})
}
