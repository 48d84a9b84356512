package spinner

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpinnerModel(t *testing.T) {
	t.Run("result", func(t *testing.T) {
		m := NewSpinnerModelWithMessage("Calling add...")
		assert.Contains(t, m.View(), "Calling add...")

		next, cmd := m.Update(ResultMsg{Result: 42, Elapsed: time.Millisecond})
		require.NotNil(t, cmd)

		final := next.(SpinnerModel)
		assert.Equal(t, 42, final.GetResult())
		assert.Equal(t, time.Millisecond, final.Elapsed())
		assert.False(t, final.HasError())
		assert.Empty(t, final.View())
	})

	t.Run("error", func(t *testing.T) {
		boom := errors.New("boom")
		next, _ := NewSpinnerModelWithMessage("x").Update(ErrorMsg{Err: boom})

		final := next.(SpinnerModel)
		assert.True(t, final.HasError())
		assert.Equal(t, boom, final.GetError())
	})

	t.Run("step message", func(t *testing.T) {
		next, _ := NewSpinnerModelWithMessage("first").Update("second")
		assert.Contains(t, next.View(), "second")
	})

	t.Run("quit", func(t *testing.T) {
		next, _ := NewSpinnerModelWithMessage("x").Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		assert.True(t, next.(SpinnerModel).Cancelled())
	})
}
