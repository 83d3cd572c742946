package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveWraps(t *testing.T) {
	m := New()
	m.SetContent("Assign to 09:00", []string{"a", "b", "c"})
	m.Move(-1)
	assert.Equal(t, 2, m.Selected())
	m.Move(2)
	assert.Equal(t, 1, m.Selected())

	m.Reset()
	m.Move(1)
	assert.Zero(t, m.Selected())
}

func TestLineAtSkipsFrameAndTitle(t *testing.T) {
	m := New()
	m.SetContent("Assign to 09:00", []string{"a", "b"})

	_, ok := m.LineAt(0)
	assert.False(t, ok, "top border")
	_, ok = m.LineAt(1)
	assert.False(t, ok, "title")
	i, ok := m.LineAt(2)
	assert.True(t, ok)
	assert.Zero(t, i)
	i, ok = m.LineAt(3)
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = m.LineAt(4)
	assert.False(t, ok, "bottom border")

	_, h := m.View()
	assert.Equal(t, 5, h)
}
