package bottombar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertModeAddsInputLine(t *testing.T) {
	m := New()
	m.SetHelp("q quit")
	m.SetStatus("ready")
	assert.Equal(t, 1, m.Height())

	m.SetMode(ModeInsert)
	m.UpdateInput("Plan 09:00: ", "standup")
	view, h := m.View()
	assert.Equal(t, 2, h)
	assert.Equal(t, 2, m.Height())
	assert.True(t, strings.HasPrefix(view, "Plan 09:00: standup\n"))
	assert.Contains(t, view, "INSERT")

	m.SetMode(ModeNormal)
	view, h = m.View()
	assert.Equal(t, 1, h)
	assert.NotContains(t, view, "standup")
	assert.Contains(t, view, "ready")
}
