package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateText(t *testing.T) {
	assert.ErrorIs(t, ValidateText(""), ErrEmpty)
	assert.ErrorIs(t, ValidateText(" \t "), ErrEmpty)
	assert.NoError(t, ValidateText("buy milk"))
}

func TestSearcher(t *testing.T) {
	items := []choice{
		{Name: "maybe-later", Label: "Maybe Later"},
		{Name: "work", Label: "Work"},
	}
	search := searcher(items)

	assert.True(t, search("maybel", 0))
	assert.True(t, search("Maybe L", 0))
	assert.True(t, search("-later", 0))
	assert.False(t, search("work", 0))
	assert.True(t, search("WO", 1))
}

func TestCountHint(t *testing.T) {
	assert.Equal(t, "", countHint(0))
	assert.Equal(t, "(1 item)", countHint(1))
	assert.Equal(t, "(4 items)", countHint(4))
}
