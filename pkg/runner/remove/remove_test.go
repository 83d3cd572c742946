package remove

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/category"
	"tableflip.dev/daybook/pkg/store"
)

type dirConfig string

func (d dirConfig) BasePath() string { return string(d) }

func openService(t *testing.T) *app.Service {
	t.Helper()
	p, err := store.Load(dirConfig(t.TempDir()))
	require.NoError(t, err)
	svc, err := app.Open(context.Background(), app.Options{Persistence: p, Log: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc
}

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	out, noColor := color.Output, color.NoColor
	color.Output, color.NoColor = &buf, true
	t.Cleanup(func() { color.Output, color.NoColor = out, noColor })
	return &buf
}

func TestRemoveDeletesByPrefix(t *testing.T) {
	svc := openService(t)
	item, err := svc.AddTodo(category.Errands, "buy milk")
	require.NoError(t, err)
	out := captureOutput(t)

	r := Remove{ID: item.ID[:8], Service: svc}
	require.NoError(t, r.Do(context.Background()))

	assert.Empty(t, svc.Lists()[category.Errands])
	assert.Contains(t, out.String(), "deleted ")
	assert.Contains(t, out.String(), "buy milk")
}

func TestRemoveRequiresService(t *testing.T) {
	r := Remove{ID: "x"}
	assert.Error(t, r.Do(context.Background()))
}

func TestRemoveUnknownID(t *testing.T) {
	svc := openService(t)
	r := Remove{ID: "nope", Service: svc}
	assert.ErrorIs(t, r.Do(context.Background()), app.ErrNotFound)
}
