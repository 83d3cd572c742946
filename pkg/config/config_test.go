package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(EnvConfigPath, dir)
	for _, key := range []string{"DAYBOOK_PATH", "DAYBOOK_LOG_LEVEL", "DAYBOOK_LOG_FILE", "DAYBOOK_FIRST_HOUR", "DAYBOOK_LAST_HOUR"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	s, err := Load()
	require.NoError(t, err)

	home, err := homedir.Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".daybook.db"), s.BasePath())
	assert.Equal(t, "warn", s.LogLevel)
	assert.Empty(t, s.LogFile)
	assert.Equal(t, 7, s.FirstHour)
	assert.Equal(t, 22, s.LastHour)
	assert.Len(t, s.Hours(), 16)
}

func TestLoadFromFile(t *testing.T) {
	dir := isolate(t)
	data := []byte("path: /tmp/daybook-test\nfirst-hour: 6\nlast-hour: 9\nlog-level: debug\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".daybook.yaml"), data, 0o644))

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/daybook-test", s.Path)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, []int{6, 7, 8, 9}, s.Hours())
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("DAYBOOK_PATH", "/tmp/from-env")
	t.Setenv("DAYBOOK_LAST_HOUR", "20")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env", s.Path)
	assert.Equal(t, 20, s.LastHour)
}

func TestLoadBrokenFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".daybook.yaml"), []byte("path: [unclosed"), 0o644))

	_, err := Load()
	assert.Error(t, err)
}

func TestHoursFallsBackOnInvertedRange(t *testing.T) {
	s := &Settings{FirstHour: 20, LastHour: 8}
	assert.Len(t, s.Hours(), 16)
}
