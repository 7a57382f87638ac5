package mergelog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEntries(t *testing.T, p string) []map[string]any {
	t.Helper()
	require.NoError(t, Close())

	b, err := os.ReadFile(p)
	require.NoError(t, err)

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(b)), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestLogger_WritesAndAppends(t *testing.T) {
	p := filepath.Join(t.TempDir(), "blockmerge.log")
	t.Setenv(EnvFile, p)
	t.Setenv(EnvLevel, "")

	l := Logger()
	l.Info().Msg("hello world")
	l = Logger()
	l.Info().Msg("123")

	entries := readEntries(t, p)
	require.Len(t, entries, 2)
	assert.Equal(t, "hello world", entries[0]["message"])
	assert.Equal(t, "123", entries[1]["message"])
	assert.Equal(t, "info", entries[0]["level"])
	assert.Contains(t, entries[0], "time")
}

func TestLogger_StructuredFields(t *testing.T) {
	p := filepath.Join(t.TempDir(), "blockmerge.log")
	t.Setenv(EnvFile, p)

	l := Logger()
	l.Info().Str("path", "pages/a.md").Int("conflicts", 2).Msg("merged")

	entries := readEntries(t, p)
	require.Len(t, entries, 1)
	assert.Equal(t, "pages/a.md", entries[0]["path"])
	assert.EqualValues(t, 2, entries[0]["conflicts"])
}

func TestLogger_Level(t *testing.T) {
	p := filepath.Join(t.TempDir(), "blockmerge.log")
	t.Setenv(EnvFile, p)
	t.Setenv(EnvLevel, "WARN")

	l := Logger()
	l.Info().Msg("dropped")
	l.Warn().Msg("kept")

	entries := readEntries(t, p)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0]["message"])
}

func TestLogger_NoOpWhenUnset(t *testing.T) {
	t.Setenv(EnvFile, "")
	require.Equal(t, zerolog.Disabled, Logger().GetLevel())
	l := Logger()
	l.Info().Msg("should not panic")
}

func TestLogger_NoOpWhenPathIsDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvFile, dir)

	l := Logger()
	l.Info().Msg("ignored")
	require.NoError(t, Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.DebugLevel, parseLevel(" debug "))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("loud"))
}
