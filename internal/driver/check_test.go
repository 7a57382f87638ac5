package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockmerge/blockmerge/internal/config"
	"github.com/blockmerge/blockmerge/internal/markers"
)

func TestCheckFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, text string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(text), 0o644))
		return p
	}

	clean := write("clean.md", "** a\n** b\n")
	conflicted := write("conflicted.md", "** a\n<<<<<<< ours\n** b\n=======\n** c\n>>>>>>> theirs\n")
	unclosed := write("unclosed.org", "** a\n<<<<<<< ours\n** b\n")
	missing := filepath.Join(dir, "missing.md")

	cfg := config.Default()
	cfg.Jobs = 2
	reports, err := New(cfg, zerolog.Nop()).CheckFiles(context.Background(), []string{clean, conflicted, missing, unclosed, clean})

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Errors, 1)
	assert.ErrorIs(t, merr.Errors[0], os.ErrNotExist)

	require.Len(t, reports, 3)
	assert.Equal(t, clean, reports[0].Path)
	assert.False(t, reports[0].Conflicted())
	assert.Equal(t, 2, reports[0].Blocks.Blocks)

	assert.Equal(t, conflicted, reports[1].Path)
	require.Len(t, reports[1].Regions, 1)
	assert.Equal(t, "** b\n", reports[1].Regions[0].Ours)
	assert.NoError(t, reports[1].ScanErr)

	assert.Equal(t, unclosed, reports[2].Path)
	assert.ErrorIs(t, reports[2].ScanErr, markers.ErrUnterminated)
	assert.True(t, reports[2].Conflicted())

	got := Conflicted(reports)
	require.Len(t, got, 2)
	assert.Equal(t, conflicted, got[0].Path)
	assert.Equal(t, unclosed, got[1].Path)
}

func TestCheckFiles_Empty(t *testing.T) {
	reports, err := New(nil, zerolog.Nop()).CheckFiles(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestCheckFiles_Canceled(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a.md")
	require.NoError(t, os.WriteFile(p, []byte("a\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(nil, zerolog.Nop()).CheckFiles(ctx, []string{p})
	require.ErrorIs(t, err, context.Canceled)
}
