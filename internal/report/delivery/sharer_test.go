package delivery

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectorySharerAvailable(t *testing.T) {
	assert.False(t, NewDirectorySharer("").Available())
	assert.True(t, NewDirectorySharer(t.TempDir()).Available())

	var nilSharer *DirectorySharer
	assert.False(t, nilSharer.Available())
}

func TestDirectorySharerCopiesFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "expense_report_1.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF-1.4 content"), 0o644))

	shareDir := filepath.Join(t.TempDir(), "exports")
	sharer := NewDirectorySharer(shareDir)

	require.NoError(t, sharer.Share(context.Background(), src))

	copied, err := os.ReadFile(filepath.Join(shareDir, "expense_report_1.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 content", string(copied))

	// The source stays in place.
	_, err = os.Stat(src)
	assert.NoError(t, err)
}

func TestDirectorySharerMissingSource(t *testing.T) {
	sharer := NewDirectorySharer(t.TempDir())
	err := sharer.Share(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
}

func TestDirectorySharerHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sharer := NewDirectorySharer(t.TempDir())
	err := sharer.Share(ctx, "irrelevant.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
