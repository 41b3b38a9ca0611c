package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuwise/legal-assistant/pkg/logger"
)

func TestSaveOpenRemove(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, logger.NewTestLogger())
	require.NoError(t, err)

	ctx := context.Background()

	path, err := s.Save(ctx, strings.NewReader("document body"), "s1_lease.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "s1_lease.txt"), path)

	rc, err := s.Open(ctx, "s1_lease.txt")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "document body", string(data))

	require.NoError(t, s.Remove(ctx, "s1_lease.txt"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveMissingFileIsNotAnError(t *testing.T) {
	s, err := New(t.TempDir(), logger.NewTestLogger())
	require.NoError(t, err)

	assert.NoError(t, s.Remove(context.Background(), "never-saved.txt"))
}

func TestNewCreatesUploadDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	_, err := New(dir, logger.NewTestLogger())
	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestOpenMissingFile(t *testing.T) {
	s, err := New(t.TempDir(), logger.NewTestLogger())
	require.NoError(t, err)

	_, err = s.Open(context.Background(), "absent.txt")
	assert.Error(t, err)
}
