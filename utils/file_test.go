package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePathAbsolute(t *testing.T) {
	path := filepath.Join(t.TempDir(), "document.pdf")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	resolved, err := ResolvePath(path)
	require.NoError(t, err)
	assert.Equal(t, path, resolved)
}

func TestResolvePathRelative(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "document.pdf"), []byte("x"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	resolved, err := ResolvePath("document.pdf")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(resolved))
	assert.Equal(t, "document.pdf", filepath.Base(resolved))
}

func TestResolvePathMissingFile(t *testing.T) {
	_, err := ResolvePath(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestFileNameWithoutExt(t *testing.T) {
	assert.Equal(t, "document", FileNameWithoutExt("/tmp/uploads/document.pdf"))
	assert.Equal(t, "archive.tar", FileNameWithoutExt("archive.tar.gz"))
	assert.Equal(t, "noext", FileNameWithoutExt("noext"))
}
