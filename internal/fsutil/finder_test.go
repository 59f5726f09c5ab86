package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtensionSortedAndRecursive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))

	for _, name := range []string{"z.hcl", "a.hcl", "nested/m.hcl", "ignore.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(""), 0644))
	}

	files, err := FindFilesByExtension(dir, ".hcl")
	require.NoError(t, err)

	expected := []string{
		filepath.Join(dir, "a.hcl"),
		filepath.Join(dir, "nested", "m.hcl"),
		filepath.Join(dir, "z.hcl"),
	}
	assert.Equal(t, expected, files)
}

func TestFindFilesByExtensionMissingRoot(t *testing.T) {
	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "missing"), ".hcl")
	assert.Error(t, err)
}

func TestFindFilesByExtensionEmptyExtensionPanics(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = FindFilesByExtension(t.TempDir(), "")
	})
}
