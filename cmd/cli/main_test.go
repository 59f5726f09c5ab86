package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealMainNoArgsPrintsUsage(t *testing.T) {
	var out, errOut bytes.Buffer
	code := realMain(&out, &errOut, nil)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Usage:")
}

func TestRealMainRejectsInvalidMode(t *testing.T) {
	var out, errOut bytes.Buffer
	code := realMain(&out, &errOut, []string{"-tasks", "./tasks", "-mode", "parallel"})

	assert.Equal(t, 2, code)
	assert.Contains(t, errOut.String(), "invalid mode")
}

func TestRealMainMissingManifestDirExitsOne(t *testing.T) {
	var out, errOut bytes.Buffer
	code := realMain(&out, &errOut, []string{
		"-tasks", filepath.Join(t.TempDir(), "no-such-dir"),
		"-log-level", "error",
	})

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "startup failed")
}

func TestRealMainRunsManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := `
task "greet" {
  main {
    handler "print" {}
  }
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "greet.hcl"), []byte(manifest), 0o644))

	var out, errOut bytes.Buffer
	code := realMain(&out, &errOut, []string{
		"-tasks", dir,
		"-log-level", "error",
		"greet",
	})

	require.Equal(t, 0, code, "stderr: %s", errOut.String())
	assert.Contains(t, out.String(), `"phase": "greet"`)
}
