package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/taskrungo/internal/app"
	"github.com/vk/taskrungo/internal/catalog"
	"github.com/vk/taskrungo/internal/hcl"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an app startup in a test.
type HarnessResult struct {
	LogOutput string
	Log       *SafeBuffer
	Err       error
	App       *app.App
}

// StartApp provides a standardized harness for integration tests: it writes
// the given manifest files into a temporary tasks directory, then builds an
// App over them with the supplied handler modules (built-ins when none are
// given). Startup panics are recovered into HarnessResult.Err.
func StartApp(t *testing.T, files map[string]string, cfg app.Config, modules ...catalog.Module) *HarnessResult {
	t.Helper()

	tasksDir := filepath.Join(t.TempDir(), "tasks")
	require.NoError(t, os.MkdirAll(tasksDir, 0755))

	for name, content := range files {
		filePath := filepath.Join(tasksDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	cfg.TasksPath = tasksDir
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig, hcl.NewLoader(), modules...)
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Log:       logBuffer,
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Log:       logBuffer,
		App:       testApp,
	}
}
