package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/taskrungo/internal/app"
	"github.com/vk/taskrungo/internal/catalog"
	"github.com/vk/taskrungo/internal/engine"
	"github.com/vk/taskrungo/internal/task"
	"github.com/vk/taskrungo/internal/testutil"
)

// testModule registers small arithmetic handler kinds so integration tests
// do not depend on the network-facing built-ins.
type testModule struct{}

func (m *testModule) Register(c *catalog.Catalog) {
	c.RegisterKind("add", &catalog.Kind{
		Factory: func(args map[string]cty.Value) (task.Handler, error) {
			amount, err := catalog.StringArg(args, "amount", "1")
			if err != nil {
				return nil, err
			}
			return task.Func(func(ctx context.Context, arg any) (any, error) {
				current, _ := arg.(float64)
				var n float64
				if _, err := fmt.Sscanf(amount, "%g", &n); err != nil {
					return nil, err
				}
				return current + n, nil
			}), nil
		},
		Args: catalog.ArgNames("amount"),
	})
	c.RegisterKind("fail", &catalog.Kind{
		Factory: func(args map[string]cty.Value) (task.Handler, error) {
			return task.Func(func(ctx context.Context, arg any) (any, error) {
				return nil, errors.New("deliberate failure")
			}), nil
		},
	})
}

const arithmeticManifest = `
allowlist {
  tasks         = ["sum"]
  register_pre  = true
  register_post = true
}

task "sum" {
  pre {
    handler "add" {
      amount = "10"
    }
  }

  main {
    handler "add" {}
    handler "add" {}
  }
}
`

func TestAppSeriesRunOverManifest(t *testing.T) {
	h := testutil.StartApp(t, map[string]string{"sum.hcl": arithmeticManifest},
		app.Config{Mode: app.ModeSeries}, &testModule{})
	require.NoError(t, h.Err, h.LogOutput)

	report, err := h.App.Engine().Run(context.Background(), engine.RunOptions{Args: float64(1)})
	require.NoError(t, err)

	// Series handlers run independently over the same argument.
	assert.Equal(t, engine.Report{
		{Phase: "pre-sum", Results: []any{float64(11)}},
		{Phase: "sum", Results: []any{float64(2), float64(2)}},
	}, report)
}

func TestAppPipeRunOverManifest(t *testing.T) {
	h := testutil.StartApp(t, map[string]string{"sum.hcl": arithmeticManifest},
		app.Config{Mode: app.ModePipe}, &testModule{})
	require.NoError(t, h.Err, h.LogOutput)

	final, err := h.App.Engine().Pipe(context.Background(), engine.PipeOptions{Initial: float64(1)})
	require.NoError(t, err)

	// Pipe handlers chain: 1 +10 (pre) +1 +1 (main).
	assert.Equal(t, float64(13), final)
}

func TestAppRunWritesReportJSON(t *testing.T) {
	h := testutil.StartApp(t, map[string]string{"sum.hcl": arithmeticManifest},
		app.Config{Mode: app.ModeSeries, Input: "1"}, &testModule{})
	require.NoError(t, h.Err, h.LogOutput)

	require.NoError(t, h.App.Run(context.Background()))
	assert.Contains(t, h.Log.String(), `"phase": "pre-sum"`)
}

func TestAppStartupFailsOnUnknownHandlerKind(t *testing.T) {
	manifest := `
task "broken" {
  main {
    handler "no_such_kind" {}
  }
}
`
	h := testutil.StartApp(t, map[string]string{"broken.hcl": manifest},
		app.Config{}, &testModule{})
	require.Error(t, h.Err)
	assert.Contains(t, h.Err.Error(), "unknown handler kind")
}

func TestAppStartupFailsOnTaskOutsideAllowlist(t *testing.T) {
	manifest := `
allowlist {
  tasks = ["permitted"]
}

task "rogue" {
  main {
    handler "add" {}
  }
}
`
	h := testutil.StartApp(t, map[string]string{"rogue.hcl": manifest},
		app.Config{}, &testModule{})
	require.Error(t, h.Err)
	assert.Contains(t, h.Err.Error(), "not in the allow-list")
}

func TestAppHandlerFailureAbortsRun(t *testing.T) {
	manifest := `
task "doomed" {
  main {
    handler "add" {}
    handler "fail" {}
  }
}
`
	h := testutil.StartApp(t, map[string]string{"doomed.hcl": manifest},
		app.Config{}, &testModule{})
	require.NoError(t, h.Err, h.LogOutput)

	_, err := h.App.Engine().Run(context.Background(), engine.RunOptions{
		Tasks: []string{"doomed"},
		Args:  float64(0),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")
}
