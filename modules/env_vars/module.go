package env_vars

import (
	"context"
	"os"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/taskrungo/internal/catalog"
	"github.com/vk/taskrungo/internal/task"
)

// Module implements the catalog.Module interface for this package.
type Module struct{}

// Register registers the handler kind with the catalog.
func (m *Module) Register(c *catalog.Catalog) {
	c.RegisterKind("env_vars", &catalog.Kind{
		Factory: newHandler,
		Args:    catalog.ArgNames("prefix"),
	})
}

// newHandler builds a handler that snapshots the process environment into a
// map, optionally filtered to variables with the given name prefix.
func newHandler(args map[string]cty.Value) (task.Handler, error) {
	prefix, err := catalog.StringArg(args, "prefix", "")
	if err != nil {
		return nil, err
	}

	return task.Func(func(ctx context.Context, arg any) (any, error) {
		envMap := make(map[string]string)
		for _, e := range os.Environ() {
			pair := strings.SplitN(e, "=", 2)
			if len(pair) != 2 {
				continue
			}
			if prefix != "" && !strings.HasPrefix(pair[0], prefix) {
				continue
			}
			envMap[pair[0]] = pair[1]
		}
		return envMap, nil
	}), nil
}
