package print

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/taskrungo/internal/catalog"
	"github.com/vk/taskrungo/internal/ctxlog"
	"github.com/vk/taskrungo/internal/task"
)

// Module implements the catalog.Module interface for this package.
type Module struct{}

// Register registers the handler kind with the catalog.
func (m *Module) Register(c *catalog.Catalog) {
	c.RegisterKind("print", &catalog.Kind{
		Factory: newHandler,
		Args:    catalog.ArgNames("prefix"),
	})
}

// newHandler builds a print handler. It writes its argument to stdout and
// returns it unchanged, so it is transparent in pipe mode.
func newHandler(args map[string]cty.Value) (task.Handler, error) {
	prefix, err := catalog.StringArg(args, "prefix", "")
	if err != nil {
		return nil, err
	}

	return task.Func(func(ctx context.Context, arg any) (any, error) {
		ctxlog.FromContext(ctx).Debug("Printing handler argument.", "prefix", prefix)

		rendered := "(null)"
		if arg != nil {
			encoded, err := json.Marshal(arg)
			if err != nil {
				rendered = fmt.Sprintf("%v", arg)
			} else {
				rendered = string(encoded)
			}
		}

		if prefix != "" {
			fmt.Printf("      %s: %s\n", prefix, rendered)
		} else {
			fmt.Printf("      %s\n", rendered)
		}
		return arg, nil
	}), nil
}
