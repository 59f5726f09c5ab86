package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/taskrungo/internal/config"
	"github.com/vk/taskrungo/internal/ctxlog"
)

// Validate performs a strict parity check between the loaded manifest model
// and the registered handler kinds: every binding must name a known kind,
// and every declared argument must be one the kind accepts.
func (c *Catalog) Validate(ctx context.Context, model *config.Model) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	for _, def := range model.Tasks {
		for _, group := range []struct {
			phase    string
			bindings []*config.HandlerBinding
		}{
			{"pre", def.Pre}, {"main", def.Main}, {"post", def.Post},
		} {
			phase, bindings := group.phase, group.bindings
			for _, binding := range bindings {
				kind, ok := c.kinds[binding.Kind]
				if !ok {
					errs = append(errs, fmt.Sprintf(
						"task '%s' %s phase: unknown handler kind '%s' (known kinds: %s)",
						def.Name, phase, binding.Kind, strings.Join(c.Kinds(), ", ")))
					continue
				}
				for arg := range binding.Args {
					if _, ok := kind.Args[arg]; !ok {
						errs = append(errs, fmt.Sprintf(
							"task '%s' %s phase: handler '%s' does not accept argument '%s'",
							def.Name, phase, binding.Kind, arg))
					}
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Catalog validation passed.", "tasks", len(model.Tasks), "kinds", len(c.kinds))
	return nil
}
