package catalog

import (
	"context"
	"fmt"

	"github.com/vk/taskrungo/internal/config"
	"github.com/vk/taskrungo/internal/ctxlog"
	"github.com/vk/taskrungo/internal/registry"
)

// Bind materializes a loaded manifest model into the registry: the
// allow-list is defined first, then every binding's handler is built via
// its kind's factory and registered under the proper phase name, in
// declaration order.
func (c *Catalog) Bind(ctx context.Context, model *config.Model, reg *registry.Registry) error {
	logger := ctxlog.FromContext(ctx)

	if model.Allow != nil {
		reg.DefineTasks(model.Allow.Tasks, model.Allow.RegisterPre, model.Allow.RegisterPost)
	}

	for _, def := range model.Tasks {
		// Without an allow-list, a declared task is known even before any
		// handler lands on it. With one, only DefineTasks creates lists and
		// out-of-list names must keep failing registration below.
		if model.Allow == nil {
			reg.Declare(def.Name)
		}

		for _, group := range []struct {
			listName string
			bindings []*config.HandlerBinding
		}{
			{registry.PrePhaseName(def.Name), def.Pre},
			{def.Name, def.Main},
			{registry.PostPhaseName(def.Name), def.Post},
		} {
			for _, binding := range group.bindings {
				kind := c.kinds[binding.Kind]
				if kind == nil {
					return fmt.Errorf("task %q: unknown handler kind %q", def.Name, binding.Kind)
				}
				h, err := kind.Factory(binding.Args)
				if err != nil {
					return fmt.Errorf("task %q: building handler %q: %w", def.Name, binding.Kind, err)
				}
				if err := reg.Register(group.listName, h); err != nil {
					return fmt.Errorf("task %q: %w", def.Name, err)
				}
			}
		}
		logger.Debug("Bound task definition.", "task", def.Name)
	}

	return nil
}
