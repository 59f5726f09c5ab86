package engine

import (
	"fmt"

	"github.com/vk/taskrungo/internal/registry"
	"github.com/vk/taskrungo/internal/task"
)

// Phase is one non-empty handler list resolved for a requested task, in
// execution order.
type Phase struct {
	Name     string
	Handlers []task.Handler
}

// resolvePhases yields the (pre, main, post) phases of a bare task name,
// skipping phases with no handlers. It fails when the bare name itself was
// never registered; a known-but-empty list does not fail.
func (e *Engine) resolvePhases(name string) ([]Phase, error) {
	if !e.reg.IsKnown(name) {
		return nil, fmt.Errorf("task %q: %w", name, ErrUnknownTask)
	}

	order := []string{registry.PrePhaseName(name), name, registry.PostPhaseName(name)}
	phases := make([]Phase, 0, len(order))
	for _, phaseName := range order {
		handlers := e.reg.HandlersFor(phaseName)
		if len(handlers) == 0 {
			continue
		}
		phases = append(phases, Phase{Name: phaseName, Handlers: handlers})
	}
	return phases, nil
}
