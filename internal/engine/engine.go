package engine

import (
	"time"

	"github.com/vk/taskrungo/internal/registry"
)

// Engine executes registered tasks sequentially, either in series mode
// (collecting discrete per-handler results) or in pipe mode (threading a
// single value through every handler). It reads from the registry and never
// mutates it.
type Engine struct {
	reg *registry.Registry
}

// New creates an Engine backed by the given registry.
func New(reg *registry.Registry) *Engine {
	return &Engine{reg: reg}
}

// RunOptions carries the named parameters of a series run.
type RunOptions struct {
	// Tasks is the ordered list of bare task names to run. When empty, the
	// registry's allow-list is used instead.
	Tasks []string
	// Args is handed unchanged to every handler invocation.
	Args any
	// Timeout bounds each individual handler invocation. Zero or negative
	// means no timeout.
	Timeout time.Duration
}

// PipeOptions carries the named parameters of a pipe run.
type PipeOptions struct {
	// Tasks is the ordered list of bare task names to run. When empty, the
	// registry's allow-list is used instead.
	Tasks []string
	// Initial seeds the pipe value handed to the first handler.
	Initial any
	// Timeout bounds each individual handler invocation. Zero or negative
	// means no timeout.
	Timeout time.Duration
}

// taskNames resolves the requested task sequence, defaulting to the
// allow-list when the caller did not name any tasks.
func (e *Engine) taskNames(explicit []string) ([]string, error) {
	if len(explicit) > 0 {
		return explicit, nil
	}
	if allowed := e.reg.Allowed(); len(allowed) > 0 {
		return allowed, nil
	}
	return nil, ErrNoTasksSpecified
}
