package engine

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/vk/taskrungo/internal/ctxlog"
	"github.com/vk/taskrungo/internal/result"
)

// Pipe executes the requested tasks in pipe mode: one evolving value,
// initialized from opts.Initial, is threaded through every handler of every
// non-empty phase across all requested tasks. Handlers are chained; handler
// i+1 receives handler i's output. A phase that completes with a nil value
// aborts the call with ErrInvalidPipeValue; no further phase or task runs.
func (e *Engine) Pipe(ctx context.Context, opts PipeOptions) (any, error) {
	logger := ctxlog.FromContext(ctx).With("run_id", uuid.NewString(), "mode", "pipe")

	names, err := e.taskNames(opts.Tasks)
	if err != nil {
		return nil, err
	}
	logger.Debug("Pipe run starting.", "tasks", names, "timeout", opts.Timeout)

	value := opts.Initial
	for _, name := range names {
		phases, err := e.resolvePhases(name)
		if err != nil {
			return nil, err
		}
		for _, phase := range phases {
			res := e.runPhasePipe(ctx, phase, value, opts.Timeout)
			if res.IsErr() {
				logger.Error("Pipe run aborted.", "phase", phase.Name, "error", res.Err())
				return nil, res.Err()
			}
			value = res.Value()
			if isNilValue(value) {
				logger.Error("Pipe run aborted on nil value.", "phase", phase.Name)
				return nil, fmt.Errorf("phase %q: %w", phase.Name, ErrInvalidPipeValue)
			}
			logger.Debug("Phase completed.", "phase", phase.Name)
		}
	}

	logger.Info("Pipe run completed.")
	return value, nil
}

// PipeTask is a convenience wrapper for piping through a single task.
func (e *Engine) PipeTask(ctx context.Context, name string, initial any, timeout time.Duration) (any, error) {
	return e.Pipe(ctx, PipeOptions{Tasks: []string{name}, Initial: initial, Timeout: timeout})
}

// runPhasePipe chains one phase's handlers, feeding each handler's output to
// the next.
func (e *Engine) runPhasePipe(ctx context.Context, phase Phase, value any, timeout time.Duration) result.Result[any] {
	for i, h := range phase.Handlers {
		next, err := Invoke(ctx, h, value, timeout)
		if err != nil {
			return result.Err[any](fmt.Errorf("phase %q handler %d: %w", phase.Name, i, err))
		}
		value = next
	}
	return result.Ok(value)
}

// isNilValue reports whether v is nil, including typed nils carried inside
// a non-nil interface.
func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
