package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vk/taskrungo/internal/ctxlog"
	"github.com/vk/taskrungo/internal/result"
)

// Run executes the requested tasks in series mode. For each task, each
// non-empty phase's handlers are invoked independently in registration
// order, every invocation receiving the same opts.Args. The first handler
// failure (its own error or a timeout) aborts the whole call; results
// accumulated so far are discarded.
func (e *Engine) Run(ctx context.Context, opts RunOptions) (Report, error) {
	logger := ctxlog.FromContext(ctx).With("run_id", uuid.NewString(), "mode", "series")

	names, err := e.taskNames(opts.Tasks)
	if err != nil {
		return nil, err
	}
	logger.Debug("Series run starting.", "tasks", names, "timeout", opts.Timeout)

	var report Report
	for _, name := range names {
		phases, err := e.resolvePhases(name)
		if err != nil {
			return nil, err
		}
		for _, phase := range phases {
			res := e.runPhaseSeries(ctx, phase, opts.Args, opts.Timeout)
			if res.IsErr() {
				logger.Error("Series run aborted.", "phase", phase.Name, "error", res.Err())
				return nil, res.Err()
			}
			report = append(report, PhaseResult{Phase: phase.Name, Results: res.Value()})
			logger.Debug("Phase completed.", "phase", phase.Name, "results", len(res.Value()))
		}
	}

	logger.Info("Series run completed.", "phases", len(report))
	return report, nil
}

// RunTask is a convenience wrapper for running a single task in series mode.
func (e *Engine) RunTask(ctx context.Context, name string, args any, timeout time.Duration) (Report, error) {
	return e.Run(ctx, RunOptions{Tasks: []string{name}, Args: args, Timeout: timeout})
}

// runPhaseSeries invokes one phase's handlers independently and collects
// their results in invocation order.
func (e *Engine) runPhaseSeries(ctx context.Context, phase Phase, args any, timeout time.Duration) result.Result[[]any] {
	results := make([]any, 0, len(phase.Handlers))
	for i, h := range phase.Handlers {
		value, err := Invoke(ctx, h, args, timeout)
		if err != nil {
			return result.Err[[]any](fmt.Errorf("phase %q handler %d: %w", phase.Name, i, err))
		}
		results = append(results, value)
	}
	return result.Ok(results)
}
