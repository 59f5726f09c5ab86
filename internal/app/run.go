package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vk/taskrungo/internal/ctxlog"
	"github.com/vk/taskrungo/internal/engine"
)

// Run executes the configured tasks in the configured mode and writes the
// outcome to the app's output writer as JSON.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	stopHealth := a.startHealthcheckServer()
	defer stopHealth()

	input := decodeInput(a.config.Input)

	switch a.config.Mode {
	case ModePipe:
		final, err := a.engine.Pipe(ctx, engine.PipeOptions{
			Tasks:   a.config.TaskNames,
			Initial: input,
			Timeout: a.config.DefaultTimeout,
		})
		if err != nil {
			return err
		}
		return a.writeJSON(final)
	default:
		report, err := a.engine.Run(ctx, engine.RunOptions{
			Tasks:   a.config.TaskNames,
			Args:    input,
			Timeout: a.config.DefaultTimeout,
		})
		if err != nil {
			return err
		}
		return a.writeJSON(report)
	}
}

// decodeInput interprets the raw -input flag value: valid JSON decodes to
// its Go value, an empty string becomes nil, anything else passes through
// as a plain string.
func decodeInput(raw string) any {
	if raw == "" {
		return nil
	}
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
		return decoded
	}
	return raw
}

func (a *App) writeJSON(v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Fprintln(a.outW, string(encoded))
	return nil
}
