package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/taskrungo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("taskrungo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
TaskRunGo - A sequential task-orchestration engine.

Usage:
  taskrungo [options] [TASK ...]

Arguments:
  TASK
    Bare task names to run, in order. Comma-separated lists are accepted.
    When omitted, the manifest allow-list is run.

Options:
`)
		flagSet.PrintDefaults()
	}

	tasksFlag := flagSet.String("tasks", "", "Path to the directory of .hcl task manifests.")
	tFlag := flagSet.String("t", "", "Path to the directory of .hcl task manifests (shorthand).")
	modeFlag := flagSet.String("mode", "series", "Execution mode. Options: 'series' or 'pipe'.")
	inputFlag := flagSet.String("input", "", "Handler argument (series) or initial pipe value. JSON is decoded.")
	timeoutFlag := flagSet.Duration("timeout", 0, "Per-invocation handler timeout. 0 disables it.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *tasksFlag != "" {
		path = *tasksFlag
	} else if *tFlag != "" {
		path = *tFlag
	}

	if path == "" {
		slog.Debug("No tasks path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	var taskNames []string
	for _, arg := range flagSet.Args() {
		for _, name := range strings.Split(arg, ",") {
			if name = strings.TrimSpace(name); name != "" {
				taskNames = append(taskNames, name)
			}
		}
	}

	mode := strings.ToLower(*modeFlag)
	if mode != app.ModeSeries && mode != app.ModePipe {
		return nil, false, &ExitError{Code: 2, Message: "invalid mode: must be 'series' or 'pipe'"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		TasksPath:       path,
		Mode:            mode,
		TaskNames:       taskNames,
		Input:           *inputFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: *healthPortFlag,
		DefaultTimeout:  *timeoutFlag,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
