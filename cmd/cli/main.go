package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/taskrungo/internal/app"
	"github.com/vk/taskrungo/internal/cli"
	"github.com/vk/taskrungo/internal/hcl"
)

func main() {
	os.Exit(realMain(os.Stdout, os.Stderr, os.Args[1:]))
}

// realMain carries the whole entrypoint so tests can drive it with fake
// streams and inspect the exit code.
func realMain(outW, errW io.Writer, args []string) (code int) {
	// Bootstrap logger for everything that runs before the app configures
	// its own.
	slog.SetDefault(slog.New(slog.NewTextHandler(errW, nil)))

	appConfig, done, err := cli.Parse(args, outW)
	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(errW, exitErr.Message)
			return exitErr.Code
		}
		fmt.Fprintln(errW, err)
		return 1
	}
	if done {
		return 0
	}

	// NewApp panics on startup misconfiguration; turn that into an exit
	// code instead of a stack trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(errW, "startup failed: %v\n", r)
			code = 1
		}
	}()

	taskrunApp := app.NewApp(outW, appConfig, hcl.NewLoader())
	if err := taskrunApp.Run(context.Background()); err != nil {
		fmt.Fprintln(errW, err)
		return 1
	}
	return 0
}
