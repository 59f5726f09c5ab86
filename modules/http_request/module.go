package http_request

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/taskrungo/internal/catalog"
	"github.com/vk/taskrungo/internal/ctxlog"
	"github.com/vk/taskrungo/internal/task"
)

// Module implements the catalog.Module interface for this package.
type Module struct{}

// Register registers the handler kind with the catalog.
func (m *Module) Register(c *catalog.Catalog) {
	c.RegisterKind("http_request", &catalog.Kind{
		Factory: newHandler,
		Args:    catalog.ArgNames("url", "method", "timeout"),
	})
}

// newHandler builds a handler that performs one HTTP request per invocation
// and returns a map with the status code and body. The client is built once
// per binding so invocations reuse TCP connections.
func newHandler(args map[string]cty.Value) (task.Handler, error) {
	url, err := catalog.StringArg(args, "url", "")
	if err != nil {
		return nil, err
	}
	if url == "" {
		return nil, fmt.Errorf("http_request requires a 'url' argument")
	}
	method, err := catalog.StringArg(args, "method", http.MethodGet)
	if err != nil {
		return nil, err
	}
	timeout, err := catalog.DurationArg(args, "timeout", 30*time.Second)
	if err != nil {
		return nil, err
	}

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return task.Func(func(ctx context.Context, arg any) (any, error) {
		logger := ctxlog.FromContext(ctx)
		logger.Info("Making HTTP request", "method", method, "url", url)

		req, err := http.NewRequestWithContext(ctx, method, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to execute request: %w", err)
		}
		defer resp.Body.Close()

		logger.Info("Received HTTP response", "status", resp.Status)

		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		return map[string]any{
			"status_code": resp.StatusCode,
			"body":        string(bodyBytes),
		}, nil
	}), nil
}
