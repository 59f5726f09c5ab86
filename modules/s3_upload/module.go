package s3_upload

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/taskrungo/internal/catalog"
	"github.com/vk/taskrungo/internal/ctxlog"
	"github.com/vk/taskrungo/internal/task"
)

// Module implements the catalog.Module interface for this package.
type Module struct{}

// httpClient is shared by all bindings of this kind to reuse TCP connections.
var httpClient = &http.Client{}

// Register registers the handler kind with the catalog.
func (m *Module) Register(c *catalog.Catalog) {
	c.RegisterKind("s3_upload", &catalog.Kind{
		Factory: newHandler,
		Args:    catalog.ArgNames("source_path", "upload_url"),
	})
}

// newHandler builds a handler that uploads a local file to a pre-signed URL
// with an HTTP PUT.
func newHandler(args map[string]cty.Value) (task.Handler, error) {
	sourcePath, err := catalog.StringArg(args, "source_path", "")
	if err != nil {
		return nil, err
	}
	uploadURL, err := catalog.StringArg(args, "upload_url", "")
	if err != nil {
		return nil, err
	}
	if sourcePath == "" || uploadURL == "" {
		return nil, fmt.Errorf("s3_upload requires 'source_path' and 'upload_url' arguments")
	}

	return task.Func(func(ctx context.Context, arg any) (any, error) {
		logger := ctxlog.FromContext(ctx).With("action", "upload")

		file, err := os.Open(sourcePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open source file '%s': %w", sourcePath, err)
		}
		defer file.Close()

		stat, err := file.Stat()
		if err != nil {
			return nil, fmt.Errorf("failed to get file stats for '%s': %w", sourcePath, err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, file)
		if err != nil {
			return nil, fmt.Errorf("failed to create upload request: %w", err)
		}

		contentType := mime.TypeByExtension(filepath.Ext(sourcePath))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		req.Header.Set("Content-Type", contentType)
		req.ContentLength = stat.Size()

		logger.Info("Uploading file", "source", sourcePath, "size", stat.Size(), "contentType", contentType)

		resp, err := httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to execute upload request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("upload failed with status: %s", resp.Status)
		}

		logger.Info("Successfully uploaded file", "status", resp.Status)

		return map[string]any{
			"success": true,
			"status":  resp.Status,
		}, nil
	}), nil
}
