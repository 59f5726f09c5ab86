package socketio_emit

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/zclconf/go-cty/cty"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/taskrungo/internal/catalog"
	"github.com/vk/taskrungo/internal/ctxlog"
	"github.com/vk/taskrungo/internal/task"
)

// Module implements the catalog.Module interface for this package.
type Module struct{}

// Register registers the handler kind with the catalog.
func (m *Module) Register(c *catalog.Catalog) {
	c.RegisterKind("socketio_emit", &catalog.Kind{
		Factory: newHandler,
		Args: catalog.ArgNames(
			"url", "namespace", "emit_event", "on_event",
			"insecure_skip_verify", "connect_timeout",
		),
	})
}

type binding struct {
	url                string
	namespace          string
	emitEvent          string
	onEvent            string
	insecureSkipVerify bool
	connectTimeout     time.Duration
}

// newHandler builds a handler that connects to a Socket.IO server, emits one
// event carrying the invocation argument, optionally waits for a response
// event, and disconnects. The response event's payload becomes the handler
// result; without an on_event the argument passes through unchanged.
func newHandler(args map[string]cty.Value) (task.Handler, error) {
	var b binding
	var err error

	if b.url, err = catalog.StringArg(args, "url", ""); err != nil {
		return nil, err
	}
	if b.url == "" {
		return nil, fmt.Errorf("socketio_emit requires a 'url' argument")
	}
	if b.emitEvent, err = catalog.StringArg(args, "emit_event", ""); err != nil {
		return nil, err
	}
	if b.emitEvent == "" {
		return nil, fmt.Errorf("socketio_emit requires an 'emit_event' argument")
	}
	if b.namespace, err = catalog.StringArg(args, "namespace", ""); err != nil {
		return nil, err
	}
	if b.onEvent, err = catalog.StringArg(args, "on_event", ""); err != nil {
		return nil, err
	}
	if b.insecureSkipVerify, err = catalog.BoolArg(args, "insecure_skip_verify", false); err != nil {
		return nil, err
	}
	if b.connectTimeout, err = catalog.DurationArg(args, "connect_timeout", 15*time.Second); err != nil {
		return nil, err
	}

	return task.Func(b.invoke), nil
}

func (b *binding) invoke(ctx context.Context, arg any) (any, error) {
	logger := ctxlog.FromContext(ctx).With("handler", "socketio_emit", "url", b.url)

	io, err := b.connect(ctx, logger.With("stage", "connect"))
	if err != nil {
		return nil, err
	}
	defer io.Disconnect()

	responseChan := make(chan any, 1)
	if b.onEvent != "" {
		io.Once(types.EventName(b.onEvent), func(data ...any) {
			if len(data) > 0 {
				responseChan <- data[0]
			} else {
				responseChan <- nil
			}
		})
	}

	logger.Info("Emitting event", "event", b.emitEvent)
	if arg != nil {
		io.Emit(b.emitEvent, arg)
	} else {
		io.Emit(b.emitEvent)
	}

	if b.onEvent == "" {
		return arg, nil
	}

	select {
	case response := <-responseChan:
		logger.Info("Received response event", "event", b.onEvent)
		return response, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("cancelled while waiting for event '%s': %w", b.onEvent, ctx.Err())
	}
}

// connect establishes the Socket.IO connection, waiting for the connect or
// connect_error event.
func (b *binding) connect(ctx context.Context, logger *slog.Logger) (*socket.Socket, error) {
	parsedURL, err := url.Parse(b.url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if b.insecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 2)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(b.namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Successfully connected", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err, _ := errs[0].(error)
		if err == nil {
			err = fmt.Errorf("connect_error: %v", errs[0])
		}
		connectChan <- err
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return io, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(b.connectTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %v waiting for socket.io connection", b.connectTimeout)
	}
}
