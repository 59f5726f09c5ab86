package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/taskrungo/internal/catalog"
	"github.com/vk/taskrungo/internal/config"
	"github.com/vk/taskrungo/internal/ctxlog"
	"github.com/vk/taskrungo/internal/engine"
	"github.com/vk/taskrungo/internal/registry"
	"github.com/vk/taskrungo/modules/env_vars"
	"github.com/vk/taskrungo/modules/http_request"
	"github.com/vk/taskrungo/modules/print"
	"github.com/vk/taskrungo/modules/s3_upload"
	"github.com/vk/taskrungo/modules/socketio_emit"
)

// coreModules are the built-in handler modules registered when the caller
// does not supply an explicit module set.
var coreModules = []catalog.Module{
	&env_vars.Module{},
	&http_request.Module{},
	&print.Module{},
	&s3_upload.Module{},
	&socketio_emit.Module{},
}

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	catalog  *catalog.Catalog
	registry *registry.Registry
	engine   *engine.Engine
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger, catalog, and
// registry. Startup configuration errors are programmer/operator errors and
// panic; the entrypoint recovers them into a clean exit.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...catalog.Module) *App {
	logger := appConfig.newLogger(outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.TasksPath)
	if err != nil {
		panic(fmt.Errorf("failed to load task manifests: %w", err))
	}
	logger.Debug("Task manifests loaded into unified model.")

	cat := catalog.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(cat)
	}
	logger.Debug("All handler modules registered.", "count", len(modules))

	if err := cat.Validate(ctx, model); err != nil {
		panic(err)
	}
	logger.Debug("Catalog validation passed.")

	reg := registry.New()
	if err := cat.Bind(ctx, model, reg); err != nil {
		panic(fmt.Errorf("failed to bind task manifests: %w", err))
	}
	logger.Debug("Registry populated from manifest model.", "known", reg.KnownNames())

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		catalog:  cat,
		registry: reg,
		engine:   engine.New(reg),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Engine returns the application's execution engine. This is primarily for
// testing.
func (a *App) Engine() *engine.Engine {
	return a.engine
}
