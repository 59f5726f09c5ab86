package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/taskrungo/internal/config"
	"github.com/vk/taskrungo/internal/ctxlog"
	"github.com/vk/taskrungo/internal/fsutil"
)

// Loader reads .hcl task manifests and translates them into the
// format-agnostic config model.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load implements config.Loader. Manifest files are discovered recursively
// under each path in sorted order, so the resulting model is deterministic
// regardless of filesystem enumeration order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	var filePaths []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			logger.Error("Failed to walk tasks directory", "path", path, "error", err)
			return nil, err
		}
		filePaths = append(filePaths, found...)
	}

	if len(filePaths) == 0 {
		logger.Warn("No .hcl manifest files found", "paths", paths)
	}

	model := &config.Model{}
	seen := make(map[string]string)
	parser := hclparse.NewParser()

	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", filePath, diags)
		}

		var root rootSchema
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode manifest %s: %w", filePath, diags)
		}

		if root.Allow != nil {
			if model.Allow != nil {
				return nil, fmt.Errorf("manifest %s: allowlist already defined in another file", filePath)
			}
			model.Allow = &config.AllowDefinition{
				Tasks:        root.Allow.Tasks,
				RegisterPre:  root.Allow.RegisterPre,
				RegisterPost: root.Allow.RegisterPost,
			}
		}

		for _, block := range root.Tasks {
			if prev, ok := seen[block.Name]; ok {
				return nil, fmt.Errorf("manifest %s: task %q already defined in %s", filePath, block.Name, prev)
			}
			seen[block.Name] = filePath

			def, err := l.translateTask(block)
			if err != nil {
				return nil, fmt.Errorf("manifest %s: %w", filePath, err)
			}
			model.Tasks = append(model.Tasks, def)
		}

		logger.Debug("Loaded manifest file.", "file", filePath, "tasks", len(root.Tasks))
	}

	logger.Info("Task manifests loaded.", "files", len(filePaths), "tasks", len(model.Tasks))
	return model, nil
}

// translateTask converts an HCL task block into the agnostic model.
func (l *Loader) translateTask(block *taskBlock) (*config.TaskDefinition, error) {
	def := &config.TaskDefinition{
		Name:        block.Name,
		Description: block.Description,
	}

	var err error
	if def.Pre, err = l.translatePhase(block.Pre); err != nil {
		return nil, fmt.Errorf("task %q pre phase: %w", block.Name, err)
	}
	if def.Main, err = l.translatePhase(block.Main); err != nil {
		return nil, fmt.Errorf("task %q main phase: %w", block.Name, err)
	}
	if def.Post, err = l.translatePhase(block.Post); err != nil {
		return nil, fmt.Errorf("task %q post phase: %w", block.Name, err)
	}
	return def, nil
}

// translatePhase converts one phase block's handler bindings. A missing
// phase block yields no bindings.
func (l *Loader) translatePhase(block *phaseBlock) ([]*config.HandlerBinding, error) {
	if block == nil {
		return nil, nil
	}
	bindings := make([]*config.HandlerBinding, 0, len(block.Handlers))
	for _, h := range block.Handlers {
		args, err := extractArguments(h.Body)
		if err != nil {
			return nil, fmt.Errorf("handler %q: %w", h.Kind, err)
		}
		bindings = append(bindings, &config.HandlerBinding{Kind: h.Kind, Args: args})
	}
	return bindings, nil
}

// extractArguments evaluates every attribute of a handler block body into a
// concrete value. Manifest arguments are literals; there is no evaluation
// context to resolve references against.
func extractArguments(body hcl.Body) (map[string]cty.Value, error) {
	if body == nil {
		return nil, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	if len(attrs) == 0 {
		return nil, nil
	}

	args := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		value, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		args[name] = value
	}
	return args, nil
}
