package catalog

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/taskrungo/internal/task"
)

// Factory builds a handler from the arguments declared in a manifest
// binding.
type Factory func(args map[string]cty.Value) (task.Handler, error)

// Module is the interface every built-in handler module implements to make
// its handler kinds available.
type Module interface {
	Register(c *Catalog)
}

// Kind describes one registered handler kind: its factory plus the argument
// names its manifest bindings may declare.
type Kind struct {
	Factory Factory
	// Args lists the accepted manifest argument names. A nil map means the
	// kind accepts no arguments.
	Args map[string]struct{}
}

// Catalog holds every registered handler kind for a single application
// instance. Handler kinds are compile-time-known; the manifest layer only
// refers to them by name.
type Catalog struct {
	kinds map[string]*Kind
}

// New creates and initializes a new Catalog instance.
func New() *Catalog {
	return &Catalog{
		kinds: make(map[string]*Kind),
	}
}

// RegisterKind registers a handler kind under a unique name. Registering the
// same name twice is a programmer error.
func (c *Catalog) RegisterKind(name string, kind *Kind) {
	if _, exists := c.kinds[name]; exists {
		panic(fmt.Sprintf("handler kind '%s' already registered", name))
	}
	if kind == nil || kind.Factory == nil {
		panic(fmt.Sprintf("handler kind '%s' must carry a factory", name))
	}
	slog.Debug("Registering handler kind.", "kind", name)
	c.kinds[name] = kind
}

// Kinds returns the registered kind names, sorted.
func (c *Catalog) Kinds() []string {
	names := make([]string, 0, len(c.kinds))
	for name := range c.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
