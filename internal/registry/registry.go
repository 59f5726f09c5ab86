package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/vk/taskrungo/internal/task"
)

// ErrTaskNotAllowed is returned when a registration targets a bare task name
// outside an established allow-list.
var ErrTaskNotAllowed = errors.New("task name not allowed")

// Registry owns the mapping from task and phase names to their ordered
// handler lists, and enforces the optional allow-list. It is not safe for
// concurrent mutation; callers must finish all registration before handing
// the registry to the engine.
type Registry struct {
	lists map[string][]task.Handler
	allow []string
	// allowDefined distinguishes "no allow-list" from an allow-list that was
	// established empty; the latter rejects every bare registration.
	allowDefined bool
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		lists: make(map[string][]task.Handler),
	}
}

// PrePhaseName returns the name of the pre phase list for a bare task name.
func PrePhaseName(name string) string {
	return "pre-" + name
}

// PostPhaseName returns the name of the post phase list for a bare task name.
func PostPhaseName(name string) string {
	return "post-" + name
}

// DefineTasks establishes the allow-list as exactly names. For each name an
// empty main handler list is created if absent, plus empty pre/post lists per
// the corresponding flag. Calling DefineTasks again replaces the allow-list;
// handler lists created by an earlier call are kept as-is.
func (r *Registry) DefineTasks(names []string, registerPre, registerPost bool) {
	r.allow = append([]string(nil), names...)
	r.allowDefined = true

	for _, name := range names {
		r.ensureList(name)
		if registerPre {
			r.ensureList(PrePhaseName(name))
		}
		if registerPost {
			r.ensureList(PostPhaseName(name))
		}
	}
	slog.Debug("Task allow-list defined.", "tasks", names, "pre", registerPre, "post", registerPost)
}

// Declare creates an empty handler list for name if absent, making the name
// known without registering any handler. The allow-list is not consulted;
// declaring a task is a setup-time act by the same owner that defines the
// allow-list.
func (r *Registry) Declare(name string) {
	r.ensureList(name)
}

// Register appends handler to the list for name, creating the list if it
// does not exist. When an allow-list is active, registration under a name
// that is not already a known list fails with ErrTaskNotAllowed.
func (r *Registry) Register(name string, h task.Handler) error {
	if h == nil {
		return fmt.Errorf("handler for task %q must not be nil", name)
	}
	if r.allowDefined && !r.IsKnown(name) && !r.allowsPhaseOf(name) {
		return fmt.Errorf("%w: %q is not in the allow-list; known tasks: %s",
			ErrTaskNotAllowed, name, strings.Join(r.KnownNames(), ", "))
	}
	r.lists[name] = append(r.lists[name], h)
	slog.Debug("Registered task handler.", "name", name, "handlers", len(r.lists[name]))
	return nil
}

// HandlersFor returns a copy of the ordered handler list for name, so the
// caller cannot alias the registry's own list. An unregistered name yields
// an empty list.
func (r *Registry) HandlersFor(name string) []task.Handler {
	return append([]task.Handler(nil), r.lists[name]...)
}

// IsKnown reports whether name has a (possibly empty) registered list.
func (r *Registry) IsKnown(name string) bool {
	_, ok := r.lists[name]
	return ok
}

// KnownNames returns every registered task and phase name, sorted for
// deterministic output.
func (r *Registry) KnownNames() []string {
	names := make([]string, 0, len(r.lists))
	for name := range r.lists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Allowed returns a copy of the current allow-list in definition order, or
// nil when no allow-list has been established. An established-but-empty
// allow-list yields an empty, non-nil slice.
func (r *Registry) Allowed() []string {
	if !r.allowDefined {
		return nil
	}
	return append(make([]string, 0, len(r.allow)), r.allow...)
}

// allowsPhaseOf reports whether name is a pre/post phase of an allowed bare
// task name. Phase names are implicitly allowed even when their lists were
// not pre-created by DefineTasks.
func (r *Registry) allowsPhaseOf(name string) bool {
	bare := name
	switch {
	case strings.HasPrefix(name, "pre-"):
		bare = strings.TrimPrefix(name, "pre-")
	case strings.HasPrefix(name, "post-"):
		bare = strings.TrimPrefix(name, "post-")
	default:
		return false
	}
	for _, allowed := range r.allow {
		if allowed == bare {
			return true
		}
	}
	return false
}

func (r *Registry) ensureList(name string) {
	if _, ok := r.lists[name]; !ok {
		r.lists[name] = []task.Handler{}
	}
}
