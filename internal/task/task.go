package task

import "context"

// Handler is the single invocation capability every handler representation
// must satisfy. A handler receives the caller's argument (series mode) or the
// current pipe value (pipe mode) and returns its result. Per-invocation
// timeouts arrive through the context's deadline.
type Handler interface {
	Invoke(ctx context.Context, arg any) (any, error)
}

// Func adapts a plain function to the Handler interface.
type Func func(ctx context.Context, arg any) (any, error)

// Invoke implements the Handler interface.
func (f Func) Invoke(ctx context.Context, arg any) (any, error) {
	return f(ctx, arg)
}
