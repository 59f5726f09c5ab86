package config

import "context"

// Loader is the interface for a format-specific task-manifest loader. It
// reads every manifest under the given paths, in a deterministic order, and
// translates them into the format-agnostic model.
type Loader interface {
	Load(ctx context.Context, paths ...string) (*Model, error)
}
