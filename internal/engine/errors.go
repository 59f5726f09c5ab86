package engine

import "errors"

var (
	// ErrUnknownTask is returned when a requested bare task name was never
	// registered at all. A name whose list exists but is empty is known.
	ErrUnknownTask = errors.New("unknown task")

	// ErrNoTasksSpecified is returned when neither an explicit task list nor
	// an allow-list is available to default to.
	ErrNoTasksSpecified = errors.New("no tasks specified and no allow-list to default to")

	// ErrInvalidPipeValue is returned when a pipe phase completes with a nil
	// value. A nil pipe value signals a data-contract violation, not a
	// legitimate payload.
	ErrInvalidPipeValue = errors.New("invalid pipe value")

	// ErrInvocationTimeout is returned when a single handler invocation
	// exceeds its allotted time.
	ErrInvocationTimeout = errors.New("handler invocation timed out")
)
