package result

import (
	"time"

	"github.com/google/uuid"
)

// Result is a tagged outcome of one execution step: either a value or an
// error, never both. The engine threads these through its phase steps
// instead of using panics for control flow.
type Result[T any] struct {
	id        uuid.UUID
	createdAt time.Time
	value     T
	err       error
	ok        bool
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		value:     v,
		ok:        true,
	}
}

// Err wraps a failure.
func Err[T any](err error) Result[T] {
	return Result[T]{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		err:       err,
	}
}

// Value returns the successful value; the zero value when the result is an error.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the error when the result is a failure, nil otherwise.
func (r Result[T]) Err() error {
	return r.err
}

// IsOk reports whether the result carries a value.
func (r Result[T]) IsOk() bool {
	return r.ok
}

// IsErr reports whether the result carries an error.
func (r Result[T]) IsErr() bool {
	return !r.ok
}

// ID returns the result's unique identifier.
func (r Result[T]) ID() uuid.UUID {
	return r.id
}

// CreatedAt returns the result's creation time (UTC).
func (r Result[T]) CreatedAt() time.Time {
	return r.createdAt
}
