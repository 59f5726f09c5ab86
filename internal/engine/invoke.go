package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vk/taskrungo/internal/task"
)

type settlement struct {
	value any
	err   error
}

// Invoke runs a single handler invocation, racing its settlement against a
// timer of timeout. A timeout of zero or less disables the timer and the
// handler is called directly. When the timer fires first, the call fails
// with ErrInvocationTimeout and the handler's eventual late settlement is
// discarded; the buffered channel guarantees the losing goroutine never
// blocks and its outcome is never observed.
//
// The handler's own error, if it settles first, propagates unmodified.
func Invoke(ctx context.Context, h task.Handler, arg any, timeout time.Duration) (any, error) {
	if timeout <= 0 {
		return h.Invoke(ctx, arg)
	}

	invCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan settlement, 1)
	go func() {
		value, err := h.Invoke(invCtx, arg)
		done <- settlement{value: value, err: err}
	}()

	select {
	case s := <-done:
		return s.value, s.err
	case <-invCtx.Done():
		if errors.Is(invCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("after %v: %w", timeout, ErrInvocationTimeout)
		}
		// The caller's context was cancelled; report that, not a timeout.
		return nil, invCtx.Err()
	}
}
