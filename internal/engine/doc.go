// Package engine implements the sequential task execution core: phase
// resolution (pre/main/post), per-invocation timeout enforcement, and the
// two execution modes.
//
// Series mode (Run) invokes each non-empty phase's handlers independently
// and collects their discrete results into a labeled report. Pipe mode
// (Pipe) threads one evolving value through every handler of every
// requested task, aborting on a nil intermediate value.
//
// Execution is strictly sequential: handler invocations are awaited one at
// a time, ordered by requested task order, then phase order (pre, main,
// post), then handler registration order. Every failure aborts the
// in-flight call entirely; no partial report or partial pipe value is
// delivered. There are no retries.
package engine
