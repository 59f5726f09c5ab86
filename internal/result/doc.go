// Package result provides a small tagged Ok/Err result type used by the
// engine's phase-execution steps.
package result
