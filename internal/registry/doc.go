// Package registry provides the central store for task handler lists.
//
// The Registry maps task and phase names (a bare name like "build", or its
// implicit companions "pre-build" and "post-build") to ordered handler
// lists. Insertion order is preserved and is the execution order. An
// optional allow-list, established via DefineTasks, restricts which bare
// task names may be registered afterwards; phase lists for allowed names
// are pre-created so phase registrations pass the check naturally.
//
// Registry state is built during setup and is read-only for the duration of
// any engine run. The registry does not guard against concurrent mutation
// during execution; that is the caller's responsibility.
package registry
