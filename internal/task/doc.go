// Package task defines the handler contract shared by the registry, the
// execution engine, and the built-in handler modules.
//
// Handlers are deliberately polymorphic over representation: anything that
// can be invoked with a context and a single argument qualifies. The Func
// adapter lets plain functions participate without a wrapper type.
package task
