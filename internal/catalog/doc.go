// Package catalog provides the handler-discovery surface: a registry of
// compile-time-known handler kinds that task manifests refer to by name.
//
// Built-in handler modules register their kinds during application startup.
// After the manifest model is loaded, Validate cross-checks every binding
// against the registered kinds, and Bind builds the bound handlers and
// registers them into the task registry in declaration order. Nothing in
// this package depends on filesystem enumeration order or on dynamically
// loaded code.
package catalog
