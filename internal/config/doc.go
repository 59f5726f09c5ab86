// Package config defines the format-agnostic model for task manifests,
// along with the Loader interface for reading them from disk. The model is
// the single source of truth the catalog binds into the registry; concrete
// loader implementations, such as for HCL, live in separate packages.
package config
