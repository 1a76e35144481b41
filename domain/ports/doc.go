// Package ports defines interfaces for infrastructure operations.
// The loader depends on these abstractions; the wazero adapter and the
// in-process test module implement them.
package ports
