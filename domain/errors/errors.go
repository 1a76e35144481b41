// Package errors provides the loader's error taxonomy.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/eoepca/owl-sdk/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// MalformedNumberError is raised by the numeric setters of the data model.
type MalformedNumberError = entities.MalformedNumberError

// DetailedError is implemented by error types that can convert themselves to
// a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		inner := de.ToErrorDetail()
		// Wrapping adds context to the message; keep the typed detail underneath.
		if msg := err.Error(); msg != inner.Message {
			outer := entities.NewErrorDetail(inner.Type, msg).WithCode(inner.Code).WithDetails(inner.Details)
			outer.Wrapped = inner
			return outer
		}
		return inner
	}

	return entities.NewErrorDetail("internal", err.Error())
}

// LoadError means the module at Path could not be read, compiled or
// instantiated.
type LoadError struct {
	Err  error
	Path string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load module %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *LoadError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "load", Code: e.Path}
}

// CapabilityError means a required export is absent from the module.
type CapabilityError struct {
	Required string // export name, e.g. "parseFromFile"
	Path     string // module path, if known
}

func (e *CapabilityError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("missing capability: %s (module: %s)", e.Required, e.Path)
	}
	return fmt.Sprintf("missing capability: %s", e.Required)
}

// ToErrorDetail implements DetailedError.
func (e *CapabilityError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "capability", Code: e.Required}
}

// VersionError means the module reported a version outside the host's
// accepted range.
type VersionError struct {
	Got int64
	Min int64
	Max int64
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("module version %d outside supported range [%d, %d]", e.Got, e.Min, e.Max)
}

// ToErrorDetail implements DetailedError.
func (e *VersionError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{
		Message: e.Error(),
		Type:    "version",
		Code:    fmt.Sprintf("v%d", e.Got),
		Details: map[string]any{"min": e.Min, "max": e.Max},
	}
}

// ParseError means a parse call produced no tree. Err is nil when the module
// returned a null handle without further detail.
type ParseError struct {
	Err       error
	Operation string // "parseFromFile" or "parseFromMemory"
	Source    string // file path or a byte count description
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed for %s: %v", e.Operation, e.Source, e.Err)
	}
	return fmt.Sprintf("%s returned no result for %s", e.Operation, e.Source)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ParseError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "parse", Code: e.Operation}
}

// ContractViolation is the panic value raised when the caller breaks the
// loader contract: using an invalid loader, a nil, moved or released handle,
// or releasing a handle through a loader that did not produce it.
type ContractViolation struct {
	Operation string
	Reason    string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("contract violation in %s: %s", e.Operation, e.Reason)
}

// ToErrorDetail implements DetailedError.
func (e *ContractViolation) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "contract", Code: e.Operation}
}

// Violation panics with a *ContractViolation.
func Violation(operation, reason string) {
	panic(&ContractViolation{Operation: operation, Reason: reason})
}

// MemoryError represents a guest memory transfer failure.
type MemoryError struct {
	Operation string // "allocate", "read" or "write"
	Ptr       uint32
	Size      uint32
}

func (e *MemoryError) Error() string {
	return fmt.Sprintf("guest memory %s failed at 0x%x (%d bytes)", e.Operation, e.Ptr, e.Size)
}

// ToErrorDetail implements DetailedError.
func (e *MemoryError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "internal", Code: "memory_" + e.Operation}
}

// WireFormatError represents a wire format encoding/decoding error.
type WireFormatError struct {
	Err       error
	Operation string
	Type      string
}

func (e *WireFormatError) Error() string {
	return fmt.Sprintf("wire format %s failed for %s: %v", e.Operation, e.Type, e.Err)
}

func (e *WireFormatError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *WireFormatError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "internal", Code: "wire_format"}
}

// ConfigError represents a host configuration error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: e.Field}
}
