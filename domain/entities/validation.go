package entities

import "strings"

// ValidationResult represents the outcome of validating a decoded description.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// ValidationError represents a specific validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Summary joins all errors into one line per field.
func (r *ValidationResult) Summary() string {
	lines := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		lines = append(lines, e.Field+": "+e.Message)
	}
	return strings.Join(lines, "; ")
}
