package entities

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MalformedNumberError reports non-numeric text handed to a cardinality or
// size setter. The target field keeps its previous value.
type MalformedNumberError struct {
	Err   error
	Field string
	Input string
}

func (e *MalformedNumberError) Error() string {
	return fmt.Sprintf("malformed value %q for %s: %v", e.Input, e.Field, e.Err)
}

func (e *MalformedNumberError) Unwrap() error {
	return e.Err
}

// ToErrorDetail converts the error to its structured form.
func (e *MalformedNumberError) ToErrorDetail() *ErrorDetail {
	return &ErrorDetail{Message: e.Error(), Type: "validation", Code: e.Field}
}

var errNegative = errors.New("value must not be negative")

// parseCount parses a non-negative integer field. Empty text yields 0;
// whitespace-only text is malformed.
func parseCount(field, text string, bits int) (int64, error) {
	if text == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(text), 10, bits)
	if err != nil {
		return 0, &MalformedNumberError{Field: field, Input: text, Err: err}
	}
	if n < 0 {
		return 0, &MalformedNumberError{Field: field, Input: text, Err: errNegative}
	}
	return n, nil
}
