// Package testutil provides shared fixtures and assertions for loader tests.
package testutil

import (
	"encoding/json"
	"testing"

	"github.com/eoepca/owl-sdk/application/codec"
	"github.com/eoepca/owl-sdk/domain/entities"
	domainerrors "github.com/eoepca/owl-sdk/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertJSONEqual compares two JSON strings for equality, ignoring formatting
func AssertJSONEqual(t *testing.T, expected, actual string, msgAndArgs ...interface{}) {
	t.Helper()

	var expectedJSON, actualJSON interface{}
	require.NoError(t, json.Unmarshal([]byte(expected), &expectedJSON), "expected JSON is invalid")
	require.NoError(t, json.Unmarshal([]byte(actual), &actualJSON), "actual JSON is invalid")

	assert.Equal(t, expectedJSON, actualJSON, msgAndArgs...)
}

// AssertSameDescription compares two trees through their wire form.
func AssertSameDescription(t *testing.T, expected, actual *entities.OWSParameter, msgAndArgs ...interface{}) {
	t.Helper()
	require.NotNil(t, expected)
	require.NotNil(t, actual)
	assert.Equal(t, codec.ToWire(expected), codec.ToWire(actual), msgAndArgs...)
}

// AssertContractViolation asserts that f panics with a *ContractViolation
// raised by operation.
func AssertContractViolation(t *testing.T, operation string, f func()) {
	t.Helper()

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		f()
	}()

	require.NotNil(t, recovered, "expected a contract violation in %s", operation)
	cv, ok := recovered.(*domainerrors.ContractViolation)
	require.True(t, ok, "expected *ContractViolation, got %T: %v", recovered, recovered)
	assert.Equal(t, operation, cv.Operation)
}
