package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminate(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{"empty", []byte{}, []byte{}},
		{"already terminated", []byte{'a', 0, 'b'}, []byte{'a', 0, 'b'}},
		{"unterminated", []byte("abc"), []byte{'a', 'b', 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terminate(tt.in)
			assert.Equal(t, tt.want, tt.in)
		})
	}
}

func TestCString(t *testing.T) {
	assert.Equal(t, "Stub", cString([]byte{'S', 't', 'u', 'b', 0, 'x'}))
	assert.Equal(t, "raw", cString([]byte("raw")))
	assert.Equal(t, "", cString(nil))
}

func TestHandleStateString(t *testing.T) {
	assert.Equal(t, "owned", handleOwned.String())
	assert.Equal(t, "moved", handleMoved.String())
	assert.Equal(t, "released", handleReleased.String())
	assert.Equal(t, "unknown", handleState(9).String())
}
