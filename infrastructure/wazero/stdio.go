package wazero

import (
	"bytes"
	"sync"
)

// DefaultMaxOutputSize bounds captured guest stdout/stderr (1MB).
const DefaultMaxOutputSize = 1 * 1024 * 1024

// BoundedBuffer is a bytes.Buffer wrapper that limits the size of written data.
// It implements io.Writer and can be passed to WithStdio to capture a guest's
// standard streams.
type BoundedBuffer struct {
	mu        sync.Mutex
	buffer    bytes.Buffer
	limit     int
	truncated bool
}

// NewBoundedBuffer creates a new BoundedBuffer with the specified limit.
func NewBoundedBuffer(limit int) *BoundedBuffer {
	return &BoundedBuffer{
		limit: limit,
	}
}

// Write implements io.Writer.
// It writes data up to the limit and then silently discards the rest.
func (b *BoundedBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.buffer.Len() >= b.limit {
		b.truncated = b.truncated || len(p) > 0
		return len(p), nil
	}

	remaining := b.limit - b.buffer.Len()
	if len(p) > remaining {
		b.truncated = true
		if _, err = b.buffer.Write(p[:remaining]); err != nil {
			return 0, err
		}
		return len(p), nil
	}

	return b.buffer.Write(p)
}

// String returns the buffer contents as a string.
func (b *BoundedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buffer.String()
}

// Len returns the current length of the buffer.
func (b *BoundedBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buffer.Len()
}

// Truncated reports whether any data was discarded.
func (b *BoundedBuffer) Truncated() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.truncated
}

// Reset resets the buffer and clears the truncated flag.
func (b *BoundedBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buffer.Reset()
	b.truncated = false
}
