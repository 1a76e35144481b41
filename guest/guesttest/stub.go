// Package guesttest provides a reference parser and fixtures for module
// authors and host tests.
package guesttest

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/eoepca/owl-sdk/application/codec"
	"github.com/eoepca/owl-sdk/domain/entities"
)

// StubName and StubVersion are what StubParser reports.
const (
	StubName          = "StubParser"
	StubVersion int64 = 3
)

// ErrEmptyDocument is returned for a zero-length document.
var ErrEmptyDocument = errors.New("empty document")

// StubParser serves canned trees by path and decodes wire JSON from memory.
// Unknown paths are read from disk and decoded the same way.
type StubParser struct {
	name    string
	version int64

	mu        sync.Mutex
	documents map[string]func() *entities.OWSParameter
	calls     int
}

// StubOption configures a StubParser.
type StubOption func(*StubParser)

// WithName overrides the reported name.
func WithName(name string) StubOption {
	return func(s *StubParser) { s.name = name }
}

// WithVersion overrides the reported version.
func WithVersion(v int64) StubOption {
	return func(s *StubParser) { s.version = v }
}

// WithDocument serves build() for path.
func WithDocument(path string, build func() *entities.OWSParameter) StubOption {
	return func(s *StubParser) { s.documents[path] = build }
}

// NewStubParser returns a parser serving SampleDescription at "sample.xml".
func NewStubParser(opts ...StubOption) *StubParser {
	s := &StubParser{
		name:      StubName,
		version:   StubVersion,
		documents: map[string]func() *entities.OWSParameter{"sample.xml": SampleDescription},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements ports.DescriptionParser.
func (s *StubParser) Name() string { return s.name }

// Version implements ports.DescriptionParser.
func (s *StubParser) Version() int64 { return s.version }

// ParseFile implements ports.DescriptionParser.
func (s *StubParser) ParseFile(path string) (*entities.OWSParameter, error) {
	s.mu.Lock()
	s.calls++
	build, ok := s.documents[path]
	s.mu.Unlock()

	if ok {
		return build(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("stub: %w", err)
	}
	return s.decode(data)
}

// ParseMemory implements ports.DescriptionParser.
func (s *StubParser) ParseMemory(data []byte) (*entities.OWSParameter, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.decode(data)
}

// Calls returns how many parse requests reached the parser.
func (s *StubParser) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *StubParser) decode(data []byte) (*entities.OWSParameter, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}
	return codec.Decode(data)
}
