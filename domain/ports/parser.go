package ports

import "github.com/eoepca/owl-sdk/domain/entities"

// DescriptionParser is implemented by module authors. It runs inside the
// module and produces trees that the module keeps until the host releases
// them.
type DescriptionParser interface {
	// Name is the human-readable parser name.
	Name() string

	// Version is the module's content/ABI version.
	Version() int64

	// ParseFile parses the document at path.
	ParseFile(path string) (*entities.OWSParameter, error)

	// ParseMemory parses an in-memory document.
	ParseMemory(data []byte) (*entities.OWSParameter, error)
}
