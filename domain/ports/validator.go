package ports

import (
	"github.com/eoepca/owl-sdk/domain/entities"
	"github.com/eoepca/owl-sdk/wireformat"
)

// DescriptionValidator validates a decoded description before it becomes a
// data model tree.
type DescriptionValidator interface {
	Validate(wire *wireformat.ParameterWire) (*entities.ValidationResult, error)
}
