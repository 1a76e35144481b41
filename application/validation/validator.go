// Package validation checks decoded process descriptions before they are
// turned into data model trees.
package validation

import (
	"errors"
	"fmt"

	"github.com/eoepca/owl-sdk/domain/entities"
	"github.com/eoepca/owl-sdk/domain/ports"
	"github.com/eoepca/owl-sdk/wireformat"
	"github.com/go-playground/validator/v10"
)

// DescriptionValidator validates wire trees with struct tags plus the
// cardinality invariant.
type DescriptionValidator struct {
	validate *validator.Validate
}

// NewDescriptionValidator creates a new validator.
func NewDescriptionValidator() ports.DescriptionValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(occursInvariant, wireformat.ParamWire{})
	return &DescriptionValidator{validate: v}
}

// occursInvariant enforces maxOccurs == 0 || maxOccurs >= minOccurs.
func occursInvariant(sl validator.StructLevel) {
	p := sl.Current().Interface().(wireformat.ParamWire)
	if p.MaxOccurs != entities.Unbounded && p.MaxOccurs < p.MinOccurs {
		sl.ReportError(p.MaxOccurs, "MaxOccurs", "max_occurs", "occurs", "")
	}
}

// Validate checks the tree. Validation failures are reported in the result;
// the error return is reserved for a nil tree or validator misuse.
func (v *DescriptionValidator) Validate(wire *wireformat.ParameterWire) (*entities.ValidationResult, error) {
	if wire == nil {
		return nil, errors.New("nil description")
	}

	return toResult(v.validate.Struct(wire))
}

// toResult turns a validator error into a ValidationResult.
func toResult(err error) (*entities.ValidationResult, error) {
	result := &entities.ValidationResult{Valid: true}
	if err == nil {
		return result, nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return nil, err
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, err
	}

	result.Valid = false
	for _, fe := range fieldErrs {
		result.Errors = append(result.Errors, entities.ValidationError{
			Field:   fe.Namespace(),
			Message: message(fe),
		})
	}
	return result, nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "occurs":
		return "must be 0 (unbounded) or not below min_occurs"
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %v", fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "gtefield":
		return fmt.Sprintf("must not be below %s", fe.Param())
	case "required_if":
		return "is required for this parameter type"
	case "excluded_unless":
		return "must not be set for this parameter type"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
