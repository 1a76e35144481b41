package validation

import (
	"errors"

	"github.com/eoepca/owl-sdk/domain/entities"
	"github.com/go-playground/validator/v10"
)

// ConfigValidator validates host configuration.
type ConfigValidator struct {
	validate *validator.Validate
}

// NewConfigValidator creates a new ConfigValidator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate checks cfg against its struct tags.
func (v *ConfigValidator) Validate(cfg *entities.HostConfig) (*entities.ValidationResult, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	return toResult(v.validate.Struct(cfg))
}
