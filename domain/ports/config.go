package ports

import "github.com/eoepca/owl-sdk/domain/entities"

// ConfigParser decodes raw host configuration. Fields missing from data keep
// the values already in base.
type ConfigParser interface {
	Parse(data []byte, base entities.HostConfig) (*entities.HostConfig, error)
}
