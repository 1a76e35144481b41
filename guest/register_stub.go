//go:build !wasip1

package guest

import "github.com/eoepca/owl-sdk/domain/ports"

// Register is a no-op outside wasip1 builds; use NewBridge directly to drive
// a parser in-process.
func Register(_ ports.DescriptionParser) {}
