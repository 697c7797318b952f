// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
)

// ContractID validates a contract id is non-empty and usable as a single URL
// path segment.
func ContractID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("contract id is required")
	}
	if strings.ContainsAny(id, "/?# \t") {
		return fmt.Errorf("contract id %q must not contain '/', '?', '#', or whitespace", id)
	}
	return nil
}

// ContractIDField returns a criterio validator for contract ids.
func ContractIDField(field, id string) error {
	return criterio.Run(field, id, ContractID)
}

// Port validates a TCP port number. Zero is accepted and means "pick a free
// port".
func Port(port int) error {
	if port < 0 || port > 65535 {
		return fmt.Errorf("port %d out of range 0-65535", port)
	}
	return nil
}

// PortField returns a criterio validator for ports.
func PortField(field string, port int) error {
	if err := Port(port); err != nil {
		return criterio.NewFieldErrors(field, err)
	}
	return nil
}
