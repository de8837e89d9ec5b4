package registry

import (
	"errors"
	"fmt"
)

// ErrConfiguration is wrapped by every ConfigurationError.
// Use errors.Is(err, registry.ErrConfiguration) to detect registry misuse.
var ErrConfiguration = errors.New("registry: configuration error")

// ConfigurationError reports an identifier outside the registry, or an
// invalid registry definition.
type ConfigurationError struct {
	Kind       string // "block kind", "ability", or the offending field
	Identifier string
	Reason     string
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("registry: %s %q: %s", e.Kind, e.Identifier, e.Reason)
	}
	return fmt.Sprintf("registry: unknown %s %q", e.Kind, e.Identifier)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func unknown(kind, id string) error {
	return &ConfigurationError{Kind: kind, Identifier: id}
}

func invalid(kind, id, reason string) error {
	return &ConfigurationError{Kind: kind, Identifier: id, Reason: reason}
}
