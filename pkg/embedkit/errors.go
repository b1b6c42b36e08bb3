package embedkit

import (
	"errors"
	"fmt"
)

// Sentinel errors for configuration problems.
var (
	// ErrNoEmbeddingRegion indicates a host has no view to embed children into.
	ErrNoEmbeddingRegion = errors.New("no embedding region configured")

	// ErrNoEmbeddingHost indicates no EmbeddingController owns a controller
	// or any of its ancestors.
	ErrNoEmbeddingHost = errors.New("no embedding controller in parent chain")

	// ErrInvalidChild indicates an attempt to embed a host into itself or
	// into one of its own descendants.
	ErrInvalidChild = errors.New("controller cannot be embedded into its own ancestor chain")

	// ErrNoLoop indicates a component that animates was created without a UI loop.
	ErrNoLoop = errors.New("no UI loop")

	// ErrClosed is returned by operations on a torn down EmbeddingController.
	ErrClosed = errors.New("embedding controller closed")
)

// ConfigurationError reports an operation that was aborted because the
// component is not set up to perform it. No hierarchy mutation happens
// before a ConfigurationError is returned.
type ConfigurationError struct {
	Op  string // Operation that was aborted (e.g., "embed", "perform_segue")
	Err error  // Underlying error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("embedkit: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("embedkit: %s", e.Op)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(op string, err error) *ConfigurationError {
	return &ConfigurationError{Op: op, Err: err}
}

// IsConfigurationError checks if an error is a configuration error.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
