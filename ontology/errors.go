package ontology

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph lookups and mutations.
var (
	// ErrUnknownDomain indicates a domain ID not present in the graph.
	ErrUnknownDomain = errors.New("unknown domain")
	// ErrUnknownDimension indicates an impact dimension ID not present in the graph.
	ErrUnknownDimension = errors.New("unknown impact dimension")
)

// IntegrityError reports a referential integrity violation: a domain that
// names an impact dimension the graph does not contain.
type IntegrityError struct {
	DomainID    string
	DimensionID string
}

// Error implements the error interface.
func (e *IntegrityError) Error() string {
	return fmt.Sprintf("domain %q references unknown impact dimension %q", e.DomainID, e.DimensionID)
}

// Unwrap returns ErrUnknownDimension so callers can match with errors.Is.
func (e *IntegrityError) Unwrap() error {
	return ErrUnknownDimension
}
