package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingDomainData marks an envelope that lacks one of its raw records.
var ErrMissingDomainData = errors.New("expected domain record missing from envelope")

// ErrNoEnvelope is returned when reprocessing is requested before any
// envelope was accepted.
var ErrNoEnvelope = errors.New("no envelope accepted yet")

// ValidationError itemizes why a domain record is malformed.
type ValidationError struct {
	Domain   AnalysisDomain
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s record: %s", e.Domain, strings.Join(e.Problems, "; "))
}

// MissingDomainError wraps ErrMissingDomainData with the domain that was
// missing.
func MissingDomainError(d AnalysisDomain) error {
	return fmt.Errorf("%s: %w", d, ErrMissingDomainData)
}
