package matching

import (
	"errors"
	"fmt"
)

var ErrCompatibilityScoring = errors.New("compatibility scoring failed")

// ScoringError wraps a failure in the mandatory scoring path. It matches
// ErrCompatibilityScoring with errors.Is.
type ScoringError struct {
	Stage string
	Cause error
}

func (e *ScoringError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("compatibility scoring: %s: %v", e.Stage, e.Cause)
	}
	return fmt.Sprintf("compatibility scoring: %s", e.Stage)
}

func (e *ScoringError) Unwrap() error {
	return e.Cause
}

func (e *ScoringError) Is(target error) bool {
	return target == ErrCompatibilityScoring
}
