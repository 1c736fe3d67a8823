package skill

import (
	"errors"
	"fmt"
)

var (
	ErrSkillExtraction    = errors.New("skill extraction failed")
	ErrEmptyCatalog       = errors.New("skill catalog is empty")
	ErrUnknownAliasTarget = errors.New("alias target is not in the taxonomy")
)

// ExtractionError reports invalid extraction input or an unusable matcher.
// It matches ErrSkillExtraction with errors.Is.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("skill extraction: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("skill extraction: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

func (e *ExtractionError) Is(target error) bool {
	return target == ErrSkillExtraction
}
