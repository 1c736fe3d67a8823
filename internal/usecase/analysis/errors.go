package analysis

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("analysis not found")
	ErrUnavailable  = errors.New("analysis storage unavailable")
	ErrJobFetch     = errors.New("job posting could not be fetched")
	ErrInternal     = errors.New("internal error")
)
