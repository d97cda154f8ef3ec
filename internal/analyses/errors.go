package analyses

import "errors"

var (
	ErrNotFound  = errors.New("analysis not found")
	ErrNotParsed = errors.New("resume or job description not parsed yet")
)

const (
	ErrorCodeValidation = "VALIDATION_ERROR"
	ErrorCodeStorage    = "STORAGE_ERROR"
	ErrorCodeInternal   = "INTERNAL_ERROR"
)
