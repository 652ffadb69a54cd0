package scoring

import (
	"errors"
	"fmt"
)

var (
	ErrMissingName      = errors.New("decision name is required")
	ErrInvalidWeight    = errors.New("criterion weight must be greater than 0")
	ErrInvalidRange     = errors.New("criterion range min must be less than max")
	ErrIncompleteOption = errors.New("criteria and options must have names")
	ErrNotScored        = errors.New("decision has not been scored")
)

// ValidationError reports which precondition failed. Kind is one of the Err*
// sentinels above, so callers match with errors.Is.
type ValidationError struct {
	Kind   error
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	msg := e.Kind.Error()
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return e.Kind }

// Code is a stable snake_case identifier for API responses.
func (e *ValidationError) Code() string {
	switch e.Kind {
	case ErrMissingName:
		return "missing_name"
	case ErrInvalidWeight:
		return "invalid_weight"
	case ErrInvalidRange:
		return "invalid_range"
	case ErrIncompleteOption:
		return "incomplete_option"
	case ErrNotScored:
		return "not_scored"
	default:
		return "invalid"
	}
}

// NewValidationError builds a ValidationError with a formatted detail.
func NewValidationError(kind error, field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Detail: fmt.Sprintf(format, args...)}
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
