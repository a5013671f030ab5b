package command

import (
	"errors"
	"fmt"
)

// ErrUnknownKind marks a command kind the dispatcher does not understand.
// The dispatcher logs and ignores these rather than failing.
var ErrUnknownKind = errors.New("unknown command kind")

// ValidationError represents a single payload field that failed validation.
type ValidationError struct {
	Key    string // Field name
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %T)", e.Key, e.Reason, e.Value)
}

// IsValidation reports whether err is a payload validation failure, as
// opposed to an unknown kind or an infrastructure error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
