package booking

import (
	"errors"
	"fmt"
)

// Sentinel errors of the engine. All four are recoverable by the caller;
// none is retried internally.
var (
	ErrConflict = errors.New("slot is not available")
	ErrNotFound = errors.New("not found")
)

// ValidationError reports malformed or missing input on a lifecycle
// operation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// ConfigurationError reports a court configuration change rejected because
// of engine state, such as a pricing edit while reservations are active.
type ConfigurationError struct {
	CourtID string
	Reason  string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("court %s: %s", e.CourtID, e.Reason)
}
