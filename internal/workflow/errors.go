package workflow

import "errors"

// ValidationFailed reports client-side input validation that failed before
// any request was sent.
type ValidationFailed struct {
	Reason string
}

func (e *ValidationFailed) Error() string {
	return e.Reason
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var vErr *ValidationFailed
	return errors.As(err, &vErr)
}
