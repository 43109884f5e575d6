package booking

import "errors"

// ErrSeatConflict is returned by the lock service when any seat in a
// hold batch is already held or booked by another user.  The batch is
// all-or-nothing, so no partial lease exists when this is returned.
// Handlers should translate it into an HTTP 409 response.
var ErrSeatConflict = errors.New("seat already held by another user")

// ValidationError marks a recoverable user mistake: an unselectable
// seat, a combo that does not apply to the current movie, an empty hold
// request, a closed booking window.  Validation failures never mutate
// session state and map to HTTP 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func validationf(reason string) error { return &ValidationError{Reason: reason} }
