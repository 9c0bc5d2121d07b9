package screening

import "errors"

var (
	ErrConsentRequired   = errors.New("deposit structure must be agreed before submitting")
	ErrValidation        = errors.New("validation error")
	ErrPropertyNotFound  = errors.New("property not found")
	ErrRequestNotFound   = errors.New("request not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrDuplicateRequest  = errors.New("pending request already exists for this property")
	ErrForbidden         = errors.New("forbidden")
)

// FieldErrors carries per-field violations from profile validation. It
// unwraps to ErrValidation so callers can match either way.
type FieldErrors struct {
	Fields map[string]string
}

func (e *FieldErrors) Error() string { return ErrValidation.Error() }
func (e *FieldErrors) Unwrap() error { return ErrValidation }
