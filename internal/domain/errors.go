package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSerializationFailure = errors.New("serialization failure")
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
)

// ValidationError reports the first input rule a request fails, with the
// field name in a form suitable for showing to the customer.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PaymentError carries the payment processor's message verbatim. The booking
// stays in pending_payment when one of these is returned.
type PaymentError struct {
	Message string
}

func (e *PaymentError) Error() string {
	return e.Message
}
