package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain outcomes. Handlers map these to HTTP codes
// with errors.Is, so a slot conflict stays distinguishable from a generic
// failure all the way to the client.
var (
	ErrSlotTaken         = errors.New("slot already booked")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrExpertNotFound    = errors.New("expert not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrEmailTaken        = errors.New("email already registered")
	ErrInvalidID         = errors.New("invalid identifier")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// ValidationError carries per-field messages from request validation.
// It is returned before any write is attempted.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
