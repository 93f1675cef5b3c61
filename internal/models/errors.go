package models

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderUnavailable indicates the payment gateway is not configured
	// or could not be reached.
	ErrProviderUnavailable = errors.New("payment provider unavailable")

	// ErrBadSignature indicates a webhook request failed signature verification.
	ErrBadSignature = errors.New("webhook signature verification failed")
)

// NotFoundError indicates a referenced resource does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// NewNotFoundError creates a NotFoundError for the given resource name
func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}
