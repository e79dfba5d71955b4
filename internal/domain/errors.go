package domain

import (
	"errors"
	"fmt"
)

// TransportError wraps a network-level failure (connection refused, timeout,
// DNS). There was no HTTP response; the call is never retried automatically.
type TransportError struct {
	Op  string // "GET /events"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error on %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AuthError covers missing/invalid credentials and unauthorized responses.
// Message is safe to show to the user.
type AuthError struct {
	Message string
	Status  int // HTTP status when one was received, 0 otherwise
}

func (e *AuthError) Error() string {
	return e.Message
}

// FormatError means a response matched none of the known envelope shapes for
// its resource.
type FormatError struct {
	Resource string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unrecognized response format for %s", e.Resource)
}

// APIError is a non-auth server rejection (4xx/5xx other than 401). Message
// is extracted from the server error payload when present so it can be shown
// to the user as-is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// ValidationError reports a client-side input check failure; no request was
// sent.
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

// IsAuthError reports whether err is (or wraps) an AuthError
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsTransportError reports whether err is (or wraps) a TransportError
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsFormatError reports whether err is (or wraps) a FormatError
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
