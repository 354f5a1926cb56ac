package api

import (
	"errors"
	"fmt"
)

// ErrSessionExpired signals that the service rejected the access token with
// its device/token-not-found error. The session must be re-authenticated;
// the failure is never reported as a generic APIError so callers can trigger
// a login or refresh flow automatically.
var ErrSessionExpired = errors.New("session expired, re-authentication required")

// TransportError reports a non-2xx HTTP response or a connection failure.
// It is always distinct from a service-reported APIError.
type TransportError struct {
	Status int
	Reason string
	Body   []byte
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("transport: %d %s: %s", e.Status, e.Reason, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AuthError reports a rejected login or refresh. It is terminal for the
// session; fresh credentials are required.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("auth rejected: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("auth rejected: %s", e.Message)
}

// APIError is any other failure reported inside a response envelope.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %s: %s", e.Code, e.Message)
}
