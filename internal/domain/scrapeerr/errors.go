// Package scrapeerr defines the error taxonomy shared by the session
// controller and host login hooks. Errors are classified so callers can
// distinguish bad input, rejected credentials, and unexpected page
// structure without parsing messages.
package scrapeerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAttemptInProgress is returned when a second authentication
	// attempt is started on a controller that is still running one.
	ErrAttemptInProgress = errors.New("authentication attempt already in progress")
	// ErrBrowserUnavailable wraps failures to launch or connect to the
	// browser engine. Acquisition is never retried at this layer.
	ErrBrowserUnavailable = errors.New("browser engine unavailable")
)

// ValidationError reports a required input that was blank or malformed.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter: %s must not be blank", e.Field)
}

// FailIfBlank returns a ValidationError carrying name when value is empty
// or whitespace-only. Otherwise it is a no-op.
func FailIfBlank(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: name}
	}
	return nil
}

// AuthenticationError reports that the host rejected the login, keeping
// the HTTP-status-equivalent code for diagnostics. Status 0 means the
// rejection carried no status.
type AuthenticationError struct {
	Message string
	Status  int
}

func (e *AuthenticationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("authentication failed: %s (status %d)", e.Message, e.Status)
	}
	return "authentication failed: " + e.Message
}

// FailUnlessAuthenticated returns an AuthenticationError when ok is false,
// preserving status and message in the failure.
func FailUnlessAuthenticated(ok bool, status int, message string) error {
	if ok {
		return nil
	}
	return &AuthenticationError{Message: message, Status: status}
}

// CheckResponseStatus treats any status outside 2xx as a rejected login.
func CheckResponseStatus(status int, message string) error {
	if status >= 200 && status < 300 {
		return nil
	}
	return &AuthenticationError{Message: message, Status: status}
}

// ScrapingError reports that the page structure deviated from what a host
// hook expected: a missing element, form field, or marker.
type ScrapingError struct {
	Message string
	Cause   error
}

func (e *ScrapingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scraping failed: %s: %v", e.Message, e.Cause)
	}
	return "scraping failed: " + e.Message
}

func (e *ScrapingError) Unwrap() error { return e.Cause }

// NewScrapingError builds a ScrapingError chaining cause. Cause may be nil.
func NewScrapingError(message string, cause error) error {
	return &ScrapingError{Message: message, Cause: cause}
}
