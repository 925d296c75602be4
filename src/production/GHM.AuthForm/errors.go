package authform

import (
	"errors"
	"fmt"
)

// User-facing messages. The pages and their tests compare on these literally.
const (
	MsgCredentialsRequired = "Username and password are required"
	MsgPasswordMismatch    = "Passwords do not match"
	MsgPasswordTooShort    = "Password must be at least 6 characters"
	MsgUnexpected          = "An unexpected error occurred. Please try again."
	MsgInProgress          = "A request is already in progress"
)

// MinPasswordLength applies to registration only
const MinPasswordLength = 6

// ErrSubmissionInProgress is returned when a form is submitted again before
// the previous call has finished.
var ErrSubmissionInProgress = errors.New(MsgInProgress)

// ValidationError is a local check that failed before any network call
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ServerError is a non-2xx answer from the auth API
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Request failed with status %d", e.StatusCode)
}

// TransportError means the auth API could not be reached at all
type TransportError struct {
	APIBase string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Cannot connect to server at %s. Please check if the server is running.", e.APIBase)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UserMessage maps any error from the form flow to the single string shown
// under the form.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var validationErr *ValidationError
	var serverErr *ServerError
	var transportErr *TransportError

	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.As(err, &serverErr):
		return serverErr.Error()
	case errors.As(err, &transportErr):
		return transportErr.Error()
	case errors.Is(err, ErrSubmissionInProgress):
		return MsgInProgress
	default:
		return MsgUnexpected
	}
}
