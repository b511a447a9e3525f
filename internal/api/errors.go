package api

import (
	"context"
	"errors"
	"fmt"
)

// APIError is a business-rule rejection from the backend (4xx). Its message is
// what the user sees in the toast; local form state stays intact so they can
// correct and resubmit.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend rejected the request (status %d)", e.Status)
}

// ErrTokenExpired is returned before any network call when the configured
// bearer token is already past its expiry.
var ErrTokenExpired = errors.New("backend token has expired")

// IsCanceled reports whether err is a superseded or abandoned request rather
// than a real failure. Canceled calls must never surface a user-facing error.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// AsAPIError unwraps a backend rejection, if that is what err is.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
