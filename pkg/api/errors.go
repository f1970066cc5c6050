package api

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped from daemon responses.
var (
	// ErrInvalidLogin is returned when the daemon rejects the credentials.
	ErrInvalidLogin = errors.New("invalid login")

	// ErrLeaseInUse is returned when another controller holds the lease.
	ErrLeaseInUse = errors.New("lease already held by another client")
)

// StatusError is a non-2xx response from the daemon.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("robot API returned status %d", e.Code)
	}
	return fmt.Sprintf("robot API returned status %d: %s", e.Code, e.Body)
}

// statusCode extracts the HTTP status from err, or 0.
func statusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
