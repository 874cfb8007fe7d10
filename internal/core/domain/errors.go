package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAuthenticationFailed = errors.New("authentication failed: no token received")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrTransport            = errors.New("remote service unreachable")
	ErrUnexpectedStatus     = errors.New("unexpected response status")
	ErrSubmissionFailed     = errors.New("submission failed")
	ErrUnsupportedFormat    = errors.New("unsupported export format")
)

// RemoteError describes a non-2xx answer from the remote API that has no
// more specific meaning. It matches ErrUnexpectedStatus with errors.Is.
type RemoteError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *RemoteError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}
