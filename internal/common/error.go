package common

import (
	"fmt"
	"net/http"
)

// StatusError reports an unexpected HTTP status from the remote service.
// It matches ErrInvalidResponse, and a 404 additionally matches ErrNotFound.
type StatusError struct {
	Op         string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: unexpected status %d (%s) from %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode), e.URL)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrInvalidResponse:
		return true
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// maxBodyInError keeps large HTML error pages out of error strings.
const maxBodyInError = 256

// NewStatusError builds a StatusError, truncating the response body.
func NewStatusError(op, url string, status int, body []byte) *StatusError {
	b := string(body)
	if len(b) > maxBodyInError {
		b = b[:maxBodyInError] + "..."
	}
	return &StatusError{Op: op, URL: url, StatusCode: status, Body: b}
}

// FileError wraps a local filesystem failure.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// TransportError wraps a connection-level failure (DNS, TLS, timeout).
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response body that lacks a required field or is
// not valid JSON. It matches ErrInvalidResponse.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrInvalidResponse }
