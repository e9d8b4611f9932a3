package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a gateway failure.
type Kind int

// Failure kinds.
const (
	KindServer Kind = iota
	KindAuth
	KindNotFound
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	default:
		return "server"
	}
}

// Error is the failure value returned by every gateway call.
// Status is 0 when no HTTP response was received. Message is empty when the
// server gave no reason.
type Error struct {
	Status  int
	Message string
	Kind    Kind
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Status == 0 {
		return fmt.Sprintf("api: %s", msg)
	}
	if msg == "" {
		msg = "unexpected status"
	}
	return fmt.Sprintf("api: %d %s", e.Status, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// kindForStatus maps an HTTP status to a failure kind.
func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return KindAuth
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindServer
	}
}

func newStatusError(status int, message string) *Error {
	return &Error{Status: status, Message: message, Kind: kindForStatus(status)}
}

func newTransportError(message string, err error) *Error {
	return &Error{Message: message, Kind: KindServer, Err: err}
}

// KindOf returns the failure kind of err, or KindServer for foreign errors.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindServer
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// MessageOf returns the reason the server gave for err. When the server gave
// none, or no response arrived, it returns fallback, or err's text if fallback
// is empty.
func MessageOf(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Status != 0 && apiErr.Message != "" {
		return apiErr.Message
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}

// IsAuth reports whether err is an authorization failure (401/403).
func IsAuth(err error) bool {
	return err != nil && KindOf(err) == KindAuth
}

// IsNotFound reports whether err is a 404.
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}
