package domain

import (
	"errors"
	"fmt"
)

var (
	ErrFetch           = errors.New("fetch failed")
	ErrParse           = errors.New("malformed session record")
	ErrProductNotFound = errors.New("product not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrForbidden       = errors.New("access forbidden")
)

// FetchError reports a failed call against the remote resource API: either a non-2xx
// status or a transport/decoding failure.
type FetchError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// ParseError reports a persisted session value that could not be decoded.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return ErrParse.Error()
	}
	return fmt.Sprintf("%s: %v", ErrParse, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ValidationCode classifies a per-field form error.
type ValidationCode string

const (
	CodeRequiredField ValidationCode = "RequiredField"
	CodeInvalidNumber ValidationCode = "InvalidNumber"
)

// ValidationError is a single per-field form error.
type ValidationError struct {
	Field   string
	Code    ValidationCode
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
