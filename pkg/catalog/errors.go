package catalog

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrorKind discriminates the failures reported by the client.
type ErrorKind int

const (
	// KindAPI means the remote API rejected the request, or the exchange
	// itself failed (network error, timeout, unreadable body).
	KindAPI ErrorKind = iota + 1

	// KindValidation means the remote API rejected the input with
	// field-level messages. A validation error is also an API error.
	KindValidation

	// KindMalformedResponse means a successful response did not match the
	// shape of the expected value object.
	KindMalformedResponse
)

// String returns a human-readable name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindAPI:
		return "api"
	case KindValidation:
		return "validation"
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// Sentinel errors for use with errors.Is().
var (
	// ErrAPI matches every KindAPI and KindValidation error.
	ErrAPI = errors.New("catalog api error")

	// ErrValidation matches KindValidation errors.
	ErrValidation = errors.New("catalog validation error")

	// ErrMalformedResponse matches KindMalformedResponse errors.
	ErrMalformedResponse = errors.New("malformed catalog response")
)

const (
	// StatusValidation is the HTTP status the API uses for rejected input.
	StatusValidation = http.StatusUnprocessableEntity

	// DefaultValidationMessage is used when a validation response carries no message.
	DefaultValidationMessage = "Validation failed"
)

// Error is the single error type returned by Client operations.
// Callers branch on Kind (or use errors.Is with the sentinels above).
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Message is the human-readable description, taken from the response
	// body when the API provides one.
	Message string

	// StatusCode is the HTTP status of the failed response.
	// Zero when no response was received.
	StatusCode int

	// Fields maps field names to their messages (KindValidation only).
	Fields map[string][]string

	// Path locates the offending field (KindMalformedResponse only),
	// e.g. "product.images[0].name".
	Path string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString("catalog: ")

	switch e.Kind {
	case KindMalformedResponse:
		b.WriteString("malformed response")
		if e.Path != "" {
			b.WriteString(" at ")
			b.WriteString(e.Path)
		}
		b.WriteString(": ")
		b.WriteString(e.Message)
	case KindValidation:
		b.WriteString(e.Message)
		if len(e.Fields) > 0 {
			b.WriteString(" [")
			b.WriteString(formatFields(e.Fields))
			b.WriteString("]")
		}
	default:
		b.WriteString(e.Message)
	}

	if e.StatusCode > 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}

	return b.String()
}

// Unwrap exposes the kind sentinels and the underlying cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 3)

	switch e.Kind {
	case KindAPI:
		errs = append(errs, ErrAPI)
	case KindValidation:
		errs = append(errs, ErrValidation, ErrAPI)
	case KindMalformedResponse:
		errs = append(errs, ErrMalformedResponse)
	}

	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

// IsAPI reports whether err is an API error, including validation errors.
func IsAPI(err error) bool {
	return errors.Is(err, ErrAPI)
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsMalformedResponse reports whether err is a malformed-response error.
func IsMalformedResponse(err error) bool {
	return errors.Is(err, ErrMalformedResponse)
}

// AsError extracts the *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var catalogErr *Error
	if errors.As(err, &catalogErr) {
		return catalogErr, true
	}

	return nil, false
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	if catalogErr, ok := AsError(err); ok {
		return catalogErr.StatusCode
	}

	return 0
}

// FieldErrors returns the field-level messages of a validation error, or nil.
func FieldErrors(err error) map[string][]string {
	if catalogErr, ok := AsError(err); ok && catalogErr.Kind == KindValidation {
		return catalogErr.Fields
	}

	return nil
}

func newMalformedError(path, message string) *Error {
	return &Error{
		Kind:    KindMalformedResponse,
		Message: message,
		Path:    path,
	}
}

func formatFields(fields map[string][]string) string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+strings.Join(fields[key], ", "))
	}

	return strings.Join(parts, "; ")
}
