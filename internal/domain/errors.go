// Package domain contains the sandbox catalog's entities and errors.
// Domain errors describe catalog failures, not HTTP ones; the HTTP adapter
// maps them to the catalog API's status codes.
package domain

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Sentinels matched with errors.Is. Every typed error below unwraps to one.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrValidation  = errors.New("validation failed")
	ErrUnavailable = errors.New("unavailable")
)

// DefaultValidationMessage summarizes a failed validation.
const DefaultValidationMessage = "The given data was invalid."

// NotFoundError names the missing entity and how it was looked up.
type NotFoundError struct {
	Entity string
	ID     string

	// Key names what ID holds, "id" when empty.
	Key string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}

	return fmt.Sprintf("%s with %s %q not found", e.Entity, cmp.Or(e.Key, "id"), e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError reports that no entity has the given id.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// NewNotFoundByError reports that no entity has key equal to value, as in a
// product lookup by slug.
func NewNotFoundByError(entity, key, value string) error {
	return &NotFoundError{Entity: entity, ID: value, Key: key}
}

// ConflictError is a write refused because of existing state: a taken
// slug or SKU, or a product type still referenced by products.
type ConflictError struct {
	Entity  string
	Reason  string
	Details string
}

func (e *ConflictError) Error() string {
	msg := e.Entity + " conflict: " + e.Reason
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}

	return msg
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// NewConflictErrorWithDetails builds a ConflictError.
func NewConflictErrorWithDetails(entity, reason, details string) error {
	return &ConflictError{Entity: entity, Reason: reason, Details: details}
}

// ValidationError carries per-field messages keyed by the wire field name,
// the shape of a 422 response body.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed: " + e.Message
	}

	var b strings.Builder
	for i, field := range slices.Sorted(maps.Keys(e.Fields)) {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(field + ": " + strings.Join(e.Fields[field], ", "))
	}

	return fmt.Sprintf("validation failed: %s (%s)", e.Message, b.String())
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError rejects a single field.
func NewValidationError(field, message string) error {
	return NewFieldsValidationError(map[string][]string{field: {message}})
}

// NewFieldsValidationError rejects several fields at once.
func NewFieldsValidationError(fields map[string][]string) error {
	return &ValidationError{Message: DefaultValidationMessage, Fields: fields}
}

// UnavailableError reports a component that cannot serve requests, such as
// a closed store.
type UnavailableError struct {
	Service string
	Reason  string
}

func (e *UnavailableError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("service %q unavailable", e.Service)
	}

	return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
}

func (e *UnavailableError) Unwrap() error { return ErrUnavailable }

// NewUnavailableError builds an UnavailableError.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

func IsNotFound(err error) bool    { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool    { return errors.Is(err, ErrConflict) }
func IsValidation(err error) bool  { return errors.Is(err, ErrValidation) }
func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }
