package application

import (
	"errors"
	"sort"
)

var (
	// ErrUnauthorized is returned when a session token is missing, unknown or expired.
	ErrUnauthorized = errors.New("application: unauthorized")
	// ErrNotFound is returned when a lookup by id has no match.
	ErrNotFound = errors.New("application: not found")
	// ErrInvalidCredentials is returned when the login form is incomplete.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// Fields returns the names of the invalid fields in sorted order.
func (v *ValidationError) Fields() []string {
	if v == nil {
		return nil
	}
	fields := make([]string, 0, len(v.FieldErrors))
	for field := range v.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// add records a field level validation error. The first message per field wins.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	if _, exists := v.FieldErrors[field]; exists {
		return
	}
	v.FieldErrors[field] = message
}

// merge copies entries from another validation error into the receiver.
func (v *ValidationError) merge(other *ValidationError) {
	if other == nil || len(other.FieldErrors) == 0 {
		return
	}
	for field, msg := range other.FieldErrors {
		v.add(field, msg)
	}
}

// orNil returns nil when no field errors were recorded so callers can
// return the result directly as an error.
func (v *ValidationError) orNil() error {
	if !v.HasErrors() {
		return nil
	}
	return v
}
