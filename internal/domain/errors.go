// Package domain defines core types, interfaces, and errors for the
// authorization and identity resolution layer.
package domain

import "fmt"

// UnauthenticatedError indicates a missing, invalid, or expired credential.
type UnauthenticatedError struct {
	Message string
}

func (e *UnauthenticatedError) Error() string { return e.Message }

// ProfileNotFoundError indicates a verified principal with no authorization
// profile row. Distinct from UnauthenticatedError: the identity is real.
type ProfileNotFoundError struct {
	Message string
}

func (e *ProfileNotFoundError) Error() string { return e.Message }

// ProfileAmbiguousError indicates more than one profile row for one user id.
// This is a data-integrity fault and is surfaced, never silently resolved.
type ProfileAmbiguousError struct {
	Message string
}

func (e *ProfileAmbiguousError) Error() string { return e.Message }

// InsufficientRoleError indicates an authenticated principal whose role does
// not meet the endpoint's minimum requirement.
type InsufficientRoleError struct {
	Message string
}

func (e *InsufficientRoleError) Error() string { return e.Message }

// UpstreamUnavailableError indicates a transient failure talking to the
// identity provider or the profile store. Candidate for caller-level retry;
// never retried inside this layer.
type UpstreamUnavailableError struct {
	Message string
}

func (e *UpstreamUnavailableError) Error() string { return e.Message }

// AccessDeniedError indicates a forbidden operation.
type AccessDeniedError struct {
	Message string
}

func (e *AccessDeniedError) Error() string { return e.Message }

// ValidationError indicates invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ErrUnauthenticated creates an UnauthenticatedError with a formatted message.
func ErrUnauthenticated(format string, args ...interface{}) *UnauthenticatedError {
	return &UnauthenticatedError{Message: fmt.Sprintf(format, args...)}
}

// ErrProfileNotFound creates a ProfileNotFoundError with a formatted message.
func ErrProfileNotFound(format string, args ...interface{}) *ProfileNotFoundError {
	return &ProfileNotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrProfileAmbiguous creates a ProfileAmbiguousError with a formatted message.
func ErrProfileAmbiguous(format string, args ...interface{}) *ProfileAmbiguousError {
	return &ProfileAmbiguousError{Message: fmt.Sprintf(format, args...)}
}

// ErrInsufficientRole creates an InsufficientRoleError with a formatted message.
func ErrInsufficientRole(format string, args ...interface{}) *InsufficientRoleError {
	return &InsufficientRoleError{Message: fmt.Sprintf(format, args...)}
}

// ErrUpstreamUnavailable creates an UpstreamUnavailableError with a formatted message.
func ErrUpstreamUnavailable(format string, args ...interface{}) *UpstreamUnavailableError {
	return &UpstreamUnavailableError{Message: fmt.Sprintf(format, args...)}
}

// ErrAccessDenied creates an AccessDeniedError with a formatted message.
func ErrAccessDenied(format string, args ...interface{}) *AccessDeniedError {
	return &AccessDeniedError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
