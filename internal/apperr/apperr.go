// Package apperr defines the error taxonomy shared across layers. Each
// sentinel maps to exactly one HTTP status at the API boundary.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates an owner-scoped lookup miss
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a unique-identity conflict
	ErrDuplicate = errors.New("duplicate")
	// ErrUnauthorized indicates bad credentials or a missing/invalid token
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation indicates a malformed or constraint-violating input
	ErrValidation = errors.New("validation failed")
	// ErrGateway indicates a third-party data source failure
	ErrGateway = errors.New("gateway error")
)

// Validationf builds a validation error with a caller-facing message
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound reports whether err is an owner-scoped lookup miss
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicate reports whether err is a unique-identity conflict
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// IsUnauthorized reports whether err is an authentication failure
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsGateway reports whether err is a third-party data source failure
func IsGateway(err error) bool {
	return errors.Is(err, ErrGateway)
}
