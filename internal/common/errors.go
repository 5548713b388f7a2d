// Package common defines the sentinel errors and small helpers shared by the
// savelinks layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level error kinds. Every error a service returns unwraps to
	// exactly one of them.
	ErrorValidation = errors.New("validation error")
	ErrorSecurity   = errors.New("security error")
	ErrorDomain     = errors.New("operation failed")
)

// Error is a service error safe to show to the user. The message never
// carries storage or crypto details; those are logged where they happen.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

// Unwrap returns the error kind (ErrorValidation, ErrorSecurity or ErrorDomain).
func (e *Error) Unwrap() error {
	return e.kind
}

func NewValidationError(msg string) error {
	return &Error{kind: ErrorValidation, msg: msg}
}

func NewSecurityError(msg string) error {
	return &Error{kind: ErrorSecurity, msg: msg}
}

func NewDomainError(msg string) error {
	return &Error{kind: ErrorDomain, msg: msg}
}
