package domain

import (
	"errors"
	"strings"
)

// ErrorKind classifies an error for callers that map it to a transport status.
type ErrorKind string

const (
	ErrKindValidation ErrorKind = "validation"
	ErrKindNotFound   ErrorKind = "not_found"
	ErrKindConflict   ErrorKind = "conflict"
	ErrKindDomain     ErrorKind = "domain"
	ErrKindInternal   ErrorKind = "internal"
)

// FieldError describes one failing input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the typed error returned by the core. Two errors are equal under
// errors.Is when their codes match.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}

	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}

	return e.Message + ": " + strings.Join(parts, "; ")
}

// Is reports whether target carries the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithMessage returns a copy of e with a more specific message.
func (e *Error) WithMessage(msg string) *Error {
	c := *e
	c.Message = msg
	return &c
}

func newError(kind ErrorKind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

var (
	// Validation
	ErrValidation = newError(ErrKindValidation, "validation_failed", "validation failed")

	// Not found
	ErrUserNotFound            = newError(ErrKindNotFound, "user_not_found", "user not found")
	ErrSourceNotFound          = newError(ErrKindNotFound, "source_not_found", "source not found")
	ErrCategoryNotFound        = newError(ErrKindNotFound, "category_not_found", "category not found")
	ErrTransactionTypeNotFound = newError(ErrKindNotFound, "transaction_type_not_found", "transaction type not found")
	ErrTransactionNotFound     = newError(ErrKindNotFound, "transaction_not_found", "transaction not found")

	// Conflict
	ErrDuplicateName  = newError(ErrKindConflict, "duplicate_name", "name already in use")
	ErrDuplicateEmail = newError(ErrKindConflict, "duplicate_email", "email already registered")
	ErrInUse          = newError(ErrKindConflict, "in_use", "entity is referenced and cannot be deleted")

	// Domain
	ErrSelfTransfer      = newError(ErrKindDomain, "self_transfer", "source and target source must differ")
	ErrInsufficientFunds = newError(ErrKindDomain, "insufficient_funds", "insufficient funds")
	ErrDefaultReadOnly   = newError(ErrKindDomain, "default_read_only", "shared default entities are read-only")
	ErrInvalidTypeKind   = newError(ErrKindDomain, "invalid_type_kind", "invalid transaction type kind")

	// Internal
	ErrInternal = newError(ErrKindInternal, "internal_error", "internal error")
)

// NewValidationError builds a validation error carrying every failing field.
func NewValidationError(fields ...FieldError) *Error {
	return &Error{
		Kind:    ErrKindValidation,
		Code:    ErrValidation.Code,
		Message: ErrValidation.Message,
		Fields:  fields,
	}
}

// KindOf returns the kind of err, or ErrKindInternal for untyped errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ErrKindInternal
}

// AsError converts err into a *Error, wrapping unknown errors as internal.
func AsError(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return ErrInternal
}

// Fields accumulates validation failures.
type Fields []FieldError

// Add records a failing field.
func (f *Fields) Add(field, message string) {
	*f = append(*f, FieldError{Field: field, Message: message})
}

// Err returns a validation error, or nil when nothing failed.
func (f Fields) Err() error {
	if len(f) == 0 {
		return nil
	}
	return NewValidationError(f...)
}
