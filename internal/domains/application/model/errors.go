package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeValidationFailed = "APP001"
	ErrCodeDuplicateEmail   = "APP002"
	ErrCodeNotFound         = "APP003"
	ErrCodeInvalidID        = "APP004"
	ErrCodeStoreUnavailable = "APP005"
	ErrCodeUnknownDocument  = "APP006"
)

// Errors
var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrDuplicateEmail      = errors.New("email is already registered")
	ErrStoreUnavailable    = errors.New("application store unavailable")
	ErrInvalidID           = errors.New("invalid application id")
	ErrUnknownDocument     = errors.New("unknown document field")
	ErrDocumentMissing     = errors.New("document not present")
)

// Messages shown to the user
const (
	MsgDuplicateEmail   = "Email is already registered"
	MsgStoreUnavailable = "Please try again later"
)

// ApplicationError carries a stable code next to the user facing message.
type ApplicationError struct {
	Code    string
	Message string
	Err     error
}

func (e *ApplicationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ApplicationError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewNotFoundError() *ApplicationError {
	return &ApplicationError{
		Code:    ErrCodeNotFound,
		Message: "Application not found",
		Err:     ErrApplicationNotFound,
	}
}

func NewDuplicateEmailError() *ApplicationError {
	return &ApplicationError{
		Code:    ErrCodeDuplicateEmail,
		Message: MsgDuplicateEmail,
		Err:     ErrDuplicateEmail,
	}
}

func NewStoreUnavailableError(cause error) *ApplicationError {
	return &ApplicationError{
		Code:    ErrCodeStoreUnavailable,
		Message: MsgStoreUnavailable,
		Err:     fmt.Errorf("%w: %v", ErrStoreUnavailable, cause),
	}
}

// ValidationError wraps the per-field messages of a rejected submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// NewValidationError flattens ozzo validation errors into field messages.
func NewValidationError(errs map[string]error) *ValidationError {
	fields := make(map[string]string, len(errs))
	for field, err := range errs {
		if err != nil {
			fields[field] = err.Error()
		}
	}
	return &ValidationError{Fields: fields}
}
