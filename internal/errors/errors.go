package errors

import "fmt"

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nfe, ok := err.(*NotFoundError); ok {
		return nfe, true
	}
	return nil, false
}

type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

func IsForbiddenError(err error) (*ForbiddenError, bool) {
	if fe, ok := err.(*ForbiddenError); ok {
		return fe, true
	}
	return nil, false
}

// ConflictError covers uniqueness violations surfaced by the store
// (duplicate ticket number, duplicate printer per destination).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func IsConflictError(err error) (*ConflictError, bool) {
	if ce, ok := err.(*ConflictError); ok {
		return ce, true
	}
	return nil, false
}

// ConfigurationError reports a destination with no active printer registered.
type ConfigurationError struct {
	Message     string
	Destination string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

func NewConfigurationError(destination, message string) *ConfigurationError {
	return &ConfigurationError{Message: message, Destination: destination}
}

func IsConfigurationError(err error) (*ConfigurationError, bool) {
	if ce, ok := err.(*ConfigurationError); ok {
		return ce, true
	}
	return nil, false
}

// PrintError is a transport or device level delivery failure for one
// destination. It never aborts the surrounding order operation.
type PrintError struct {
	Message     string
	Destination string
	Cause       error
}

func (e *PrintError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PrintError) Unwrap() error {
	return e.Cause
}

func NewPrintError(destination, message string, cause error) *PrintError {
	return &PrintError{Message: message, Destination: destination, Cause: cause}
}

func IsPrintError(err error) (*PrintError, bool) {
	if pe, ok := err.(*PrintError); ok {
		return pe, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
