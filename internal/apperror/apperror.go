// Package apperror defines the error taxonomy shared by the store, services and handlers.
package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorType categorizes application errors.
type ErrorType int

const (
	UnknownError ErrorType = iota
	// NotFoundError covers missing records and failed ownership checks alike.
	NotFoundError
	// DuplicateError is a uniqueness violation, e.g. a second favorite for the same pair.
	DuplicateError
	// IntegrityError means a stored foreign key points at a record that no longer exists.
	IntegrityError
	ValidationError
	AuthError
	InternalError
)

// AppError is an error carrying its category and an optional cause.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status for the error type.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case NotFoundError:
		return fiber.StatusNotFound
	case DuplicateError:
		return fiber.StatusConflict
	case ValidationError:
		return fiber.StatusBadRequest
	case AuthError:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

func New(errType ErrorType, message string, cause error) *AppError {
	return &AppError{Type: errType, Message: message, Err: cause}
}

func NewNotFoundError(message string, cause error) *AppError {
	return New(NotFoundError, message, cause)
}

func NewDuplicateError(message string, cause error) *AppError {
	return New(DuplicateError, message, cause)
}

func NewIntegrityError(message string, cause error) *AppError {
	return New(IntegrityError, message, cause)
}

func NewValidationError(message string, cause error) *AppError {
	return New(ValidationError, message, cause)
}

func NewAuthError(message string, cause error) *AppError {
	return New(AuthError, message, cause)
}

func NewInternalError(message string, cause error) *AppError {
	return New(InternalError, message, cause)
}

// TypeOf returns the type of the first AppError in err's chain.
func TypeOf(err error) ErrorType {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Type
	}
	return UnknownError
}

// StatusCode maps any error to an HTTP status; errors outside the taxonomy are 500.
func StatusCode(err error) int {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.StatusCode()
	}
	return fiber.StatusInternalServerError
}

// Message returns the user-facing message of err.
func Message(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "internal server error"
}

func IsNotFound(err error) bool  { return TypeOf(err) == NotFoundError }
func IsDuplicate(err error) bool { return TypeOf(err) == DuplicateError }
func IsIntegrity(err error) bool { return TypeOf(err) == IntegrityError }
