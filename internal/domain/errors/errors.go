package errors

import (
	"net/http"

	"storefront/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches any BaseError carrying the same business code, so copies made by
// WithDetails or WithMessage still satisfy errors.Is against the predefined values.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// WithMessage replaces the user-facing message, keeping the business code.
// Used to surface the backend's own wording.
func (e *BaseError) WithMessage(message string) *BaseError {
	if message == "" {
		return e
	}

	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   message,
		details:   e.details,
	}
}

// Predefined error types
var (
	// Cart errors
	ErrOutOfStock = NewBaseError(
		http.StatusConflict,
		"OUT_OF_STOCK",
		"Sorry, this product is out of stock.",
		"",
	)

	ErrEmptyCart = NewBaseError(
		http.StatusBadRequest,
		"EMPTY_CART",
		"Your cart is empty.",
		"",
	)

	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"Product not found.",
		"",
	)

	ErrStorageUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"STORAGE_UNAVAILABLE",
		"Local storage is unavailable.",
		"",
	)

	// Session errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Login failed. Please check your credentials.",
		"",
	)

	ErrInvalidResponse = NewBaseError(
		http.StatusBadGateway,
		"INVALID_RESPONSE",
		"Invalid response from server.",
		"",
	)

	ErrAuthInvalidated = NewBaseError(
		http.StatusUnauthorized,
		"AUTH_INVALIDATED",
		"Authentication error. Please log in again.",
		"",
	)

	ErrNotAuthenticated = NewBaseError(
		http.StatusUnauthorized,
		"NOT_AUTHENTICATED",
		"Please log in to continue.",
		"",
	)

	// Checkout errors
	ErrInsufficientStock = NewBaseError(
		http.StatusConflict,
		"INSUFFICIENT_STOCK",
		"Some items in your cart are out of stock. Please review your cart and try again.",
		"",
	)

	ErrCustomerNotFound = NewBaseError(
		http.StatusNotFound,
		"CUSTOMER_NOT_FOUND",
		"Your customer profile is not found. Please reload the page and try again.",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed.",
		"",
	)

	// Backend errors
	ErrRequestFailed = NewBaseError(
		http.StatusBadGateway,
		"REQUEST_FAILED",
		"The request failed. Please try again.",
		"",
	)

	ErrBackendUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"BACKEND_UNAVAILABLE",
		"The store is temporarily unavailable. Please try again later.",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal error.",
		"",
	)
)

// RemoteError is a non-2xx answer from the storefront backend.
// Message carries the backend's own `message` field when one was sent.
type RemoteError struct {
	StatusCode int
	Message    string
	Path       string
}

// NewRemoteError creates a backend rejection error
func NewRemoteError(statusCode int, message, path string) *RemoteError {
	return &RemoteError{
		StatusCode: statusCode,
		Message:    message,
		Path:       path,
	}
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	text := http.StatusText(e.StatusCode)
	if e.Message != "" {
		text = e.Message
	}

	return "backend " + e.Path + " responded " + http.StatusText(e.StatusCode) + ": " + text
}

// IsAuthRejection reports whether the backend refused the credential (401/403).
func (e *RemoteError) IsAuthRejection() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
