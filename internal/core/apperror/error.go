// Package apperror provides structured error handling for the billing core.
// All business errors must use AppError for consistent API responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Infrastructure errors (5xx)
	CodeInternal = "INTERNAL_ERROR"
	CodeDatabase = "DATABASE_ERROR"

	// Validation errors (400): caller mistakes, nothing was written
	CodeValidation           = "VALIDATION_ERROR"
	CodeInvalidQuantity      = "INVALID_QUANTITY"
	CodeIndexOutOfRange      = "INDEX_OUT_OF_RANGE"
	CodeEmptyCart            = "EMPTY_CART"
	CodeInvalidPaymentMethod = "INVALID_PAYMENT_METHOD"

	// Commit failures (500): storage fault, transaction rolled back
	CodeCommitFailed = "COMMIT_FAILED"

	// Not found (404)
	CodeNotFound     = "NOT_FOUND"
	CodeItemNotFound = "ITEM_NOT_FOUND"

	// Conflict (409)
	CodeConflict  = "CONFLICT"
	CodeDuplicate = "DUPLICATE_ENTRY"
)

// AppError is the standard error type for the application.
// It implements the error interface and provides structured details for API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field errors, indexes, etc.)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions for common errors ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewItemNotFound creates an error for an unknown item code (404)
func NewItemNotFound(code string) *AppError {
	return &AppError{
		Code:       CodeItemNotFound,
		Message:    "item not found",
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"itemCode": code},
	}
}

// NewInvalidQuantity creates an error for a non-positive quantity (400)
func NewInvalidQuantity(quantity int64) *AppError {
	return &AppError{
		Code:       CodeInvalidQuantity,
		Message:    "quantity must be positive",
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"quantity": quantity},
	}
}

// NewIndexOutOfRange creates an error for an invalid cart line index (400)
func NewIndexOutOfRange(index, size int) *AppError {
	return &AppError{
		Code:       CodeIndexOutOfRange,
		Message:    "line index out of range",
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"index": index, "lines": size},
	}
}

// NewEmptyCart creates an error for committing an empty cart (422)
func NewEmptyCart() *AppError {
	return &AppError{
		Code:       CodeEmptyCart,
		Message:    "cart is empty",
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewInvalidPaymentMethod creates an error for an unknown payment method (400)
func NewInvalidPaymentMethod(method string) *AppError {
	return &AppError{
		Code:       CodeInvalidPaymentMethod,
		Message:    "invalid payment method",
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"paymentMethod": method},
	}
}

// NewCommitFailed wraps a storage fault surfaced by the bill commit (500).
// The transaction is guaranteed to have been rolled back before this is returned.
func NewCommitFailed(err error) *AppError {
	return &AppError{
		Code:       CodeCommitFailed,
		Message:    "bill commit failed",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewConflict creates a conflict error (409)
func NewConflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewDuplicate creates a duplicate entry error (409)
func NewDuplicate(entity, field, value string) *AppError {
	return &AppError{
		Code:       CodeDuplicate,
		Message:    fmt.Sprintf("%s with this %s already exists", entity, field),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"entity": entity, "field": field, "value": value},
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsNotFound checks if error is CodeNotFound or CodeItemNotFound
func IsNotFound(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeNotFound || appErr.Code == CodeItemNotFound
	}
	return false
}

// IsCallerError reports whether the error is a caller mistake rather than a
// storage fault. Caller errors are rejected before any persisted state is
// touched, so they are always safe to retry after correction.
func IsCallerError(err error) bool {
	appErr, ok := AsAppError(err)
	if !ok {
		return false
	}
	switch appErr.Code {
	case CodeValidation, CodeInvalidQuantity, CodeIndexOutOfRange,
		CodeEmptyCart, CodeInvalidPaymentMethod:
		return true
	}
	return false
}
