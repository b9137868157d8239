package errors

import (
	"net/http"

	"novacommerce/internal/errors"
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
	return e.message
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

// Predefined error types
var (
	// Registration / login errors. ErrInvalidCredentials carries one generic
	// message for both the unknown-email and wrong-password cases so that the
	// two are indistinguishable to the caller.
	ErrEmailAlreadyInUse = NewBaseError(
		http.StatusConflict,
		"EMAIL_ALREADY_IN_USE",
		"email already in use",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"invalid credentials",
		"",
	)

	ErrUserCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_CREATION_FAILED",
		"failed to create user",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"failed to process password",
		"",
	)

	ErrTokenIssueFailed = NewBaseError(
		http.StatusInternalServerError,
		"TOKEN_ISSUE_FAILED",
		"failed to issue access token",
		"",
	)

	// Authorization errors
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"authentication required",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"access denied",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	// Rate limiting
	ErrTooManyRequests = NewBaseError(
		http.StatusTooManyRequests,
		"TOO_MANY_REQUESTS",
		"too many requests, slow down",
		"",
	)

	// Catalog errors
	ErrCategoryNotFound = NewBaseError(
		http.StatusNotFound,
		"CATEGORY_NOT_FOUND",
		"category not found",
		"",
	)

	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"product not found",
		"",
	)

	ErrProductSlugTaken = NewBaseError(
		http.StatusConflict,
		"PRODUCT_SLUG_TAKEN",
		"a product with this slug already exists",
		"",
	)

	ErrProductInactive = NewBaseError(
		http.StatusConflict,
		"PRODUCT_INACTIVE",
		"product is not available for sale",
		"",
	)

	ErrInsufficientStock = NewBaseError(
		http.StatusConflict,
		"INSUFFICIENT_STOCK",
		"not enough stock for the requested quantity",
		"",
	)

	// Cart errors
	ErrCartItemNotFound = NewBaseError(
		http.StatusNotFound,
		"CART_ITEM_NOT_FOUND",
		"item not found in cart",
		"",
	)

	ErrCartEmpty = NewBaseError(
		http.StatusConflict,
		"CART_EMPTY",
		"cart has no items to check out",
		"",
	)

	// Order errors
	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"order not found",
		"",
	)

	ErrOrderNotPayable = NewBaseError(
		http.StatusConflict,
		"ORDER_NOT_PAYABLE",
		"order is not awaiting payment",
		"",
	)

	// Payment errors
	ErrPaymentNotFound = NewBaseError(
		http.StatusNotFound,
		"PAYMENT_NOT_FOUND",
		"payment not found",
		"",
	)

	ErrPaymentAlreadyExists = NewBaseError(
		http.StatusConflict,
		"PAYMENT_ALREADY_EXISTS",
		"a payment already exists for this order",
		"",
	)

	ErrPaymentAlreadySettled = NewBaseError(
		http.StatusConflict,
		"PAYMENT_ALREADY_SETTLED",
		"payment has already been confirmed",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"database transaction failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"resource conflict",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
