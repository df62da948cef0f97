package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    string       `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Error kinds surfaced to API clients
const (
	KindValidation             = "validation_error"
	KindInsufficientCoins      = "insufficient_coins"
	KindInsufficientStock      = "insufficient_stock"
	KindInvalidStateTransition = "invalid_state_transition"
	KindInvalidPaymentSplit    = "invalid_payment_split"
	KindNoOutstandingBalance   = "no_outstanding_balance"
	KindNotFound               = "not_found"
	KindUnauthorized           = "unauthorized"
	KindForbidden              = "forbidden"
	KindConflict               = "conflict"
	KindInternal               = "internal_error"
)

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Kind: KindForbidden, Message: "Forbidden"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Kind: KindValidation, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
	ErrConflict           = &AppError{Code: http.StatusConflict, Kind: KindConflict, Message: "Resource already exists"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Invalid username or password"}
	ErrTokenExpired       = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Token has expired"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Invalid token"}
)

// NewAppError creates a new application error
func NewAppError(code int, kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: message,
	}
}

// NewInsufficientCoinsError is returned when a bill tries to redeem more
// loyalty coins than the customer holds
func NewInsufficientCoinsError(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindInsufficientCoins,
		Message: message,
	}
}

// NewInsufficientStockError is returned when a stock-affecting operation
// exceeds available quantity
func NewInsufficientStockError(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindInsufficientStock,
		Message: message,
	}
}

// NewInvalidStateTransitionError is returned for out-of-order lifecycle events
func NewInvalidStateTransitionError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindInvalidStateTransition,
		Message: message,
	}
}

// NewInvalidPaymentSplitError is returned when a payment method breakdown does
// not sum to the stated paid amount
func NewInvalidPaymentSplitError(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindInvalidPaymentSplit,
		Message: message,
	}
}

// NewNoOutstandingBalanceError is returned when a settlement has nothing to
// apply against
func NewNoOutstandingBalanceError(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindNoOutstandingBalance,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
	}
}
