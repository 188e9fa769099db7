package models

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorCode represents machine-readable error codes used in the error
// envelope
type ErrorCode string

const (
	// Validation errors (400)
	ErrInvalidAddress           ErrorCode = "INVALID_ADDRESS"
	ErrInvalidAmount            ErrorCode = "INVALID_AMOUNT"
	ErrInvalidTransactionFormat ErrorCode = "INVALID_TRANSACTION_FORMAT"
	ErrInvalidTransactionHash   ErrorCode = "INVALID_TRANSACTION_HASH"
	ErrMissingParameter         ErrorCode = "MISSING_PARAMETER"
	ErrUnsupportedToken         ErrorCode = "UNSUPPORTED_TOKEN"
	ErrInvalidPagination        ErrorCode = "INVALID_PAGINATION"

	// Protocol errors (400)
	ErrContractCall        ErrorCode = "CONTRACT_CALL_ERROR"
	ErrInsufficientBalance ErrorCode = "INSUFFICIENT_BALANCE"
	ErrTransactionFailed   ErrorCode = "TRANSACTION_FAILED"
	ErrBroadcast           ErrorCode = "BROADCAST_ERROR"

	// Resource errors
	ErrNotFound ErrorCode = "NOT_FOUND"

	// Request schema errors (422)
	ErrValidation ErrorCode = "VALIDATION_ERROR"

	// Rate limiting (429)
	ErrRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"

	// Server errors (500)
	ErrConfiguration ErrorCode = "CONFIGURATION_ERROR"
	ErrInternal      ErrorCode = "INTERNAL_ERROR"
)

// AppError represents an application error with an HTTP mapping
type AppError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode returns the HTTP status code for the error
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case ErrInvalidAddress, ErrInvalidAmount, ErrInvalidTransactionFormat,
		ErrInvalidTransactionHash, ErrMissingParameter, ErrUnsupportedToken,
		ErrInvalidPagination, ErrContractCall, ErrInsufficientBalance,
		ErrTransactionFailed, ErrBroadcast:
		return http.StatusBadRequest
	case ErrNotFound:
		return http.StatusNotFound
	case ErrValidation:
		return http.StatusUnprocessableEntity
	case ErrRateLimitExceeded:
		return http.StatusTooManyRequests
	case ErrConfiguration, ErrInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails attaches a details map to the error
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// ErrorResponse is the wire format for every failure
type ErrorResponse struct {
	Error   bool                   `json:"error"`
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HandleError writes the standard error envelope for any error. Unknown
// errors become INTERNAL_ERROR without leaking internals.
func HandleError(c *gin.Context, err error) {
	appErr, ok := err.(*AppError)
	if !ok {
		appErr = NewAppError(ErrInternal, "an unexpected error occurred", err)
	}

	c.JSON(appErr.HTTPStatusCode(), ErrorResponse{
		Error:   true,
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	})
}
