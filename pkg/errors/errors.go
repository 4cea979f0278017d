package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCategory represents the category of error for handling
type ErrorCategory string

const (
	CategoryAuth               ErrorCategory = "auth"
	CategoryAPI                ErrorCategory = "api"
	CategoryProtocol           ErrorCategory = "protocol"
	CategoryNetwork            ErrorCategory = "network"
	CategoryValidationExceeded ErrorCategory = "validation_exceeded"
	CategoryThreeDSRejected    ErrorCategory = "three_ds_rejected"
	CategoryInvalidSelection   ErrorCategory = "invalid_selection"
)

// PaymentError represents a payment orchestration error with detailed context
type PaymentError struct {
	Code        string
	Message     string
	Category    ErrorCategory
	IsRetriable bool

	// HTTP context, populated for auth/API failures
	StatusCode int
	Headers    http.Header
	Body       string
}

func (e *PaymentError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (http %d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAuthError creates an error for a failed authentication call
func NewAuthError(statusCode int, headers http.Header, body string) *PaymentError {
	return &PaymentError{
		Code:       "AUTH_FAILED",
		Message:    "customer authentication failed",
		Category:   CategoryAuth,
		StatusCode: statusCode,
		Headers:    headers,
		Body:       body,
	}
}

// NewAPIError creates an error for a non-2xx response from the customer or
// merchant API
func NewAPIError(operation string, statusCode int, headers http.Header, body string) *PaymentError {
	return &PaymentError{
		Code:        "API_ERROR",
		Message:     fmt.Sprintf("%s failed", operation),
		Category:    CategoryAPI,
		IsRetriable: statusCode >= 500,
		StatusCode:  statusCode,
		Headers:     headers,
		Body:        body,
	}
}

// NewProtocolError creates an error for a missing or malformed response body
func NewProtocolError(message string) *PaymentError {
	return &PaymentError{
		Code:     "PROTOCOL_ERROR",
		Message:  message,
		Category: CategoryProtocol,
	}
}

// NewNetworkError creates an error for a transport-level failure
func NewNetworkError(operation string, err error) *PaymentError {
	return &PaymentError{
		Code:        "NETWORK_ERROR",
		Message:     fmt.Sprintf("%s: %v", operation, err),
		Category:    CategoryNetwork,
		IsRetriable: true,
	}
}

// NewValidationExceededError creates the terminal error for exhausting the
// 3DS validation attempt counter
func NewValidationExceededError() *PaymentError {
	return &PaymentError{
		Code:     "VALIDATION_EXCEEDED",
		Message:  "validate card attempt counter exceeded",
		Category: CategoryValidationExceeded,
	}
}

// NewThreeDSRejectedError creates the terminal error for an explicit 3DS
// rejection, timeout or validation failure
func NewThreeDSRejectedError(reason string) *PaymentError {
	return &PaymentError{
		Code:     "THREE_DS_REJECTED",
		Message:  reason,
		Category: CategoryThreeDSRejected,
	}
}

// NewInvalidSelectionError creates an error for paying with an unusable
// payment option
func NewInvalidSelectionError(message string) *PaymentError {
	return &PaymentError{
		Code:     "INVALID_SELECTION",
		Message:  message,
		Category: CategoryInvalidSelection,
	}
}

// CategoryOf returns the category of err, or an empty category when err is
// not a PaymentError
func CategoryOf(err error) ErrorCategory {
	var pe *PaymentError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ""
}

// IsAuthError reports whether err is an authentication failure
func IsAuthError(err error) bool {
	return CategoryOf(err) == CategoryAuth
}

// IsRetriable reports whether err is safe to retry
func IsRetriable(err error) bool {
	var pe *PaymentError
	if errors.As(err, &pe) {
		return pe.IsRetriable
	}
	return false
}
