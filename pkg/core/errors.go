package core

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the category of a client or exchange error.
type ErrorType int

// Error type constants categorize errors for programmatic handling.
const (
	// ErrorTypeUnknown indicates an unclassified error.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeNetwork indicates a network connectivity issue.
	ErrorTypeNetwork
	// ErrorTypeTimeout indicates the request exceeded its deadline.
	ErrorTypeTimeout
	// ErrorTypeRateLimit indicates the exchange rejected the call for
	// exceeding its request quota.
	ErrorTypeRateLimit
	// ErrorTypeAuthentication indicates invalid or expired credentials.
	ErrorTypeAuthentication
	// ErrorTypeBadRequest indicates invalid request parameters.
	ErrorTypeBadRequest
	// ErrorTypeNotFound indicates the requested resource does not exist.
	ErrorTypeNotFound
	// ErrorTypeServerError indicates a server-side error.
	ErrorTypeServerError
	// ErrorTypeAPI indicates a failure reported inside a 2xx JSON body,
	// such as a candle response carrying a non-success status code.
	ErrorTypeAPI
	// ErrorTypeShape indicates the response did not match the expected
	// structure (e.g. an object where a list was required).
	ErrorTypeShape
	// ErrorTypeInvalidOrder indicates the order violates payload rules
	// for its ord_type before any request is sent.
	ErrorTypeInvalidOrder
)

// String returns the string representation of the error type.
func (t ErrorType) String() string {
	return [...]string{
		"UNKNOWN",
		"NETWORK",
		"TIMEOUT",
		"RATE_LIMIT",
		"AUTHENTICATION",
		"BAD_REQUEST",
		"NOT_FOUND",
		"SERVER_ERROR",
		"API",
		"SHAPE",
		"INVALID_ORDER",
	}[t]
}

// Sentinel errors for common error conditions.
var (
	// ErrNoCredentials is returned when a private endpoint is called
	// without configured API credentials.
	ErrNoCredentials = errors.New("no credentials configured")
	// ErrClientClosed is returned when attempting to use a closed client.
	ErrClientClosed = errors.New("client is closed")
)

// ExchangeError represents a structured error from the exchange or the
// transport beneath it. Callers distinguish failure modes by Type or Code,
// never by probing response maps for reserved keys.
type ExchangeError struct {
	// Type categorizes the error for programmatic handling.
	Type ErrorType `json:"type"`
	// StatusCode is the HTTP status code from the response, if any.
	StatusCode int `json:"status_code"`
	// Code is the exchange-specific error code or name.
	Code string `json:"code"`
	// Message is the human-readable error description.
	Message string `json:"message"`
	// Timestamp is when the error occurred.
	Timestamp time.Time `json:"timestamp"`
}

// Error implements the error interface for ExchangeError.
func (e *ExchangeError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("bithumb: %s (%d/%s): %s", e.Type, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("bithumb: %s (%d): %s", e.Type, e.StatusCode, e.Message)
}

// NewExchangeError creates a new ExchangeError with the specified details.
// The timestamp is automatically set to the current time.
func NewExchangeError(errorType ErrorType, statusCode int, message string) *ExchangeError {
	return &ExchangeError{
		Type:       errorType,
		StatusCode: statusCode,
		Message:    message,
		Timestamp:  time.Now(),
	}
}

// NewExchangeErrorWithCode creates a new ExchangeError including an
// exchange-specific error code.
func NewExchangeErrorWithCode(errorType ErrorType, statusCode int, code, message string) *ExchangeError {
	e := NewExchangeError(errorType, statusCode, message)
	e.Code = code
	return e
}

// IsNetworkError returns true if the error is a network connectivity issue.
func IsNetworkError(err error) bool {
	var e *ExchangeError
	if errors.As(err, &e) {
		return e.Type == ErrorTypeNetwork
	}
	return false
}

// IsTimeoutError returns true if the error is a timeout.
func IsTimeoutError(err error) bool {
	var e *ExchangeError
	if errors.As(err, &e) {
		return e.Type == ErrorTypeTimeout
	}
	return false
}

// IsAuthenticationError returns true if the error is an authentication
// failure. These require credential validation and are not retryable.
func IsAuthenticationError(err error) bool {
	var e *ExchangeError
	if errors.As(err, &e) {
		return e.Type == ErrorTypeAuthentication
	}
	return false
}

// IsAPIError returns true if the exchange reported a failure inside an
// otherwise well-formed response body.
func IsAPIError(err error) bool {
	var e *ExchangeError
	if errors.As(err, &e) {
		return e.Type == ErrorTypeAPI
	}
	return false
}

// IsShapeError returns true if a response did not match its expected
// structure.
func IsShapeError(err error) bool {
	var e *ExchangeError
	if errors.As(err, &e) {
		return e.Type == ErrorTypeShape
	}
	return false
}
