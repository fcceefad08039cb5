// Package errors defines the application error taxonomy
package errors

import "fmt"

type ErrorType int

// Domain/Business Logic Errors - errors related to business rules and validation
const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeNotFound

	// Infrastructure Errors - errors related to external systems and services
	ErrorTypeDatabase
	ErrorTypeExternalAPI
	ErrorTypeUnauthorized
	ErrorTypeRateLimit
	ErrorTypeTimeout
	ErrorTypeServiceUnavailable

	// System/Configuration Errors - errors related to system setup and configuration
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeDatabase:
		return "DATABASE_ERROR"
	case ErrorTypeExternalAPI:
		return "EXTERNAL_API_ERROR"
	case ErrorTypeUnauthorized:
		return "UNAUTHORIZED_ERROR"
	case ErrorTypeRateLimit:
		return "RATE_LIMIT_ERROR"
	case ErrorTypeTimeout:
		return "TIMEOUT_ERROR"
	case ErrorTypeServiceUnavailable:
		return "SERVICE_UNAVAILABLE_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Legacy constants for backward compatibility
const (
	ValidationError         = ErrorTypeValidation
	NotFoundError           = ErrorTypeNotFound
	DatabaseError           = ErrorTypeDatabase
	ExternalAPIError        = ErrorTypeExternalAPI
	UnauthorizedError       = ErrorTypeUnauthorized
	RateLimitError          = ErrorTypeRateLimit
	TimeoutError            = ErrorTypeTimeout
	ServiceUnavailableError = ErrorTypeServiceUnavailable
	ConfigurationError      = ErrorTypeConfiguration
)

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Domain/Business Logic Error Constructors
func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

func NewNotFoundError(message string) *AppError {
	return New(NotFoundError, message)
}

// Infrastructure Error Constructors
func NewDatabaseError(message string, cause error) *AppError {
	return Wrap(DatabaseError, message, cause)
}

func NewExternalAPIError(message string, cause error) *AppError {
	return Wrap(ExternalAPIError, message, cause)
}

func NewUnauthorizedError(message string) *AppError {
	return New(UnauthorizedError, message)
}

func NewRateLimitError(message string) *AppError {
	return New(RateLimitError, message)
}

func NewTimeoutError(message string) *AppError {
	return New(TimeoutError, message)
}

func NewServiceUnavailableError(message string) *AppError {
	return New(ServiceUnavailableError, message)
}

// System/Configuration Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}

// Helper functions for error type checking
func IsValidationError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ValidationError
	}
	return false
}

func IsNotFoundError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == NotFoundError
	}
	return false
}

func IsDatabaseError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == DatabaseError
	}
	return false
}

func IsExternalAPIError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ExternalAPIError
	}
	return false
}

func IsUnauthorizedError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == UnauthorizedError
	}
	return false
}

func IsRateLimitError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == RateLimitError
	}
	return false
}

func IsTimeoutError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == TimeoutError
	}
	return false
}

func IsServiceUnavailableError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ServiceUnavailableError
	}
	return false
}

func IsConfigurationError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ConfigurationError
	}
	return false
}
