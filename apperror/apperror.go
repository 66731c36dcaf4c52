// Package apperror defines a centralized system for application-specific errors.
// Every handler, middleware and service in the API returns these types so that
// status codes and response bodies are decided in one place instead of being
// scattered as ad hoc literals through the route handlers.
package apperror

import (
	"errors"
	"fmt"
	// `net/http` is used for HTTP status codes.
	"net/http"
)

// ErrorType is an enumeration (using `iota`) for different categories of application errors.
type ErrorType int

const (
	// UnknownError is for unspecified errors
	UnknownError ErrorType = iota
	// DatabaseError represents an error originating from the store
	DatabaseError
	// ConfigError represents an error related to application configuration
	ConfigError
	// AuthError represents an authentication error (missing, invalid or expired credentials)
	AuthError
	// PermissionDeniedError represents a caller acting on a resource it does not own
	PermissionDeniedError
	// NotFoundError represents a resource not found error
	NotFoundError
	// ValidationError represents one or more request body rule violations
	ValidationError
	// BadRequestError represents a generic bad request
	BadRequestError
	// InternalError represents a generic internal server error
	InternalError
	// MigrationError represents an error during database migrations
	MigrationError
	// ConflictError represents a conflict, e.g. a username that is already taken
	ConflictError
)

// FieldViolation is a single failed validation rule.
// `Msg` is the human readable message attached to the rule.
type FieldViolation struct {
	Field string      `json:"field" example:"Username"`
	Msg   string      `json:"msg" example:"Username must be at least 3 characters long."`
	Value interface{} `json:"value,omitempty"`
}

// AppError is a custom error type for the application.
// It allows wrapping an underlying error (`Err`) for logging, while only
// `Message` is ever shown to API clients.
type AppError struct {
	Type       ErrorType
	Message    string
	Err        error            // Underlying error
	Violations []FieldViolation // Only set for ValidationError
}

// Error returns the string representation of the error, satisfying the `error` interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error so `errors.Is` and `errors.As` can walk the chain.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type
func (e *AppError) StatusCode() int {
	switch e.Type {
	case DatabaseError, ConfigError, MigrationError, InternalError:
		return http.StatusInternalServerError
	case AuthError:
		return http.StatusUnauthorized
	case PermissionDeniedError:
		// The API has always answered identity mismatches with 400, and clients check for it.
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError:
		return http.StatusUnprocessableEntity
	case BadRequestError:
		return http.StatusBadRequest
	case ConflictError:
		// Same story as PermissionDeniedError: a taken username is a 400 on this API.
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new AppError. This is a generic constructor.
func NewAppError(errType ErrorType, message string, underlyingError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlyingError,
	}
}

// NewDatabaseError creates a new DatabaseError
func NewDatabaseError(message string, underlyingError error) *AppError {
	return NewAppError(DatabaseError, message, underlyingError)
}

// NewConfigError creates a new ConfigError
func NewConfigError(message string, underlyingError error) *AppError {
	return NewAppError(ConfigError, message, underlyingError)
}

// NewAuthError creates a new AuthError (for authentication issues)
func NewAuthError(message string, underlyingError error) *AppError {
	return NewAppError(AuthError, message, underlyingError)
}

// NewPermissionDeniedError creates a new PermissionDeniedError
func NewPermissionDeniedError(message string) *AppError {
	return NewAppError(PermissionDeniedError, message, nil)
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(message string, underlyingError error) *AppError {
	return NewAppError(NotFoundError, message, underlyingError)
}

// NewValidationError creates a new ValidationError carrying every violation found.
func NewValidationError(violations []FieldViolation) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    "validation failed",
		Violations: violations,
	}
}

// NewBadRequestError creates a new BadRequestError
func NewBadRequestError(message string, underlyingError error) *AppError {
	return NewAppError(BadRequestError, message, underlyingError)
}

// NewInternalError creates a new InternalError
func NewInternalError(message string, underlyingError error) *AppError {
	return NewAppError(InternalError, message, underlyingError)
}

// NewMigrationError creates a new MigrationError
func NewMigrationError(message string, underlyingError error) *AppError {
	return NewAppError(MigrationError, message, underlyingError)
}

// NewConflictError creates a new ConflictError
func NewConflictError(message string, underlyingError error) *AppError {
	return NewAppError(ConflictError, message, underlyingError)
}

// ErrorResponse represents a generic error response payload for API clients.
type ErrorResponse struct {
	Error string `json:"error" example:"A description of the error"`
}

// ValidationErrorResponse is the 422 payload: every violation, not just the first.
type ValidationErrorResponse struct {
	Errors []FieldViolation `json:"errors"`
}

// genericInternalMessage is what clients see for any 5xx. Causes stay in the logs.
const genericInternalMessage = "Something broke!"

// ToResponse converts an AppError to the payload written to the client.
func (e *AppError) ToResponse() interface{} {
	if e.Type == ValidationError {
		return ValidationErrorResponse{Errors: e.Violations}
	}
	if e.StatusCode() >= http.StatusInternalServerError {
		return ErrorResponse{Error: genericInternalMessage}
	}
	return ErrorResponse{Error: e.Message}
}

// FromError attempts to convert a generic error to an *AppError, looking through wrapped errors.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsNotFound checks if an error is a NotFound error
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// IsAuthError checks if an error is an AuthError (authentication problem)
func IsAuthError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthError
}

// IsPermissionDenied checks if an error is a PermissionDeniedError
func IsPermissionDenied(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == PermissionDeniedError
}

// IsValidationError checks if an error is a Validation error
func IsValidationError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ValidationError
}

// IsConflictError checks if an error is a Conflict error
func IsConflictError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ConflictError
}
