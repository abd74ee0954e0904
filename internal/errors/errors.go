package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotAuthenticated indicates no stored token backs the request.
	ErrCodeNotAuthenticated ErrorCode = "not_authenticated"
	// ErrCodeMalformedToken indicates an identity token that could not be decoded.
	ErrCodeMalformedToken ErrorCode = "malformed_token"
	// ErrCodeExpiredSession indicates the identity token's expiry has passed.
	ErrCodeExpiredSession ErrorCode = "expired_session"
	// ErrCodeValidation indicates a local input constraint was violated.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeUpstream indicates a non-2xx response from the reports API.
	ErrCodeUpstream ErrorCode = "upstream"
	// ErrCodeUploadTransfer indicates a non-2xx response on the direct file transfer.
	ErrCodeUploadTransfer ErrorCode = "upload_transfer"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError represents a structured application error with a code, message, and
// optional cause. It supports error wrapping and unwrapping for use with
// errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
	// Status is the upstream HTTP status for upstream and upload_transfer errors
	Status int
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NotAuthenticated creates a new NotAuthenticated error.
func NotAuthenticated() *AppError {
	return &AppError{
		Code:    ErrCodeNotAuthenticated,
		Message: "not authenticated",
	}
}

// MalformedToken creates a new MalformedToken error.
func MalformedToken(message string) *AppError {
	return &AppError{
		Code:    ErrCodeMalformedToken,
		Message: message,
	}
}

// ExpiredSession creates a new ExpiredSession error.
func ExpiredSession() *AppError {
	return &AppError{
		Code:    ErrCodeExpiredSession,
		Message: "session expired",
	}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// Upstream creates an error for a non-2xx reports API response.
// The body text is surfaced verbatim as the message.
func Upstream(status int, body string) *AppError {
	return &AppError{
		Code:    ErrCodeUpstream,
		Message: body,
		Status:  status,
	}
}

// UploadTransfer creates an error for a failed direct file transfer.
// The body text is surfaced verbatim as the message.
func UploadTransfer(status int, body string) *AppError {
	return &AppError{
		Code:    ErrCodeUploadTransfer,
		Message: body,
		Status:  status,
	}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
	}
}

// Internalf creates a new Internal error with formatted message.
func Internalf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotAuthenticated checks if an error is a NotAuthenticated error.
func IsNotAuthenticated(err error) bool {
	return isCode(err, ErrCodeNotAuthenticated)
}

// IsMalformedToken checks if an error is a MalformedToken error.
func IsMalformedToken(err error) bool {
	return isCode(err, ErrCodeMalformedToken)
}

// IsExpiredSession checks if an error is an ExpiredSession error.
func IsExpiredSession(err error) bool {
	return isCode(err, ErrCodeExpiredSession)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsUpstream checks if an error is an Upstream error.
func IsUpstream(err error) bool {
	return isCode(err, ErrCodeUpstream)
}

// IsUploadTransfer checks if an error is an UploadTransfer error.
func IsUploadTransfer(err error) bool {
	return isCode(err, ErrCodeUploadTransfer)
}

// IsInternal checks if an error is an Internal error.
func IsInternal(err error) bool {
	return isCode(err, ErrCodeInternal)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetStatus returns the upstream HTTP status from an error, or 0 when absent.
func GetStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return 0
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
