// Package errors provides standardized error handling for the HTTP API.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidFile        ErrorCode = "INVALID_FILE"
	ErrCodeFileTooLarge       ErrorCode = "FILE_TOO_LARGE"
	ErrCodeMissingParameter   ErrorCode = "MISSING_PARAMETER"
	ErrCodeApplicationMissing ErrorCode = "APPLICATION_NOT_FOUND"
	ErrCodeArchiveMissing     ErrorCode = "ARCHIVE_NOT_FOUND"
	ErrCodeMethodNotAllowed   ErrorCode = "METHOD_NOT_ALLOWED"
	ErrCodeRouteNotFound      ErrorCode = "ROUTE_NOT_FOUND"
	ErrCodeRateLimited        ErrorCode = "RATE_LIMITED"

	ErrCodeStorageFailed        ErrorCode = "STORAGE_FAILED"
	ErrCodeDuplicateApplication ErrorCode = "DUPLICATE_APPLICATION"
	ErrCodeResumeUploadFailed   ErrorCode = "RESUME_UPLOAD_FAILED"
	ErrCodePositionsFailed      ErrorCode = "POSITIONS_FETCH_FAILED"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// StatusCode maps the error code to the HTTP status returned to clients.
func (e *StandardError) StatusCode() int {
	return GetHTTPStatus(e.Code)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError reports missing or malformed form fields.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Missing or invalid application fields",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidFileError reports a resume outside the allowed types.
func NewInvalidFileError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidFile,
		Message:   "Only image, PDF and document files are allowed!",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewFileTooLargeError reports a resume over the size limit.
func NewFileTooLargeError(limit int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeFileTooLarge,
		Message:   "File too large",
		Details:   fmt.Sprintf("maximum size is %d bytes", limit),
		Timestamp: time.Now().UTC(),
	}
}

func NewMissingParameterError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingParameter,
		Message:   fmt.Sprintf("%s is required", name),
		Timestamp: time.Now().UTC(),
	}
}

func NewApplicationNotFoundError(applicationID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeApplicationMissing,
		Message:   "Application not found",
		Details:   fmt.Sprintf("applicationId: %s", applicationID),
		Timestamp: time.Now().UTC(),
	}
}

func NewArchiveNotFoundError() *StandardError {
	return &StandardError{
		Code:      ErrCodeArchiveMissing,
		Message:   "Excel file not found. No applications submitted yet.",
		Timestamp: time.Now().UTC(),
	}
}

func NewMethodNotAllowedError(method string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMethodNotAllowed,
		Message:   "Method not allowed",
		Details:   fmt.Sprintf("method: %s", method),
		Timestamp: time.Now().UTC(),
	}
}

func NewRouteNotFoundError(path string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRouteNotFound,
		Message:   "Not found",
		Details:   fmt.Sprintf("path: %s", path),
		Timestamp: time.Now().UTC(),
	}
}

func NewRateLimitedError() *StandardError {
	return &StandardError{
		Code:      ErrCodeRateLimited,
		Message:   "Too many applications, please try again later",
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageFailedError wraps a failed storage write or read.
func NewStorageFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageFailed,
		Message:   "Failed to process application",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

func NewDuplicateApplicationError(applicationID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateApplication,
		Message:   "Failed to process application",
		Details:   fmt.Sprintf("applicationId already exists: %s", applicationID),
		Timestamp: time.Now().UTC(),
	}
}

func NewResumeUploadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeResumeUploadFailed,
		Message:   "Failed to store resume",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

func NewPositionsFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePositionsFailed,
		Message:   "Failed to fetch positions",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal server error",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Classification
// ==========================

// GetHTTPStatus returns the HTTP status for an error code.
func GetHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed, ErrCodeInvalidFile, ErrCodeFileTooLarge, ErrCodeMissingParameter:
		return http.StatusBadRequest
	case ErrCodeApplicationMissing, ErrCodeArchiveMissing, ErrCodeRouteNotFound:
		return http.StatusNotFound
	case ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// IsClientError reports whether the code is caused by the request itself.
func IsClientError(code ErrorCode) bool {
	return GetHTTPStatus(code) < http.StatusInternalServerError
}
