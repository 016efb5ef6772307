// Package errors provides standardized error handling for the admissions
// notification engine.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Configuration errors: fatal for the triggering call, never retried.
	ErrCodeUnknownStage             ErrorCode = "UNKNOWN_STAGE"
	ErrCodeTemplateValidationFailed ErrorCode = "TEMPLATE_VALIDATION_FAILED"

	// Channel delivery errors: recorded as failed status, never propagated.
	ErrCodeChannelSendFailed ErrorCode = "CHANNEL_SEND_FAILED"

	// Store errors: propagated to the caller of the triggering operation.
	ErrCodeStoreAppendFailed    ErrorCode = "STORE_APPEND_FAILED"
	ErrCodeStoreQueryFailed     ErrorCode = "STORE_QUERY_FAILED"
	ErrCodeNotificationNotFound ErrorCode = "NOTIFICATION_NOT_FOUND"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewUnknownStageError creates a non-retryable configuration error for a
// stage with no registered template bundle. Stages are a closed set, so this
// is a programming error fixed by correcting the registry, not by retrying.
func NewUnknownStageError(stage string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownStage,
		Message:   "No template bundle registered for stage",
		Details:   fmt.Sprintf("stage: %s", stage),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTemplateValidationFailedError creates a non-retryable error for a
// template override document that failed schema validation.
func NewTemplateValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateValidationFailed,
		Message:   "Template override document failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewChannelSendFailedError creates a retryable delivery error for one
// channel of one notification.
func NewChannelSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeChannelSendFailed,
		Message:   "Channel delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreAppendFailedError creates a retryable store error. A failed append
// means the notification is lost; callers needing stronger guarantees retry
// around Append themselves.
func NewStoreAppendFailedError(notificationID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreAppendFailed,
		Message:   "Notification append failed",
		Details:   fmt.Sprintf("notificationId: %s, error: %s", notificationID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreQueryFailedError creates a retryable store read error.
func NewStoreQueryFailedError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreQueryFailed,
		Message:   "Notification store query failed",
		Details:   fmt.Sprintf("op: %s, error: %s", op, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationNotFoundError creates a non-retryable lookup error.
func NewNotificationNotFoundError(notificationID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationNotFound,
		Message:   "Notification not found",
		Details:   fmt.Sprintf("notificationId: %s", notificationID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// Normalize ensures we always carry a StandardError.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsCode reports whether err is a StandardError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code == code
	}
	return false
}

// IsUnknownStage reports whether err is the configuration error for an
// unregistered stage.
func IsUnknownStage(err error) bool {
	return IsCode(err, ErrCodeUnknownStage)
}

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeChannelSendFailed,
		ErrCodeStoreAppendFailed,
		ErrCodeStoreQueryFailed,
		ErrCodeDatabaseConnectionFailed:
		return 3 // Retryable technical errors

	default:
		return 0 // Configuration and lookup errors: no retry
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "STAGE") || strings.Contains(codeStr, "TEMPLATE"):
		return "CONFIGURATION"
	case strings.Contains(codeStr, "CHANNEL"):
		return "DELIVERY"
	case strings.Contains(codeStr, "STORE") || strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "NOTIFICATION"):
		return "STORE"
	default:
		return "OTHER"
	}
}
